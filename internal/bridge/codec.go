package bridge

import (
	"fmt"
	"math"

	"github.com/flowsim/evobridge/internal/model"
)

// encodeTypes walks vars in order and emits one bounded-real type descriptor
// per dimension: continuous dimensions first, then integer dimensions using
// their integer bounds. The result has length equal to the variable map's
// total size.
func encodeTypes(vars []model.Variable) []RealType {
	var types []RealType
	for _, v := range vars {
		if v.DoubleSize() > 0 {
			lower, upper := v.DoubleBounds()
			for i := 0; i < v.DoubleSize(); i++ {
				types = append(types, RealType{Lower: lower[i], Upper: upper[i]})
			}
		}
		if v.IntegerSize() > 0 {
			lower, upper := v.IntegerBounds()
			for i := 0; i < v.IntegerSize(); i++ {
				// Integers are carried as bounded reals and rounded on decode.
				types = append(types, RealType{Lower: float64(lower[i]), Upper: float64(upper[i])})
			}
		}
	}
	return types
}

// decode writes the flat solution vector x into the model's variables: for
// each variable the first DoubleSize slice entries become its continuous
// values and the remaining IntegerSize entries are rounded half away from
// zero and written as int32 values.
//
// A slice-length mismatch means the variable map and the variable list have
// desynchronized. That is an internal-consistency violation, not a
// recoverable condition, so it panics rather than truncating or padding.
func (a *Adapter) decode(x []float64) {
	for i, v := range a.vars {
		slice := a.varMap.Slice(x, i)
		ds, is := v.DoubleSize(), v.IntegerSize()
		if len(slice) != ds+is {
			panic(fmt.Sprintf("bridge: variable %q slice length %d does not match declared size %d",
				v.Name(), len(slice), ds+is))
		}
		if ds > 0 {
			v.SetDoubleValues(slice[:ds])
		}
		if is > 0 {
			ints := make([]int32, is)
			for j, raw := range slice[ds:] {
				ints[j] = int32(math.Round(raw))
			}
			v.SetIntegerValues(ints)
		}
	}
}

// Encode reads each variable's current continuous then integer values, in
// declaration order, into one flat vector consistent with the variable map
// layout. It is the inverse of decode and is used only for seeding.
func (a *Adapter) Encode() []float64 {
	x := make([]float64, 0, a.varMap.TotalSize())
	for _, v := range a.vars {
		if v.DoubleSize() > 0 {
			x = append(x, v.DoubleValues()...)
		}
		for _, n := range v.IntegerValues() {
			x = append(x, float64(n))
		}
	}
	return x
}
