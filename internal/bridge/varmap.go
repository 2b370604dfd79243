package bridge

import "github.com/flowsim/evobridge/internal/model"

// VariableMap is a prefix-sum offset table over an ordered variable list.
// Offset i is the flat-vector start index of variable i; the final offset
// equals the total flat-vector length. Built once at adapter construction
// and immutable afterwards.
type VariableMap struct {
	offsets []int
}

// NewVariableMap builds the offset table for vars in declaration order.
func NewVariableMap(vars []model.Variable) VariableMap {
	offsets := make([]int, len(vars)+1)
	for i, v := range vars {
		offsets[i+1] = offsets[i] + v.DoubleSize() + v.IntegerSize()
	}
	return VariableMap{offsets: offsets}
}

// NumVariables returns the number of mapped variables.
func (m VariableMap) NumVariables() int { return len(m.offsets) - 1 }

// Offset returns the flat-vector start index of variable i.
func (m VariableMap) Offset(i int) int { return m.offsets[i] }

// TotalSize returns the total flat-vector length.
func (m VariableMap) TotalSize() int { return m.offsets[len(m.offsets)-1] }

// Slice returns the sub-slice of x covering variable i's dimensions.
func (m VariableMap) Slice(x []float64, i int) []float64 {
	return x[m.offsets[i]:m.offsets[i+1]]
}
