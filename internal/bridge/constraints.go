package bridge

import (
	"fmt"

	"github.com/flowsim/evobridge/internal/model"
)

// countSlots returns the total number of optimizer constraint slots for the
// given constraints: double-bounded constraints expand to two slots, every
// other classification takes one. A constraint whose classification cannot
// be recognized is a configuration error.
func countSlots(constraints []model.Constraint) (int, error) {
	n := 0
	for _, c := range constraints {
		switch c.Bounds().Kind {
		case model.DoubleBound:
			n += 2
		case model.LowerBound, model.UpperBound, model.EqualityBound:
			n++
		default:
			return 0, fmt.Errorf("constraint %q has no bounds defined", c.Name())
		}
	}
	return n, nil
}

// describeSlots walks constraints in the same order used for counting and
// assigns consecutive slots: double-bounded emits a >=lower slot followed by
// a <=upper slot, equality emits ==target, lower-bounded >=lower and
// upper-bounded <=upper. A classification that cannot be identified here,
// after counting succeeded, signals an internal inconsistency and gets a
// distinct error.
func describeSlots(constraints []model.Constraint) ([]ConstraintSlot, error) {
	var slots []ConstraintSlot
	for _, c := range constraints {
		b := c.Bounds()
		switch b.Kind {
		case model.DoubleBound:
			slots = append(slots,
				ConstraintSlot{Name: c.Name(), Op: OpGEQ, Threshold: b.Lower},
				ConstraintSlot{Name: c.Name(), Op: OpLEQ, Threshold: b.Upper})
		case model.EqualityBound:
			slots = append(slots, ConstraintSlot{Name: c.Name(), Op: OpEQ, Threshold: b.Lower})
		case model.LowerBound:
			slots = append(slots, ConstraintSlot{Name: c.Name(), Op: OpGEQ, Threshold: b.Lower})
		case model.UpperBound:
			slots = append(slots, ConstraintSlot{Name: c.Name(), Op: OpLEQ, Threshold: b.Upper})
		default:
			return nil, fmt.Errorf("bounds of constraint %q could not be identified", c.Name())
		}
	}
	return slots, nil
}

// slotValues reads each constraint's aggregated value into the slot layout
// produced by describeSlots: double-bounded constraints contribute their
// reading twice, once per adjacent slot, everything else once.
func slotValues(constraints []model.Constraint) []float64 {
	var out []float64
	for _, c := range constraints {
		value := c.AggregatedValue()
		if c.Bounds().Kind == model.DoubleBound {
			out = append(out, value, value)
		} else {
			out = append(out, value)
		}
	}
	return out
}
