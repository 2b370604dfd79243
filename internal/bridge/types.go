// Package bridge translates between a simulation model's heterogeneous
// decision variables and the flat real-valued solution vectors of a
// black-box evolutionary optimizer. It owns the encode/decode/evaluate
// protocol and nothing else: simulation semantics and optimizer internals
// live behind the model.Model and opt interfaces.
package bridge

// RealType describes one bounded real-valued dimension of the flat solution
// vector. Integer dimensions are represented as bounded reals and rounded
// on decode.
type RealType struct {
	Lower float64
	Upper float64
}

// CompareOp is the relation a constraint slot tests between the aggregated
// reading and its threshold.
type CompareOp int

const (
	OpGEQ CompareOp = iota
	OpLEQ
	OpEQ
)

func (op CompareOp) String() string {
	switch op {
	case OpGEQ:
		return ">="
	case OpLEQ:
		return "<="
	default:
		return "=="
	}
}

// ConstraintSlot is one optimizer-facing constraint relation. A slot is
// satisfied when `value Op Threshold` holds for the evaluation's reading.
type ConstraintSlot struct {
	Name      string
	Op        CompareOp
	Threshold float64
}

// Satisfied reports whether value meets the slot's relation.
func (s ConstraintSlot) Satisfied(value float64) bool {
	switch s.Op {
	case OpGEQ:
		return value >= s.Threshold
	case OpLEQ:
		return value <= s.Threshold
	default:
		return value == s.Threshold
	}
}

// Violation returns how far value is from satisfying the slot, zero when
// satisfied. Optimizers use the sum over slots as a feasibility measure.
func (s ConstraintSlot) Violation(value float64) float64 {
	switch s.Op {
	case OpGEQ:
		if value < s.Threshold {
			return s.Threshold - value
		}
	case OpLEQ:
		if value > s.Threshold {
			return value - s.Threshold
		}
	default:
		if value > s.Threshold {
			return value - s.Threshold
		}
		return s.Threshold - value
	}
	return 0
}

// Problem is the optimizer-facing description of a wrapped model: one
// bounded type per flat dimension, the objective count, and the expanded
// constraint slots. Constructed once by NewAdapter and immutable.
type Problem struct {
	Types         []RealType
	NumObjectives int
	Constraints   []ConstraintSlot
}

// NumVariables returns the flat solution-vector length.
func (p *Problem) NumVariables() int { return len(p.Types) }
