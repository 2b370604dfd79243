package opt

import (
	"testing"

	"github.com/flowsim/evobridge/internal/bridge"
)

func TestScalarizeWeightedSumAndPenalty(t *testing.T) {
	p := &bridge.Problem{
		Types:         []bridge.RealType{{Lower: 0, Upper: 10}},
		NumObjectives: 2,
		Constraints:   []bridge.ConstraintSlot{{Op: bridge.OpGEQ, Threshold: 4}},
	}
	eval := func(x []float64) ([]float64, []float64, error) {
		return []float64{x[0], 2 * x[0]}, []float64{x[0]}, nil
	}

	scalar, scalarEval, err := Scalarize(p, eval, []float64{1, 0.5}, 10)
	if err != nil {
		t.Fatalf("Scalarize: %v", err)
	}

	if scalar.NumObjectives != 1 || len(scalar.Constraints) != 0 {
		t.Fatalf("scalar problem: %d objectives, %d slots; want 1, 0",
			scalar.NumObjectives, len(scalar.Constraints))
	}

	// Feasible point: 3 + 0.5*6 = 6, no penalty (x=3 < 4 violates by 1:
	// 6 + 10*1 = 16).
	objectives, constraints, err := scalarEval([]float64{3})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if constraints != nil {
		t.Errorf("constraints = %v, want nil", constraints)
	}
	if objectives[0] != 16 {
		t.Errorf("scalarized value = %v, want 16", objectives[0])
	}

	// Satisfied constraint: 5 + 0.5*10 = 10, no penalty.
	objectives, _, err = scalarEval([]float64{5})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if objectives[0] != 10 {
		t.Errorf("scalarized value = %v, want 10", objectives[0])
	}
}

func TestScalarizeValidation(t *testing.T) {
	p := &bridge.Problem{Types: []bridge.RealType{{Lower: 0, Upper: 1}}, NumObjectives: 2}
	eval := func(x []float64) ([]float64, []float64, error) { return []float64{0, 0}, nil, nil }

	if _, _, err := Scalarize(p, eval, []float64{1}, 0); err == nil {
		t.Error("accepted wrong weight count")
	}
	if _, _, err := Scalarize(p, eval, []float64{1, 1}, -1); err == nil {
		t.Error("accepted negative penalty")
	}
}
