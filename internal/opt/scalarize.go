package opt

import (
	"fmt"

	"github.com/flowsim/evobridge/internal/bridge"
)

// Scalarize reduces a multi-objective, constrained problem to an
// unconstrained single-objective one: the weighted sum of the canonical
// (minimisation) objective values plus penalty times the summed
// constraint-slot violation. It lets single-objective engines such as
// mayfly run against any bridge problem.
//
// weights must have one entry per objective; penalty must be non-negative.
func Scalarize(p *bridge.Problem, evaluate EvalFunc, weights []float64, penalty float64) (*bridge.Problem, EvalFunc, error) {
	if len(weights) != p.NumObjectives {
		return nil, nil, fmt.Errorf("got %d weights for %d objectives", len(weights), p.NumObjectives)
	}
	if penalty < 0 {
		return nil, nil, fmt.Errorf("penalty must be non-negative, got %g", penalty)
	}

	scalar := &bridge.Problem{
		Types:         p.Types,
		NumObjectives: 1,
	}

	eval := func(x []float64) ([]float64, []float64, error) {
		objectives, constraints, err := evaluate(x)
		if err != nil {
			return nil, nil, err
		}

		sum := 0.0
		for i, w := range weights {
			sum += w * objectives[i]
		}
		for i, slot := range p.Constraints {
			sum += penalty * slot.Violation(constraints[i])
		}
		return []float64{sum}, nil, nil
	}

	return scalar, eval, nil
}
