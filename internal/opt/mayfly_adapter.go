package opt

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cwbudde/mayfly"

	"github.com/flowsim/evobridge/internal/bridge"
)

// MayflyAdapter wraps the external mayfly library to conform to the
// Optimizer interface. Mayfly is single-objective and unconstrained, so it
// only accepts problems with one objective and no constraint slots.
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
}

// NewMayfly creates a new mayfly optimizer adapter.
func NewMayfly(maxIters, popSize int, seed int64) Optimizer {
	return &MayflyAdapter{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
	}
}

// Run executes the mayfly optimization using the external library. The
// seeding generator is ignored: mayfly initializes its own population.
func (m *MayflyAdapter) Run(p *bridge.Problem, evaluate EvalFunc, _ bridge.Generator) (*Result, error) {
	if p.NumObjectives != 1 {
		return nil, fmt.Errorf("mayfly supports exactly one objective, problem has %d", p.NumObjectives)
	}
	if len(p.Constraints) > 0 {
		return nil, fmt.Errorf("mayfly does not support constraints, problem has %d slots", len(p.Constraints))
	}

	// Mayfly cannot carry an error through its objective callback, so the
	// first evaluation failure is captured here and surfaced after the run.
	var evalErr error
	evaluations := 0
	objective := func(x []float64) float64 {
		if evalErr != nil {
			return 0
		}
		objectives, _, err := evaluate(x)
		if err != nil {
			evalErr = err
			return 0
		}
		evaluations++
		return objectives[0]
	}

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = objective
	config.ProblemSize = p.NumVariables()
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize

	// The external library uses scalar bounds; use the first dimension's.
	config.LowerBound = p.Types[0].Lower
	config.UpperBound = p.Types[0].Upper

	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if evalErr != nil {
		return nil, evalErr
	}
	if err != nil {
		return nil, fmt.Errorf("mayfly optimize: %w", err)
	}
	if result == nil {
		return nil, errors.New("mayfly returned no result")
	}

	best := Individual{
		Variables:  append([]float64(nil), result.GlobalBest.Position...),
		Objectives: []float64{result.GlobalBest.Cost},
	}
	return &Result{
		Front:       []Individual{best},
		Evaluations: evaluations,
		Generations: m.maxIters,
	}, nil
}
