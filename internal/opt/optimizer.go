// Package opt hosts the optimizer engines that consume a bridge.Problem:
// the external mayfly library for single-objective searches and an in-repo
// NSGA-II for multi-objective, constrained searches.
package opt

import "github.com/flowsim/evobridge/internal/bridge"

// EvalFunc evaluates one flat candidate vector and returns signed objective
// values plus constraint slot values (nil when the problem declares no
// constraint slots). An error is fatal for the whole run.
type EvalFunc func(x []float64) (objectives, constraints []float64, err error)

// Individual is one evaluated point in the search.
type Individual struct {
	Variables   []float64
	Objectives  []float64
	Constraints []float64

	// Violation is the summed constraint-slot violation, zero when feasible.
	Violation float64
}

// Feasible reports whether the individual satisfies every constraint slot.
func (ind *Individual) Feasible() bool { return ind.Violation == 0 }

// Result holds the outcome of one optimization run.
type Result struct {
	// Front is the final non-dominated set, best-first for single-objective
	// engines.
	Front []Individual

	Evaluations int
	Generations int
}

// Best returns the first front member, the single-objective optimum by
// convention.
func (r *Result) Best() *Individual {
	if len(r.Front) == 0 {
		return nil
	}
	return &r.Front[0]
}

// Optimizer defines an optimization algorithm over a bridge problem.
// Engines that support population seeding consult gen for initial
// individuals; engines that self-initialize may ignore it.
type Optimizer interface {
	Run(p *bridge.Problem, evaluate EvalFunc, gen bridge.Generator) (*Result, error)
}
