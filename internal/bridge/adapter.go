package bridge

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowsim/evobridge/internal/model"
)

// Configuration errors raised once during adapter construction.
var (
	ErrNoVariables  = errors.New("at least one variable required")
	ErrNoObjectives = errors.New("at least one objective required")
)

// Adapter wraps one model instance and exposes it as an optimizer-facing
// Problem plus an Evaluate entry point. The variable map and problem are
// built once and immutable for the adapter's lifetime.
//
// The wrapped model is mutable shared state: each evaluation overwrites its
// variable values and runs it to completion, so an adapter must only ever
// see one evaluation at a time. Parallel population evaluation requires
// independently constructed model+adapter pairs.
type Adapter struct {
	mdl         model.Model
	vars        []model.Variable
	objectives  []model.Objective
	constraints []model.Constraint
	varMap      VariableMap
	problem     *Problem
}

// NewAdapter caches the model's variables, objectives and constraints and
// constructs the problem description. It fails with a configuration error
// when no variables or no objectives are declared, or when a constraint
// carries no recognizable bound classification.
func NewAdapter(mdl model.Model) (*Adapter, error) {
	vars := mdl.Variables()
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	objectives := mdl.Objectives()
	if len(objectives) == 0 {
		return nil, ErrNoObjectives
	}
	constraints := mdl.Constraints()

	numSlots, err := countSlots(constraints)
	if err != nil {
		return nil, err
	}
	slots, err := describeSlots(constraints)
	if err != nil {
		return nil, err
	}
	if len(slots) != numSlots {
		return nil, fmt.Errorf("constraint slot count %d does not match description length %d",
			numSlots, len(slots))
	}

	varMap := NewVariableMap(vars)
	problem := &Problem{
		Types:         encodeTypes(vars),
		NumObjectives: len(objectives),
		Constraints:   slots,
	}

	slog.Debug("Constructed problem",
		"variables", problem.NumVariables(),
		"objectives", problem.NumObjectives,
		"constraint_slots", len(problem.Constraints))

	return &Adapter{
		mdl:         mdl,
		vars:        vars,
		objectives:  objectives,
		constraints: constraints,
		varMap:      varMap,
		problem:     problem,
	}, nil
}

// Problem returns the immutable optimizer-facing problem description.
func (a *Adapter) Problem() *Problem { return a.problem }

// VariableMap returns the flat-vector offset table.
func (a *Adapter) VariableMap() VariableMap { return a.varMap }

// Model returns the wrapped model.
func (a *Adapter) Model() model.Model { return a.mdl }

// Evaluate decodes one candidate solution into the model, executes one full
// simulation run, and reads back signed objective values and constraint
// slot values. The constraints slice is nil when the problem has no
// constraint slots. A model run failure propagates unchanged; the bridge
// performs no retry and no partial-result substitution.
func (a *Adapter) Evaluate(x []float64) (objectives, constraints []float64, err error) {
	a.decode(x)

	if err := a.mdl.Run(); err != nil {
		return nil, nil, err
	}

	objectives = signedObjectives(a.objectives)
	if len(a.problem.Constraints) == 0 {
		return objectives, nil, nil
	}
	return objectives, slotValues(a.constraints), nil
}
