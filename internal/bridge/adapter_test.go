package bridge

import (
	"errors"
	"testing"

	"github.com/flowsim/evobridge/internal/model"
)

func TestNewAdapterConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mdl     *fakeModel
		wantErr error
	}{
		{
			name:    "no variables",
			mdl:     &fakeModel{objectives: []model.Objective{constObjective("o", model.Minimise, 0)}},
			wantErr: ErrNoVariables,
		},
		{
			name: "no objectives",
			mdl: &fakeModel{vars: []model.Variable{
				&model.BasicVariable{VarName: "v", Doubles: make([]float64, 1), DoubleLo: []float64{0}, DoubleHi: []float64{1}},
			}},
			wantErr: ErrNoObjectives,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAdapter(tt.mdl)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewAdapter error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewAdapterRejectsUnclassifiedConstraint(t *testing.T) {
	m := &fakeModel{
		vars: []model.Variable{
			&model.BasicVariable{VarName: "v", Doubles: make([]float64, 1), DoubleLo: []float64{0}, DoubleHi: []float64{1}},
		},
		objectives:  []model.Objective{constObjective("o", model.Minimise, 0)},
		constraints: []model.Constraint{constConstraint("broken", model.ConstraintBounds{}, 0)},
	}

	if _, err := NewAdapter(m); err == nil {
		t.Fatal("NewAdapter accepted a constraint with no bounds")
	}
}

func TestObjectiveSignConvention(t *testing.T) {
	objectives := []model.Objective{
		constObjective("min", model.Minimise, 7.5),
		constObjective("max", model.Maximise, 7.5),
	}

	got := signedObjectives(objectives)
	if got[0] != 7.5 {
		t.Errorf("minimise objective = %v, want 7.5", got[0])
	}
	if got[1] != -7.5 {
		t.Errorf("maximise objective = %v, want -7.5", got[1])
	}
}

// Scenario: one continuous variable in [0,10], one minimise objective that
// reads the variable's value back, no constraints. Evaluating [3.0] must
// yield objectives [3.0] and no constraint sequence.
func TestEvaluateUnconstrained(t *testing.T) {
	v := &model.BasicVariable{
		VarName:  "x",
		Doubles:  make([]float64, 1),
		DoubleLo: []float64{0},
		DoubleHi: []float64{10},
	}
	m := &fakeModel{
		vars: []model.Variable{v},
		objectives: []model.Objective{
			&model.SimpleObjective{MetricName: "x-value", Dir: model.Minimise,
				Value: func() float64 { return v.Doubles[0] }},
		},
	}

	a, err := NewAdapter(m)
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}

	p := a.Problem()
	if p.NumVariables() != 1 || p.NumObjectives != 1 || len(p.Constraints) != 0 {
		t.Fatalf("problem = %d vars, %d objectives, %d slots; want 1, 1, 0",
			p.NumVariables(), p.NumObjectives, len(p.Constraints))
	}
	if p.Types[0] != (RealType{Lower: 0, Upper: 10}) {
		t.Errorf("type[0] = %v, want [0,10]", p.Types[0])
	}

	objectives, constraints, err := a.Evaluate([]float64{3.0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(objectives) != 1 || objectives[0] != 3.0 {
		t.Errorf("objectives = %v, want [3]", objectives)
	}
	if constraints != nil {
		t.Errorf("constraints = %v, want nil", constraints)
	}
	if m.runs != 1 {
		t.Errorf("model ran %d times, want 1", m.runs)
	}
}

func TestEvaluateConstrained(t *testing.T) {
	v := &model.BasicVariable{
		VarName:  "x",
		Doubles:  make([]float64, 1),
		DoubleLo: []float64{0},
		DoubleHi: []float64{10},
	}
	reading := func() float64 { return v.Doubles[0] }
	m := &fakeModel{
		vars: []model.Variable{v},
		objectives: []model.Objective{
			&model.SimpleObjective{MetricName: "obj", Dir: model.Maximise, Value: reading},
		},
		constraints: []model.Constraint{
			&model.SimpleConstraint{MetricName: "band", Bound: model.DoubleBounded(1, 5), Value: reading},
			&model.SimpleConstraint{MetricName: "floor", Bound: model.LowerBounded(2), Value: reading},
		},
	}

	a, err := NewAdapter(m)
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}

	objectives, constraints, err := a.Evaluate([]float64{3.0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(objectives) != 1 || objectives[0] != -3.0 {
		t.Errorf("objectives = %v, want [-3]", objectives)
	}
	want := []float64{3, 3, 3}
	if len(constraints) != len(want) {
		t.Fatalf("constraints = %v, want %v", constraints, want)
	}
	for i := range want {
		if constraints[i] != want[i] {
			t.Errorf("constraints[%d] = %v, want %v", i, constraints[i], want[i])
		}
	}
}

func TestEvaluatePropagatesRunError(t *testing.T) {
	runErr := errors.New("simulation diverged")
	m := &fakeModel{
		vars: []model.Variable{
			&model.BasicVariable{VarName: "v", Doubles: make([]float64, 1), DoubleLo: []float64{0}, DoubleHi: []float64{1}},
		},
		objectives: []model.Objective{constObjective("o", model.Minimise, 0)},
		runErr:     runErr,
	}

	a, err := NewAdapter(m)
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}

	_, _, err = a.Evaluate([]float64{0.5})
	if !errors.Is(err, runErr) {
		t.Errorf("Evaluate error = %v, want %v", err, runErr)
	}
}
