// Package model defines the contract between the bridge and an external
// simulation model: tunable decision variables, aggregated metric readings
// tagged as objectives or constraints, and a Run operation that advances
// the model one full evaluation.
package model

// Direction declares whether an objective reading should be minimised or
// maximised by the optimizer.
type Direction int

const (
	Minimise Direction = iota
	Maximise
)

func (d Direction) String() string {
	if d == Maximise {
		return "maximise"
	}
	return "minimise"
}

// Variable is a tunable model input with an independent count of continuous
// and integer degrees of freedom. Implementations own the current values;
// the bridge only reads and writes them through these accessors.
type Variable interface {
	Name() string

	// DoubleSize and IntegerSize report the number of continuous and
	// integer dimensions. Their sum must be at least 1.
	DoubleSize() int
	IntegerSize() int

	// Per-dimension bounds, slices of length DoubleSize / IntegerSize.
	DoubleBounds() (lower, upper []float64)
	IntegerBounds() (lower, upper []int32)

	DoubleValues() []float64
	SetDoubleValues(vals []float64)
	IntegerValues() []int32
	SetIntegerValues(vals []int32)
}

// Metric is a named scalar reading aggregated over one model run.
type Metric interface {
	Name() string
	AggregatedValue() float64
}

// Objective is a metric the optimizer should drive toward its best value in
// the declared direction.
type Objective interface {
	Metric
	Direction() Direction
}

// Constraint is a metric that must satisfy a bound classification after
// each run.
type Constraint interface {
	Metric
	Bounds() ConstraintBounds
}

// BoundKind classifies a constraint. The zero value is deliberately
// unclassified so that a constraint built without bounds is detectable at
// problem-construction time.
type BoundKind int

const (
	BoundUnspecified BoundKind = iota
	LowerBound
	UpperBound
	DoubleBound
	EqualityBound
)

// ConstraintBounds is a tagged variant carrying the numeric bound values for
// one constraint classification. Lower holds the lower bound or the equality
// target; Upper is only meaningful for UpperBound and DoubleBound.
type ConstraintBounds struct {
	Kind  BoundKind
	Lower float64
	Upper float64
}

// LowerBounded requires the reading to stay at or above l.
func LowerBounded(l float64) ConstraintBounds {
	return ConstraintBounds{Kind: LowerBound, Lower: l}
}

// UpperBounded requires the reading to stay at or below u.
func UpperBounded(u float64) ConstraintBounds {
	return ConstraintBounds{Kind: UpperBound, Upper: u}
}

// DoubleBounded requires the reading to stay within [l, u]. It occupies two
// constraint slots on the optimizer side.
func DoubleBounded(l, u float64) ConstraintBounds {
	return ConstraintBounds{Kind: DoubleBound, Lower: l, Upper: u}
}

// Equality requires the reading to equal target.
func Equality(target float64) ConstraintBounds {
	return ConstraintBounds{Kind: EqualityBound, Lower: target}
}

// Model is the external simulation model driven by the bridge. A Model
// instance is mutable shared state: evaluations overwrite its variable
// values in place, so no two evaluations may run concurrently against the
// same instance.
type Model interface {
	Variables() []Variable
	Objectives() []Objective
	Constraints() []Constraint

	// Run executes one full simulation to completion. A returned error is
	// fatal for the evaluation and propagates unchanged to the optimizer.
	Run() error
}
