package model

// BasicVariable is a value-backed Variable for in-memory models and tests.
type BasicVariable struct {
	VarName  string
	Doubles  []float64
	Ints     []int32
	DoubleLo []float64
	DoubleHi []float64
	IntLo    []int32
	IntHi    []int32
}

func (v *BasicVariable) Name() string     { return v.VarName }
func (v *BasicVariable) DoubleSize() int  { return len(v.Doubles) }
func (v *BasicVariable) IntegerSize() int { return len(v.Ints) }

func (v *BasicVariable) DoubleBounds() (lower, upper []float64) {
	return v.DoubleLo, v.DoubleHi
}

func (v *BasicVariable) IntegerBounds() (lower, upper []int32) {
	return v.IntLo, v.IntHi
}

func (v *BasicVariable) DoubleValues() []float64 { return v.Doubles }

func (v *BasicVariable) SetDoubleValues(vals []float64) {
	copy(v.Doubles, vals)
}

func (v *BasicVariable) IntegerValues() []int32 { return v.Ints }

func (v *BasicVariable) SetIntegerValues(vals []int32) {
	copy(v.Ints, vals)
}

// SimpleObjective adapts a closure to the Objective interface.
type SimpleObjective struct {
	MetricName string
	Dir        Direction
	Value      func() float64
}

func (o *SimpleObjective) Name() string             { return o.MetricName }
func (o *SimpleObjective) AggregatedValue() float64 { return o.Value() }
func (o *SimpleObjective) Direction() Direction     { return o.Dir }

// SimpleConstraint adapts a closure plus a bound classification to the
// Constraint interface.
type SimpleConstraint struct {
	MetricName string
	Bound      ConstraintBounds
	Value      func() float64
}

func (c *SimpleConstraint) Name() string             { return c.MetricName }
func (c *SimpleConstraint) AggregatedValue() float64 { return c.Value() }
func (c *SimpleConstraint) Bounds() ConstraintBounds { return c.Bound }
