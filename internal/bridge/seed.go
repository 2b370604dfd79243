package bridge

import "math/rand"

// Generator produces candidate solution vectors for population
// initialization.
type Generator interface {
	Generate(p *Problem, rng *rand.Rand) []float64
}

// RandomGenerator samples every dimension uniformly within its declared
// bounds.
type RandomGenerator struct{}

func (RandomGenerator) Generate(p *Problem, rng *rand.Rand) []float64 {
	x := make([]float64, len(p.Types))
	for i, t := range p.Types {
		x[i] = t.Lower + rng.Float64()*(t.Upper-t.Lower)
	}
	return x
}

// SeededGenerator injects the wrapped model's current configuration as the
// first generated individual, then falls back to uniform-random generation.
// The one-shot flag is per-instance state: each optimization run must use a
// fresh generator.
type SeededGenerator struct {
	adapter *Adapter
	seeded  bool
}

// NewSeededGenerator returns a generator whose first individual is the
// current state of a's model, encoded through the variable map.
func NewSeededGenerator(a *Adapter) *SeededGenerator {
	return &SeededGenerator{adapter: a}
}

func (g *SeededGenerator) Generate(p *Problem, rng *rand.Rand) []float64 {
	if !g.seeded {
		g.seeded = true
		return g.adapter.Encode()
	}
	return RandomGenerator{}.Generate(p, rng)
}
