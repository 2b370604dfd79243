package opt

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/flowsim/evobridge/internal/bridge"
)

// NSGA2Config tunes the NSGA-II engine. Zero values fall back to the
// defaults in NewNSGA2.
type NSGA2Config struct {
	PopSize       int
	Generations   int
	CrossoverRate float64
	MutationRate  float64 // per-dimension; 0 means 1/numVariables
	Eta           float64 // SBX and polynomial-mutation distribution index
	Seed          int64

	// Progress, when non-nil, is invoked after every generation with the
	// current first non-dominated front.
	Progress func(generation, evaluations int, front []Individual)
}

// NSGA2 implements the elitist non-dominated sorting genetic algorithm with
// crowding-distance diversity and constraint-dominated tournament selection.
type NSGA2 struct {
	cfg NSGA2Config
}

// NewNSGA2 creates an NSGA-II engine with the given configuration.
func NewNSGA2(cfg NSGA2Config) *NSGA2 {
	if cfg.PopSize <= 0 {
		cfg.PopSize = 100
	}
	if cfg.Generations <= 0 {
		cfg.Generations = 100
	}
	if cfg.CrossoverRate == 0 {
		cfg.CrossoverRate = 0.9
	}
	if cfg.Eta == 0 {
		cfg.Eta = 20.0
	}
	return &NSGA2{cfg: cfg}
}

// nsgaSolution is an Individual annotated with non-domination rank and
// crowding distance.
type nsgaSolution struct {
	Individual
	rank     int
	distance float64
}

// Run evolves a population against the problem, drawing initial individuals
// from gen, and returns the final first non-dominated front. An evaluation
// error aborts the run immediately.
func (n *NSGA2) Run(p *bridge.Problem, evaluate EvalFunc, gen bridge.Generator) (*Result, error) {
	if gen == nil {
		gen = bridge.RandomGenerator{}
	}
	rng := rand.New(rand.NewSource(n.cfg.Seed))

	mutationRate := n.cfg.MutationRate
	if mutationRate == 0 {
		mutationRate = 1.0 / float64(p.NumVariables())
	}

	evaluations := 0
	eval := func(x []float64) (*nsgaSolution, error) {
		objectives, constraints, err := evaluate(x)
		if err != nil {
			return nil, err
		}
		evaluations++
		sol := &nsgaSolution{Individual: Individual{
			Variables:   x,
			Objectives:  objectives,
			Constraints: constraints,
		}}
		for i, slot := range p.Constraints {
			sol.Violation += slot.Violation(constraints[i])
		}
		return sol, nil
	}

	population := make([]*nsgaSolution, 0, n.cfg.PopSize)
	for i := 0; i < n.cfg.PopSize; i++ {
		sol, err := eval(gen.Generate(p, rng))
		if err != nil {
			return nil, fmt.Errorf("initial population: %w", err)
		}
		population = append(population, sol)
	}
	// Rank the initial population so the first tournament has something to
	// compare on.
	population = selectSurvivors(population, n.cfg.PopSize)

	for g := 0; g < n.cfg.Generations; g++ {
		offspring, err := n.makeOffspring(p, population, eval, mutationRate, rng)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", g, err)
		}
		population = selectSurvivors(append(population, offspring...), n.cfg.PopSize)

		if n.cfg.Progress != nil {
			n.cfg.Progress(g+1, evaluations, firstFront(population))
		}
		if (g+1)%25 == 0 {
			slog.Debug("NSGA-II progress", "generation", g+1, "evaluations", evaluations)
		}
	}

	front := firstFront(population)

	return &Result{
		Front:       front,
		Evaluations: evaluations,
		Generations: n.cfg.Generations,
	}, nil
}

// firstFront extracts the rank-0 individuals from a ranked population.
func firstFront(population []*nsgaSolution) []Individual {
	fronts := nonDominatedSort(population)
	front := make([]Individual, len(fronts[0]))
	for i, sol := range fronts[0] {
		front[i] = sol.Individual
	}
	return front
}

func (n *NSGA2) makeOffspring(p *bridge.Problem, population []*nsgaSolution,
	eval func([]float64) (*nsgaSolution, error), mutationRate float64, rng *rand.Rand) ([]*nsgaSolution, error) {

	offspring := make([]*nsgaSolution, 0, n.cfg.PopSize)
	for len(offspring) < n.cfg.PopSize {
		p1 := tournament(population, rng)
		p2 := tournament(population, rng)

		c1 := append([]float64(nil), p1.Variables...)
		c2 := append([]float64(nil), p2.Variables...)
		if rng.Float64() < n.cfg.CrossoverRate {
			sbxCrossover(c1, c2, p.Types, n.cfg.Eta, rng)
		}
		polynomialMutation(c1, p.Types, mutationRate, n.cfg.Eta, rng)
		polynomialMutation(c2, p.Types, mutationRate, n.cfg.Eta, rng)

		for _, child := range [][]float64{c1, c2} {
			if len(offspring) == n.cfg.PopSize {
				break
			}
			sol, err := eval(child)
			if err != nil {
				return nil, err
			}
			offspring = append(offspring, sol)
		}
	}
	return offspring, nil
}

// tournament picks the better of two random solutions under the
// constraint-dominated ordering: feasibility first, then rank, then
// crowding distance.
func tournament(population []*nsgaSolution, rng *rand.Rand) *nsgaSolution {
	a := population[rng.Intn(len(population))]
	b := population[rng.Intn(len(population))]

	if a.Violation != b.Violation {
		if a.Violation < b.Violation {
			return a
		}
		return b
	}
	if a.rank != b.rank {
		if a.rank < b.rank {
			return a
		}
		return b
	}
	if a.distance > b.distance {
		return a
	}
	return b
}

// dominates implements constraint-dominated Pareto dominance: a feasible
// solution dominates an infeasible one, a less-violating solution dominates
// a more-violating one, and two feasible solutions compare by objectives.
func dominates(a, b *nsgaSolution) bool {
	if a.Violation != b.Violation {
		return a.Violation < b.Violation
	}

	better := false
	for i := range a.Objectives {
		if a.Objectives[i] > b.Objectives[i] {
			return false
		}
		if a.Objectives[i] < b.Objectives[i] {
			better = true
		}
	}
	return better
}

// nonDominatedSort partitions the population into fronts, rank 0 first.
func nonDominatedSort(population []*nsgaSolution) [][]*nsgaSolution {
	dominationCount := make(map[*nsgaSolution]int, len(population))
	dominatedSet := make(map[*nsgaSolution][]*nsgaSolution, len(population))

	var fronts [][]*nsgaSolution
	var current []*nsgaSolution

	for _, p := range population {
		for _, q := range population {
			if p == q {
				continue
			}
			if dominates(p, q) {
				dominatedSet[p] = append(dominatedSet[p], q)
			} else if dominates(q, p) {
				dominationCount[p]++
			}
		}
		if dominationCount[p] == 0 {
			p.rank = 0
			current = append(current, p)
		}
	}
	fronts = append(fronts, current)

	for i := 0; len(fronts[i]) > 0; i++ {
		var next []*nsgaSolution
		for _, p := range fronts[i] {
			for _, q := range dominatedSet[p] {
				dominationCount[q]--
				if dominationCount[q] == 0 {
					q.rank = i + 1
					next = append(next, q)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		fronts = append(fronts, next)
	}
	return fronts
}

// crowdingDistance assigns the diversity measure within one front. Boundary
// solutions get infinite distance so they always survive truncation.
func crowdingDistance(front []*nsgaSolution) {
	if len(front) == 0 {
		return
	}
	for _, sol := range front {
		sol.distance = 0
	}

	numObjectives := len(front[0].Objectives)
	for m := 0; m < numObjectives; m++ {
		sort.Slice(front, func(i, j int) bool {
			return front[i].Objectives[m] < front[j].Objectives[m]
		})

		front[0].distance = math.Inf(1)
		front[len(front)-1].distance = math.Inf(1)

		objRange := front[len(front)-1].Objectives[m] - front[0].Objectives[m]
		if objRange == 0 {
			continue
		}
		for i := 1; i < len(front)-1; i++ {
			front[i].distance += (front[i+1].Objectives[m] - front[i-1].Objectives[m]) / objRange
		}
	}
}

// selectSurvivors keeps the best popSize solutions from the combined
// parent+offspring population, filling whole fronts and truncating the last
// one by crowding distance.
func selectSurvivors(combined []*nsgaSolution, popSize int) []*nsgaSolution {
	fronts := nonDominatedSort(combined)
	for _, front := range fronts {
		crowdingDistance(front)
	}

	next := make([]*nsgaSolution, 0, popSize)
	for _, front := range fronts {
		if len(next)+len(front) <= popSize {
			next = append(next, front...)
			continue
		}
		sort.Slice(front, func(i, j int) bool {
			return front[i].distance > front[j].distance
		})
		next = append(next, front[:popSize-len(next)]...)
		break
	}
	return next
}

// sbxCrossover performs simulated binary crossover in place, clamping to
// each dimension's bounds.
func sbxCrossover(c1, c2 []float64, types []bridge.RealType, eta float64, rng *rand.Rand) {
	for i := range c1 {
		if rng.Float64() >= 0.5 {
			continue
		}
		p1, p2 := c1[i], c2[i]

		u := rng.Float64()
		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2.0*u, 1.0/(eta+1.0))
		} else {
			beta = math.Pow(1.0/(2.0*(1.0-u)), 1.0/(eta+1.0))
		}

		c1[i] = clampTo(0.5*((1.0+beta)*p1+(1.0-beta)*p2), types[i])
		c2[i] = clampTo(0.5*((1.0-beta)*p1+(1.0+beta)*p2), types[i])
	}
}

// polynomialMutation perturbs dimensions in place with probability rate.
func polynomialMutation(x []float64, types []bridge.RealType, rate, eta float64, rng *rand.Rand) {
	for i := range x {
		if rng.Float64() >= rate {
			continue
		}
		delta := types[i].Upper - types[i].Lower

		u := rng.Float64()
		var deltaq float64
		if u < 0.5 {
			deltaq = math.Pow(2.0*u, 1.0/(eta+1.0)) - 1.0
		} else {
			deltaq = 1.0 - math.Pow(2.0*(1.0-u), 1.0/(eta+1.0))
		}

		x[i] = clampTo(x[i]+deltaq*delta, types[i])
	}
}

func clampTo(v float64, t bridge.RealType) float64 {
	return math.Max(t.Lower, math.Min(t.Upper, v))
}
