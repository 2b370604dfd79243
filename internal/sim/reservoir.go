package sim

import (
	"math"

	"github.com/flowsim/evobridge/internal/model"
)

// Reservoir is a deterministic single-reservoir operation model. Decision
// variables are a per-period release fraction (continuous, [0,1]) and one
// integer capacity step. A run walks the horizon once: inflow arrives,
// excess above capacity spills, the release fraction of demand is supplied
// from storage, and the remainder carries over.
//
// Aggregated readings after a run: total supply deficit (minimise), final
// storage (maximise), minimum downstream flow (lower-bounded) and final
// storage (double-bounded band).
type Reservoir struct {
	cfg Config

	releases *model.BasicVariable
	capacity *model.BasicVariable

	totalDeficit  float64
	finalStorage  float64
	minDownstream float64
}

// New builds a reservoir model from a validated scenario. The variables'
// initial values encode the current operating policy (full supply at
// maximum capacity), which the seeding generator injects into the
// optimizer's first population.
func New(cfg Config) (*Reservoir, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	periods := len(cfg.Inflows)
	releases := &model.BasicVariable{
		VarName:  "releases",
		Doubles:  make([]float64, periods),
		DoubleLo: make([]float64, periods),
		DoubleHi: make([]float64, periods),
	}
	for i := range releases.Doubles {
		releases.Doubles[i] = 1.0
		releases.DoubleHi[i] = 1.0
	}

	capacity := &model.BasicVariable{
		VarName: "capacity",
		Ints:    []int32{cfg.CapacityRange[1]},
		IntLo:   []int32{cfg.CapacityRange[0]},
		IntHi:   []int32{cfg.CapacityRange[1]},
	}

	return &Reservoir{cfg: cfg, releases: releases, capacity: capacity}, nil
}

func (r *Reservoir) Variables() []model.Variable {
	return []model.Variable{r.releases, r.capacity}
}

func (r *Reservoir) Objectives() []model.Objective {
	return []model.Objective{
		&model.SimpleObjective{
			MetricName: "total-deficit",
			Dir:        model.Minimise,
			Value:      func() float64 { return r.totalDeficit },
		},
		&model.SimpleObjective{
			MetricName: "final-storage",
			Dir:        model.Maximise,
			Value:      func() float64 { return r.finalStorage },
		},
	}
}

func (r *Reservoir) Constraints() []model.Constraint {
	return []model.Constraint{
		&model.SimpleConstraint{
			MetricName: "environmental-flow",
			Bound:      model.LowerBounded(r.cfg.EnvironmentalFlow),
			Value:      func() float64 { return r.minDownstream },
		},
		&model.SimpleConstraint{
			MetricName: "storage-band",
			Bound:      model.DoubleBounded(r.cfg.StorageBand[0], r.cfg.StorageBand[1]),
			Value:      func() float64 { return r.finalStorage },
		},
	}
}

// Run executes one full pass over the horizon using the current variable
// values and refreshes the aggregated readings.
func (r *Reservoir) Run() error {
	capVol := float64(r.capacity.Ints[0]) * r.cfg.CapacityStep
	storage := math.Min(r.cfg.InitialStorage, capVol)

	r.totalDeficit = 0
	r.minDownstream = math.Inf(1)

	for i := range r.cfg.Inflows {
		storage += r.cfg.Inflows[i]

		spill := 0.0
		if storage > capVol {
			spill = storage - capVol
			storage = capVol
		}

		demand := r.cfg.Demands[i]
		supplied := math.Min(r.releases.Doubles[i]*demand, storage)
		storage -= supplied

		r.totalDeficit += demand - supplied
		r.minDownstream = math.Min(r.minDownstream, supplied+spill)
	}

	r.finalStorage = storage
	return nil
}
