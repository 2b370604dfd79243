package store

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// RunConfig echoes the parameters an optimization run was started with, so
// stored results stay interpretable after the fact.
type RunConfig struct {
	Scenario    string `json:"scenario"`
	Engine      string `json:"engine"` // nsga2 or mayfly
	PopSize     int    `json:"popSize"`
	Generations int    `json:"generations"`
	Seed        int64  `json:"seed"`
}

// FrontPoint is one member of the final non-dominated set: the decoded
// decision vector, its signed objective values and, when the problem has
// constraint slots, the slot readings.
type FrontPoint struct {
	Variables   []float64 `json:"variables"`
	Objectives  []float64 `json:"objectives"`
	Constraints []float64 `json:"constraints,omitempty"`
	Feasible    bool      `json:"feasible"`
}

// RunRecord is a completed optimization run as persisted by the store.
// Objective values are stored in the optimizer's canonical-minimisation
// convention; maximise objectives keep their negated sign and are flipped
// back when reporting.
type RunRecord struct {
	RunID          string       `json:"runId"`
	Config         RunConfig    `json:"config"`
	ObjectiveNames []string     `json:"objectiveNames"`
	Front          []FrontPoint `json:"front"`
	Evaluations    int          `json:"evaluations"`
	ElapsedSeconds float64      `json:"elapsedSeconds"`
	Timestamp      time.Time    `json:"timestamp"`
}

// RunInfo is the listing metadata for one stored run.
type RunInfo struct {
	RunID       string    `json:"runId"`
	Scenario    string    `json:"scenario"`
	Engine      string    `json:"engine"`
	FrontSize   int       `json:"frontSize"`
	Evaluations int       `json:"evaluations"`
	Timestamp   time.Time `json:"timestamp"`
}

// ToInfo extracts listing metadata from a full record.
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:       r.RunID,
		Scenario:    r.Config.Scenario,
		Engine:      r.Config.Engine,
		FrontSize:   len(r.Front),
		Evaluations: r.Evaluations,
		Timestamp:   r.Timestamp,
	}
}

// ObjectiveSummary holds per-objective statistics over the stored front.
type ObjectiveSummary struct {
	Name   string
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes per-objective statistics across the front. Values are
// reported as stored, in the canonical-minimisation convention.
func (r *RunRecord) Summarize() []ObjectiveSummary {
	if len(r.Front) == 0 {
		return nil
	}

	numObjectives := len(r.Front[0].Objectives)
	summaries := make([]ObjectiveSummary, numObjectives)

	values := make([]float64, len(r.Front))
	for m := 0; m < numObjectives; m++ {
		for i, pt := range r.Front {
			values[i] = pt.Objectives[m]
		}

		s := ObjectiveSummary{
			Min:    values[0],
			Max:    values[0],
			Mean:   stat.Mean(values, nil),
			StdDev: stat.StdDev(values, nil),
		}
		for _, v := range values[1:] {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		if m < len(r.ObjectiveNames) {
			s.Name = r.ObjectiveNames[m]
		}
		summaries[m] = s
	}
	return summaries
}

// FeasibleCount returns how many front members satisfy every constraint
// slot.
func (r *RunRecord) FeasibleCount() int {
	n := 0
	for _, pt := range r.Front {
		if pt.Feasible {
			n++
		}
	}
	return n
}
