package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flowsim/evobridge/internal/bridge"
	"github.com/flowsim/evobridge/internal/model"
	"github.com/flowsim/evobridge/internal/opt"
	"github.com/flowsim/evobridge/internal/sim"
	"github.com/flowsim/evobridge/internal/store"
)

var (
	scenarioPath string
	engineName   string
	generations  int
	popSize      int
	seed         int64
	dataDir      string
	noSeeding    bool
	weights      []float64
	penalty      float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an optimization against a reservoir scenario",
	Long: `Loads a YAML scenario, wraps the reservoir model behind the variable
bridge, and evolves its operating policy. The population is seeded with the
scenario's current configuration unless --no-seeding is given.`,
	RunE: runOptimization,
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML path (required)")
	runCmd.Flags().StringVar(&engineName, "engine", "nsga2", "Optimizer engine: nsga2, mayfly")
	runCmd.Flags().IntVar(&generations, "generations", 100, "Generations (nsga2) or iterations (mayfly)")
	runCmd.Flags().IntVar(&popSize, "pop", 60, "Population size")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	runCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Base directory for run results")
	runCmd.Flags().BoolVar(&noSeeding, "no-seeding", false, "Skip injecting the current configuration into the population")
	runCmd.Flags().Float64SliceVar(&weights, "weights", nil, "Objective weights for mayfly scalarization (default: equal)")
	runCmd.Flags().Float64Var(&penalty, "penalty", 1000, "Constraint violation penalty for mayfly scalarization")

	runCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(runCmd)
}

func runOptimization(cmd *cobra.Command, args []string) error {
	cfg, err := sim.LoadConfig(scenarioPath)
	if err != nil {
		return err
	}

	reservoir, err := sim.New(*cfg)
	if err != nil {
		return err
	}

	adapter, err := bridge.NewAdapter(reservoir)
	if err != nil {
		return fmt.Errorf("failed to build problem: %w", err)
	}

	return optimizeAndSave(cfg, reservoir, adapter)
}

// optimizeAndSave drives one optimization of an already-constructed model
// and persists the result. Callers may have primed the model's variable
// values beforehand; the seeding generator picks them up as the first
// individual.
func optimizeAndSave(cfg *sim.Config, reservoir *sim.Reservoir, adapter *bridge.Adapter) error {
	problem := adapter.Problem()

	slog.Info("Starting optimization",
		"scenario", cfg.Name,
		"engine", engineName,
		"variables", problem.NumVariables(),
		"objectives", problem.NumObjectives,
		"constraint_slots", len(problem.Constraints))

	var generator bridge.Generator = bridge.NewSeededGenerator(adapter)
	if noSeeding {
		generator = bridge.RandomGenerator{}
	}

	resultStore, err := store.NewFSStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to create result store: %w", err)
	}
	runID := uuid.NewString()

	trace, err := store.NewTraceWriter(dataDir, runID, false)
	if err != nil {
		return fmt.Errorf("failed to create trace writer: %w", err)
	}
	defer trace.Close()

	start := time.Now()
	result, err := runEngine(problem, adapter.Evaluate, generator, trace)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}
	elapsed := time.Since(start)

	record := buildRecord(runID, cfg.Name, reservoir.Objectives(), result, elapsed)
	if err := resultStore.SaveRun(runID, record); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	slog.Info("Optimization complete",
		"run_id", runID,
		"elapsed", elapsed,
		"evaluations", result.Evaluations,
		"front_size", len(result.Front),
		"feasible", record.FeasibleCount())

	fmt.Printf("Run %s: %d front members (%d feasible), %d evaluations in %s\n",
		runID, len(record.Front), record.FeasibleCount(), record.Evaluations, elapsed.Round(time.Millisecond))
	return nil
}

// runEngine dispatches to the selected optimizer. Mayfly runs against the
// weighted-sum scalarization and its best point is re-evaluated on the full
// problem so the record keeps real objective and constraint readings.
func runEngine(problem *bridge.Problem, evaluate opt.EvalFunc, generator bridge.Generator, trace *store.TraceWriter) (*opt.Result, error) {
	switch engineName {
	case "nsga2":
		engine := opt.NewNSGA2(opt.NSGA2Config{
			PopSize:     popSize,
			Generations: generations,
			Seed:        seed,
			Progress: func(generation, evaluations int, front []opt.Individual) {
				entry := store.TraceEntry{
					Generation:     generation,
					Evaluations:    evaluations,
					FrontSize:      len(front),
					BestObjectives: bestObjectives(front),
					Timestamp:      time.Now(),
				}
				if err := trace.Write(entry); err != nil {
					slog.Warn("Failed to write trace entry", "generation", generation, "error", err)
				}
			},
		})
		return engine.Run(problem, evaluate, generator)

	case "mayfly":
		w := weights
		if w == nil {
			w = make([]float64, problem.NumObjectives)
			for i := range w {
				w[i] = 1
			}
		}
		scalarProblem, scalarEval, err := opt.Scalarize(problem, evaluate, w, penalty)
		if err != nil {
			return nil, err
		}

		result, err := opt.NewMayfly(generations, popSize, seed).Run(scalarProblem, scalarEval, generator)
		if err != nil {
			return nil, err
		}

		best := result.Best()
		objectives, constraints, err := evaluate(best.Variables)
		if err != nil {
			return nil, err
		}
		best.Objectives = objectives
		best.Constraints = constraints
		for i, slot := range problem.Constraints {
			best.Violation += slot.Violation(constraints[i])
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unknown engine: %s", engineName)
	}
}

// bestObjectives returns the per-objective minimum over a front.
func bestObjectives(front []opt.Individual) []float64 {
	if len(front) == 0 {
		return nil
	}
	best := append([]float64(nil), front[0].Objectives...)
	for _, ind := range front[1:] {
		for m, v := range ind.Objectives {
			if v < best[m] {
				best[m] = v
			}
		}
	}
	return best
}

func buildRecord(runID, scenario string, objectives []model.Objective, result *opt.Result, elapsed time.Duration) *store.RunRecord {
	names := make([]string, len(objectives))
	for i, o := range objectives {
		names[i] = o.Name()
	}

	front := make([]store.FrontPoint, len(result.Front))
	for i, ind := range result.Front {
		front[i] = store.FrontPoint{
			Variables:   ind.Variables,
			Objectives:  ind.Objectives,
			Constraints: ind.Constraints,
			Feasible:    ind.Feasible(),
		}
	}

	return &store.RunRecord{
		RunID:          runID,
		ObjectiveNames: names,
		Front:          front,
		Evaluations:    result.Evaluations,
		ElapsedSeconds: elapsed.Seconds(),
		Timestamp:      time.Now(),
		Config: store.RunConfig{
			Scenario:    scenario,
			Engine:      engineName,
			PopSize:     popSize,
			Generations: generations,
			Seed:        seed,
		},
	}
}
