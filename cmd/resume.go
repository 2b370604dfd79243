package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/flowsim/evobridge/internal/bridge"
	"github.com/flowsim/evobridge/internal/sim"
	"github.com/flowsim/evobridge/internal/store"
)

var resumeCmd = &cobra.Command{
	Use:   "resume [run-id]",
	Short: "Continue a stored run from its best solution",
	Long: `Loads a stored run, writes its best front member back into the model,
and starts a fresh optimization seeded with that solution. Optimizer
population state is not preserved; only the best decision vector carries
over.`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

func init() {
	resumeCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML path (required)")
	resumeCmd.Flags().StringVar(&engineName, "engine", "nsga2", "Optimizer engine: nsga2, mayfly")
	resumeCmd.Flags().IntVar(&generations, "generations", 100, "Generations (nsga2) or iterations (mayfly)")
	resumeCmd.Flags().IntVar(&popSize, "pop", 60, "Population size")
	resumeCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	resumeCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Base directory for run results")

	resumeCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	prevID := args[0]

	resultStore, err := store.NewFSStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}
	previous, err := resultStore.LoadRun(prevID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", prevID, err)
	}
	best := bestStoredPoint(previous)
	if best == nil {
		return fmt.Errorf("run %s has no stored front to resume from", prevID)
	}

	cfg, err := sim.LoadConfig(scenarioPath)
	if err != nil {
		return err
	}
	if cfg.Name != previous.Config.Scenario {
		return fmt.Errorf("scenario %q does not match stored run's scenario %q",
			cfg.Name, previous.Config.Scenario)
	}

	reservoir, err := sim.New(*cfg)
	if err != nil {
		return err
	}
	adapter, err := bridge.NewAdapter(reservoir)
	if err != nil {
		return fmt.Errorf("failed to build problem: %w", err)
	}

	// One evaluation writes the stored solution into the model, so the
	// seeding generator picks it up as the current configuration.
	if _, _, err := adapter.Evaluate(best.Variables); err != nil {
		return fmt.Errorf("failed to restore stored solution: %w", err)
	}

	slog.Info("Resuming from stored run",
		"previous_run", prevID,
		"scenario", cfg.Name,
		"engine", engineName)

	return optimizeAndSave(cfg, reservoir, adapter)
}

// bestStoredPoint picks the front member to resume from: the feasible point
// with the lowest first objective, falling back to the overall lowest.
func bestStoredPoint(record *store.RunRecord) *store.FrontPoint {
	var best *store.FrontPoint
	for i := range record.Front {
		pt := &record.Front[i]
		if best == nil {
			best = pt
			continue
		}
		if pt.Feasible != best.Feasible {
			if pt.Feasible {
				best = pt
			}
			continue
		}
		if pt.Objectives[0] < best.Objectives[0] {
			best = pt
		}
	}
	return best
}
