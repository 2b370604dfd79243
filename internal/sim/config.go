// Package sim provides a small deterministic reservoir-operation model that
// implements the model.Model contract. It exists so the bridge and the
// optimizer engines have a realistic simulation to drive: monthly release
// decisions plus an integer capacity step, with supply-deficit and storage
// objectives and environmental-flow constraints.
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one reservoir scenario. Inflows and demands must have
// the same length; one entry per simulated period.
type Config struct {
	Name string `yaml:"name"`

	// InitialStorage is the storage volume at the start of the horizon.
	InitialStorage float64 `yaml:"initial_storage"`

	// CapacityStep converts the integer capacity decision into a volume:
	// capacity = steps * CapacityStep.
	CapacityStep  float64  `yaml:"capacity_step"`
	CapacityRange [2]int32 `yaml:"capacity_range"`

	Inflows []float64 `yaml:"inflows"`
	Demands []float64 `yaml:"demands"`

	// EnvironmentalFlow is the minimum downstream flow that must be met in
	// every period.
	EnvironmentalFlow float64 `yaml:"environmental_flow"`

	// StorageBand is the [lower, upper] band the end-of-horizon storage must
	// stay within.
	StorageBand [2]float64 `yaml:"storage_band"`
}

// Validate checks scenario consistency.
func (c *Config) Validate() error {
	if len(c.Inflows) == 0 {
		return fmt.Errorf("scenario %q: at least one period required", c.Name)
	}
	if len(c.Inflows) != len(c.Demands) {
		return fmt.Errorf("scenario %q: %d inflows but %d demands",
			c.Name, len(c.Inflows), len(c.Demands))
	}
	if c.CapacityStep <= 0 {
		return fmt.Errorf("scenario %q: capacity_step must be positive", c.Name)
	}
	if c.CapacityRange[0] < 0 || c.CapacityRange[1] < c.CapacityRange[0] {
		return fmt.Errorf("scenario %q: invalid capacity_range [%d, %d]",
			c.Name, c.CapacityRange[0], c.CapacityRange[1])
	}
	if c.StorageBand[1] < c.StorageBand[0] {
		return fmt.Errorf("scenario %q: invalid storage_band [%g, %g]",
			c.Name, c.StorageBand[0], c.StorageBand[1])
	}
	return nil
}

// LoadConfig reads and validates a scenario from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
