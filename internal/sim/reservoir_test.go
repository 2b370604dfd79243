package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsim/evobridge/internal/bridge"
)

func testConfig() Config {
	return Config{
		Name:              "test-basin",
		InitialStorage:    50,
		CapacityStep:      10,
		CapacityRange:     [2]int32{4, 12},
		Inflows:           []float64{10, 10},
		Demands:           []float64{8, 8},
		EnvironmentalFlow: 2,
		StorageBand:       [2]float64{40, 130},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no periods", func(c *Config) { c.Inflows = nil; c.Demands = nil }, "at least one period"},
		{"length mismatch", func(c *Config) { c.Demands = c.Demands[:1] }, "1 demands"},
		{"bad capacity step", func(c *Config) { c.CapacityStep = 0 }, "capacity_step"},
		{"inverted capacity range", func(c *Config) { c.CapacityRange = [2]int32{5, 2} }, "capacity_range"},
		{"inverted storage band", func(c *Config) { c.StorageBand = [2]float64{90, 30} }, "storage_band"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `
name: yaml-basin
initial_storage: 50
capacity_step: 10
capacity_range: [4, 12]
inflows: [10, 10]
demands: [8, 8]
environmental_flow: 2
storage_band: [40, 130]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-basin", cfg.Name)
	assert.Equal(t, [2]int32{4, 12}, cfg.CapacityRange)
	assert.Len(t, cfg.Inflows, 2)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReservoirDefaultPolicyRun(t *testing.T) {
	r, err := New(testConfig())
	require.NoError(t, err)
	require.NoError(t, r.Run())

	// Full-supply policy at maximum capacity: no spill, no deficit, 8 units
	// released each period.
	assert.Equal(t, 0.0, r.totalDeficit)
	assert.Equal(t, 54.0, r.finalStorage)
	assert.Equal(t, 8.0, r.minDownstream)
}

func TestReservoirThroughBridge(t *testing.T) {
	r, err := New(testConfig())
	require.NoError(t, err)

	adapter, err := bridge.NewAdapter(r)
	require.NoError(t, err)

	p := adapter.Problem()
	assert.Equal(t, 3, p.NumVariables()) // 2 release fractions + 1 capacity step
	assert.Equal(t, 2, p.NumObjectives)
	require.Len(t, p.Constraints, 3) // lower bound + double-bounded band

	assert.Equal(t, bridge.RealType{Lower: 0, Upper: 1}, p.Types[0])
	assert.Equal(t, bridge.RealType{Lower: 4, Upper: 12}, p.Types[2])
	assert.Equal(t, bridge.OpGEQ, p.Constraints[0].Op)
	assert.Equal(t, bridge.OpGEQ, p.Constraints[1].Op)
	assert.Equal(t, bridge.OpLEQ, p.Constraints[2].Op)

	// Half supply in the first period, capacity 5 steps = 50 volume.
	objectives, constraints, err := adapter.Evaluate([]float64{0.5, 1.0, 5.0})
	require.NoError(t, err)

	// Deficit 4 (half of one 8-unit demand); final storage 42, negated for
	// the maximise direction.
	assert.Equal(t, []float64{4.0, -42.0}, objectives)
	// Min downstream flow 14 once, final storage twice for the band slots.
	assert.Equal(t, []float64{14.0, 42.0, 42.0}, constraints)
}

func TestReservoirSeedEncodesCurrentPolicy(t *testing.T) {
	r, err := New(testConfig())
	require.NoError(t, err)

	adapter, err := bridge.NewAdapter(r)
	require.NoError(t, err)

	// Current configuration: full supply at maximum capacity.
	assert.Equal(t, []float64{1, 1, 12}, adapter.Encode())
}
