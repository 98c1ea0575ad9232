package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
	"gopkg.in/yaml.v2"
)

func validConfig() config.Config {
	return config.Config{
		Grid:   config.Grid{Rows: 2, Cols: 2, EntryProbability: 0.3},
		Signal: config.Signal{Mode: config.ModeMaxPressure},
		Control: config.Control{
			Step: config.ControlStep{Total: 100},
		},
	}
}

func TestDefaults(t *testing.T) {
	rc, err := config.NewRuntimeConfig(validConfig())
	require.NoError(t, err)

	// 零值项填充默认值
	assert.Equal(t, int32(10), rc.Road.Cells)
	assert.Equal(t, 4.0, rc.Road.MaxDensity)
	assert.Equal(t, 1.0, rc.Road.WaveSpeed)
	assert.Equal(t, 2.0, rc.Road.QueueThreshold)
	assert.Equal(t, int32(5), rc.Signal.MinGreen)
	assert.Equal(t, int32(30), rc.Signal.MaxRed)
	assert.Equal(t, int32(10), rc.Signal.FixedCycle)
	assert.Equal(t, 2.0, rc.Entry.SpawnSpace)
	assert.Equal(t, 2.0, rc.Entry.SpawnAmount)
	assert.Equal(t, config.ModeMaxPressure, rc.Mode())
}

func TestValidation(t *testing.T) {
	for name, mutate := range map[string]func(*config.Config){
		"zero rows":             func(c *config.Config) { c.Grid.Rows = 0 },
		"zero cols":             func(c *config.Config) { c.Grid.Cols = 0 },
		"negative probability":  func(c *config.Config) { c.Grid.EntryProbability = -0.1 },
		"probability over one":  func(c *config.Config) { c.Grid.EntryProbability = 1.1 },
		"negative cells":        func(c *config.Config) { c.Road.Cells = -1 },
		"negative max density":  func(c *config.Config) { c.Road.MaxDensity = -4 },
		"negative wave speed":   func(c *config.Config) { c.Road.WaveSpeed = -1 },
		"unknown mode":          func(c *config.Config) { c.Signal.Mode = "manual" },
		"min green over max":    func(c *config.Config) { c.Signal.MinGreen = 40; c.Signal.MaxRed = 20 },
		"negative fixed cycle":  func(c *config.Config) { c.Signal.FixedCycle = -1 },
		"spawn over capacity":   func(c *config.Config) { c.Entry.SpawnSpace = 3; c.Entry.SpawnAmount = 3 },
		"negative spawn amount": func(c *config.Config) { c.Entry.SpawnAmount = -1 },
		"negative total steps":  func(c *config.Config) { c.Control.Step.Total = -1 },
	} {
		c := validConfig()
		mutate(&c)
		_, err := config.NewRuntimeConfig(c)
		assert.Errorf(t, err, "config %q must be rejected", name)
	}
}

func TestYAML(t *testing.T) {
	data := `
grid:
  rows: 4
  cols: 4
  entry_probability: 0.3
  seed: 42
signal:
  mode: max_pressure
  min_green: 3
control:
  step:
    total: 1000
  compare: true
output:
  uri: mongodb://localhost:27017
  roads: [0, 1, 2]
`
	var c config.Config
	require.NoError(t, yaml.UnmarshalStrict([]byte(data), &c))
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)

	assert.Equal(t, int32(4), rc.Grid.Rows)
	assert.Equal(t, uint64(42), rc.Grid.Seed)
	assert.Equal(t, int32(3), rc.Signal.MinGreen)
	assert.True(t, rc.C.Compare)
	assert.Equal(t, []int32{0, 1, 2}, rc.All.Output.Roads)

	// 未知字段被严格模式拒绝
	assert.Error(t, yaml.UnmarshalStrict([]byte("grid:\n  rowz: 2\n"), &c))
}
