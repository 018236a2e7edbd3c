package config_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/epmaquant/config"
	"github.com/katalvlaran/epmaquant/fluor"
	"github.com/katalvlaran/epmaquant/matrixcorr"
	"github.com/katalvlaran/epmaquant/quant"
	"github.com/katalvlaran/epmaquant/xraydb"
)

const sample = `
solver:
  max_iterations: 40
  tolerance: 1.0e-6
  update: naive
models:
  matrix: citzaf
  fluorescence: "null"
optimizer:
  min_overvoltage: 1.2
  combine: true
logging:
  level: debug
  format: console
`

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epmaq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Solver.MaxIterations)
	assert.Equal(t, 1e-6, cfg.Solver.Tolerance)
	assert.Equal(t, "naive", cfg.Solver.Update)
	assert.Equal(t, quant.DefaultConsecutive, cfg.Solver.Consecutive, "defaulted")
	assert.Equal(t, quant.DefaultQMin, cfg.Solver.QMin)
	assert.Equal(t, "citzaf", cfg.Models.Matrix)
	assert.True(t, cfg.Optimizer.Combine)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"stderr"}, cfg.Logging.OutputPaths)

	opts, err := cfg.Options()
	require.NoError(t, err)
	q, err := quant.New(xraydb.New(), opts...)
	require.NoError(t, err)
	o := q.Options()
	assert.Equal(t, 40, o.MaxIterations())
	assert.Equal(t, "naive", o.Update().Name())
	assert.Equal(t, matrixcorr.KindCitZAF, o.Models().Matrix)
	assert.Equal(t, fluor.KindNull, o.Models().Fluorescence)

	log, err := cfg.Logger()
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg, err := config.Read(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)
	q, err := quant.New(xraydb.New(), opts...)
	require.NoError(t, err)
	assert.Equal(t, quant.DefaultOptions().Models(), q.Options().Models())
	assert.Equal(t, "wegstein", q.Options().Update().Name())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EPMAQ_SOLVER_MAX_ITERATIONS", "7")
	t.Setenv("EPMAQ_MODELS_MATRIX", "Riveros1993")

	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Solver.MaxIterations)
	assert.Equal(t, "Riveros1993", cfg.Models.Matrix)

	cfg, err = config.Read(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Solver.MaxIterations, "env wins over file")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"iterations":       func(c *config.Config) { c.Solver.MaxIterations = 0 },
		"tolerance":        func(c *config.Config) { c.Solver.Tolerance = -1 },
		"consecutive":      func(c *config.Config) { c.Solver.Consecutive = 0 },
		"delta":            func(c *config.Config) { c.Solver.DeltaTolerance = -1 },
		"concurrency":      func(c *config.Config) { c.Solver.Concurrency = -2 },
		"q":                func(c *config.Config) { c.Solver.QMax = 1 },
		"update":           func(c *config.Config) { c.Solver.Update = "newton" },
		"overvoltage":      func(c *config.Config) { c.Optimizer.MinOvervoltage = 0.5 },
		"level":            func(c *config.Config) { c.Logging.Level = "trace" },
		"format":           func(c *config.Config) { c.Logging.Format = "consol" },
		"tolerance inf":    func(c *config.Config) { c.Solver.Tolerance = math.Inf(1) },
		"tolerance nan":    func(c *config.Config) { c.Solver.Tolerance = math.NaN() },
		"delta inf":        func(c *config.Config) { c.Solver.DeltaTolerance = math.Inf(1) },
		"delta nan":        func(c *config.Config) { c.Solver.DeltaTolerance = math.NaN() },
		"q_min inf":        func(c *config.Config) { c.Solver.QMin = math.Inf(-1) },
		"q_max inf":        func(c *config.Config) { c.Solver.QMax = math.Inf(-1) },
		"q_min nan":        func(c *config.Config) { c.Solver.QMin = math.NaN() },
		"overvoltage inf":  func(c *config.Config) { c.Optimizer.MinOvervoltage = math.Inf(1) },
		"significance nan": func(c *config.Config) { c.Optimizer.MinSignificance = math.NaN() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, config.ErrInvalid)
			_, err = cfg.Options()
			assert.Error(t, err)
		})
	}

	cfg := config.Default()
	cfg.Models.Matrix = "pap"
	assert.ErrorIs(t, cfg.Validate(), matrixcorr.ErrUnknownKind)
	cfg = config.Default()
	cfg.Models.Fluorescence = "armstrong"
	assert.ErrorIs(t, cfg.Validate(), fluor.ErrUnknownKind)

	_, err := config.Read(strings.NewReader("solver:\n  update: newton\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)

	for _, doc := range []string{
		"solver:\n  tolerance: .inf\n",
		"solver:\n  delta_tolerance: .inf\n",
		"solver:\n  q_min: -.inf\n",
		"logging:\n  format: consol\n",
	} {
		_, err := config.Read(strings.NewReader(doc))
		assert.ErrorIs(t, err, config.ErrInvalid, doc)
	}
}

func TestMarshal(t *testing.T) {
	cfg := config.Default()
	cfg.Solver.Update = config.UpdateNaive
	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "max_iterations: 100")

	var back config.Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)

	again, err := config.Read(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, cfg, *again)
}
