// Package config loads solver and logging configuration from YAML and
// EPMAQ_* environment variables and turns it into quant options.
//
// Environment variable naming convention:
//
//	EPMAQ_<SECTION>_<FIELD>   e.g.  EPMAQ_SOLVER_MAX_ITERATIONS, EPMAQ_MODELS_MATRIX
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/epmaquant/fluor"
	"github.com/katalvlaran/epmaquant/logging"
	"github.com/katalvlaran/epmaquant/matrixcorr"
	"github.com/katalvlaran/epmaquant/quant"
	"github.com/katalvlaran/epmaquant/zaf"
)

// envPrefix is the environment variable prefix of every setting.
const envPrefix = "EPMAQ"

// ErrInvalid indicates a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Update rule names.
const (
	UpdateNaive    = "naive"
	UpdateWegstein = "wegstein"
)

// Config is the full configuration tree.
type Config struct {
	Solver    SolverConfig      `mapstructure:"solver" yaml:"solver"`
	Models    ModelsConfig      `mapstructure:"models" yaml:"models"`
	Optimizer OptimizerConfig   `mapstructure:"optimizer" yaml:"optimizer"`
	Logging   logging.LogConfig `mapstructure:"logging" yaml:"logging"`
}

// SolverConfig drives the iteration.
type SolverConfig struct {
	MaxIterations  int     `mapstructure:"max_iterations" yaml:"max_iterations"`
	Tolerance      float64 `mapstructure:"tolerance" yaml:"tolerance"`
	Consecutive    int     `mapstructure:"consecutive" yaml:"consecutive"`
	DeltaTolerance float64 `mapstructure:"delta_tolerance" yaml:"delta_tolerance"`
	Update         string  `mapstructure:"update" yaml:"update"`
	QMin           float64 `mapstructure:"q_min" yaml:"q_min"`
	QMax           float64 `mapstructure:"q_max" yaml:"q_max"`
	Concurrency    int     `mapstructure:"concurrency" yaml:"concurrency"`
}

// ModelsConfig names the correction models.
type ModelsConfig struct {
	Matrix       string `mapstructure:"matrix" yaml:"matrix"`
	Fluorescence string `mapstructure:"fluorescence" yaml:"fluorescence"`
}

// OptimizerConfig sets the k-ratio selection thresholds.
type OptimizerConfig struct {
	MinOvervoltage  float64 `mapstructure:"min_overvoltage" yaml:"min_overvoltage"`
	MinSignificance float64 `mapstructure:"min_significance" yaml:"min_significance"`
	Combine         bool    `mapstructure:"combine" yaml:"combine"`
}

// Default returns the configuration matching quant.DefaultOptions.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			MaxIterations:  quant.DefaultMaxIterations,
			Tolerance:      quant.DefaultTolerance,
			Consecutive:    quant.DefaultConsecutive,
			DeltaTolerance: quant.DefaultDeltaTolerance,
			Update:         UpdateWegstein,
			QMin:           quant.DefaultQMin,
			QMax:           quant.DefaultQMax,
			Concurrency:    quant.DefaultConcurrency,
		},
		Models: ModelsConfig{
			Matrix:       zaf.DefaultModels().Matrix.String(),
			Fluorescence: zaf.DefaultModels().Fluorescence.String(),
		},
		Optimizer: OptimizerConfig{
			MinOvervoltage:  quant.DefaultMinOvervoltage,
			MinSignificance: quant.DefaultMinSignificance,
		},
		Logging: logging.LogConfig{
			Level:       logging.LevelInfo,
			Format:      logging.FormatJSON,
			OutputPaths: []string{"stderr"},
		},
	}
}

// newViper builds a Viper with YAML type, the EPMAQ_ prefix, automatic env
// binding and every key registered with its default, so that env overrides
// apply even without a file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	d := Default()
	v.SetDefault("solver.max_iterations", d.Solver.MaxIterations)
	v.SetDefault("solver.tolerance", d.Solver.Tolerance)
	v.SetDefault("solver.consecutive", d.Solver.Consecutive)
	v.SetDefault("solver.delta_tolerance", d.Solver.DeltaTolerance)
	v.SetDefault("solver.update", d.Solver.Update)
	v.SetDefault("solver.q_min", d.Solver.QMin)
	v.SetDefault("solver.q_max", d.Solver.QMax)
	v.SetDefault("solver.concurrency", d.Solver.Concurrency)
	v.SetDefault("models.matrix", d.Models.Matrix)
	v.SetDefault("models.fluorescence", d.Models.Fluorescence)
	v.SetDefault("optimizer.min_overvoltage", d.Optimizer.MinOvervoltage)
	v.SetDefault("optimizer.min_significance", d.Optimizer.MinSignificance)
	v.SetDefault("optimizer.combine", d.Optimizer.Combine)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_paths", d.Logging.OutputPaths)

	return v
}

// Load reads the YAML file at path, merges EPMAQ_* overrides, applies
// defaults and validates.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	return finalize(v)
}

// Read is Load for an in-memory YAML document.
func Read(r io.Reader) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}

	return finalize(v)
}

// LoadFromEnv builds a Config from defaults and EPMAQ_* variables only.
func LoadFromEnv() (*Config, error) { return finalize(newViper()) }

func finalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills zero-valued fields. Zero is a legal DeltaTolerance,
// MinSignificance, QMin and Concurrency, so those are left alone.
func ApplyDefaults(cfg *Config) {
	d := Default()
	if cfg.Solver.MaxIterations == 0 {
		cfg.Solver.MaxIterations = d.Solver.MaxIterations
	}
	if cfg.Solver.Tolerance == 0 {
		cfg.Solver.Tolerance = d.Solver.Tolerance
	}
	if cfg.Solver.Consecutive == 0 {
		cfg.Solver.Consecutive = d.Solver.Consecutive
	}
	if cfg.Solver.Update == "" {
		cfg.Solver.Update = d.Solver.Update
	}
	if cfg.Solver.QMax == 0 && cfg.Solver.QMin == 0 {
		cfg.Solver.QMin, cfg.Solver.QMax = d.Solver.QMin, d.Solver.QMax
	}
	if cfg.Models.Matrix == "" {
		cfg.Models.Matrix = d.Models.Matrix
	}
	if cfg.Models.Fluorescence == "" {
		cfg.Models.Fluorescence = d.Models.Fluorescence
	}
	if cfg.Optimizer.MinOvervoltage == 0 {
		cfg.Optimizer.MinOvervoltage = d.Optimizer.MinOvervoltage
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = d.Logging.Format
	}
	if len(cfg.Logging.OutputPaths) == 0 {
		cfg.Logging.OutputPaths = d.Logging.OutputPaths
	}
}

// Validate checks every field against the domain of the option it feeds.
func (c *Config) Validate() error {
	s := c.Solver
	switch {
	case s.MaxIterations < 1:
		return fmt.Errorf("solver.max_iterations=%d: %w", s.MaxIterations, ErrInvalid)
	case !(s.Tolerance > 0) || math.IsInf(s.Tolerance, 1):
		return fmt.Errorf("solver.tolerance=%g: %w", s.Tolerance, ErrInvalid)
	case s.Consecutive < 1:
		return fmt.Errorf("solver.consecutive=%d: %w", s.Consecutive, ErrInvalid)
	case !(s.DeltaTolerance >= 0) || math.IsInf(s.DeltaTolerance, 1):
		return fmt.Errorf("solver.delta_tolerance=%g: %w", s.DeltaTolerance, ErrInvalid)
	case s.Concurrency < 0:
		return fmt.Errorf("solver.concurrency=%d: %w", s.Concurrency, ErrInvalid)
	case !finite(s.QMin) || !finite(s.QMax) || s.QMin > s.QMax || s.QMax >= 1:
		return fmt.Errorf("solver.q_min=%g q_max=%g: %w", s.QMin, s.QMax, ErrInvalid)
	}
	switch strings.ToLower(s.Update) {
	case UpdateNaive, UpdateWegstein:
	default:
		return fmt.Errorf("solver.update=%q: %w", s.Update, ErrInvalid)
	}
	if _, err := matrixcorr.ParseKind(c.Models.Matrix); err != nil {
		return fmt.Errorf("models.matrix: %w", err)
	}
	if _, err := fluor.ParseKind(c.Models.Fluorescence); err != nil {
		return fmt.Errorf("models.fluorescence: %w", err)
	}
	if !(c.Optimizer.MinOvervoltage >= 1) || math.IsInf(c.Optimizer.MinOvervoltage, 1) {
		return fmt.Errorf("optimizer.min_overvoltage=%g: %w", c.Optimizer.MinOvervoltage, ErrInvalid)
	}
	if math.IsNaN(c.Optimizer.MinSignificance) {
		return fmt.Errorf("optimizer.min_significance=%g: %w", c.Optimizer.MinSignificance, ErrInvalid)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level=%q: %w", c.Logging.Level, ErrInvalid)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("logging.format=%q: %w", c.Logging.Format, ErrInvalid)
	}

	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Options converts the configuration into quant options. The logger is not
// included; build it with Logger and pass quant.WithLogger.
func (c *Config) Options() ([]quant.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mk, _ := matrixcorr.ParseKind(c.Models.Matrix)
	fk, _ := fluor.ParseKind(c.Models.Fluorescence)

	var update quant.UpdateRule = quant.NaiveRule{}
	if strings.EqualFold(c.Solver.Update, UpdateWegstein) {
		update = quant.NewWegstein(c.Solver.QMin, c.Solver.QMax)
	}
	var opt quant.Optimizer = quant.SimpleOptimizer{
		MinOvervoltage:  c.Optimizer.MinOvervoltage,
		MinSignificance: c.Optimizer.MinSignificance,
	}
	if c.Optimizer.Combine {
		opt = quant.CombiningOptimizer{Next: opt}
	}

	return []quant.Option{
		quant.WithMaxIterations(c.Solver.MaxIterations),
		quant.WithTolerance(c.Solver.Tolerance),
		quant.WithConsecutive(c.Solver.Consecutive),
		quant.WithDeltaTolerance(c.Solver.DeltaTolerance),
		quant.WithConcurrency(c.Solver.Concurrency),
		quant.WithModels(zaf.Models{Matrix: mk, Fluorescence: fk}),
		quant.WithUpdate(update),
		quant.WithOptimizer(opt),
	}, nil
}

// Logger builds the configured logger.
func (c *Config) Logger() (logging.Logger, error) { return logging.NewLogger(c.Logging) }

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}

	return out, nil
}
