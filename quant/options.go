// SPDX-License-Identifier: MIT

// Package quant: functional configuration of the solver. This file defines:
//   - documented defaults (constants),
//   - Option / Options (functional options with internal state),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Notes:
//   - Defaults reproduce the classical configuration: XPP with Reed
//     fluorescence, the simple optimizer, Wegstein updates, no
//     unmeasured-element rule and a silent logger.
//   - Options are plain values; a Quantifier copies them at construction.
package quant

import (
	"math"

	"github.com/katalvlaran/epmaquant/logging"
	"github.com/katalvlaran/epmaquant/zaf"
)

// ---------- Defaults ----------

const (
	// DefaultMaxIterations caps the number of solver steps.
	DefaultMaxIterations = 100

	// DefaultTolerance is the convergence threshold on max|r_i − 1|.
	DefaultTolerance = 1e-5

	// DefaultConsecutive is the number of consecutive steps that must satisfy
	// DefaultTolerance.
	DefaultConsecutive = 1

	// DefaultDeltaTolerance stops the iteration when no fraction moved by more
	// than this between steps.
	DefaultDeltaTolerance = 1e-8

	// DefaultConcurrency bounds QuantifyBatch; 0 means one worker per request.
	DefaultConcurrency = 0
)

const (
	panicMaxIterations  = "quant: WithMaxIterations: n must be ≥ 1"
	panicTolerance      = "quant: WithTolerance: tol must be finite and > 0"
	panicConsecutive    = "quant: WithConsecutive: n must be ≥ 1"
	panicDeltaTolerance = "quant: WithDeltaTolerance: tol must be finite and ≥ 0"
	panicConcurrency    = "quant: WithConcurrency: n must be ≥ 0"
	panicNil            = "quant: nil option value"
)

// Option mutates Options.
type Option func(*Options)

// Options is the effective solver configuration.
type Options struct {
	maxIterations  int
	tolerance      float64
	consecutive    int
	deltaTolerance float64
	concurrency    int

	models     zaf.Models
	calculator Calculator // nil ⇒ ZAFCalculator over models
	optimizer  Optimizer
	update     UpdateRule
	unmeasured UnmeasuredRule
	logger     logging.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		maxIterations:  DefaultMaxIterations,
		tolerance:      DefaultTolerance,
		consecutive:    DefaultConsecutive,
		deltaTolerance: DefaultDeltaTolerance,
		concurrency:    DefaultConcurrency,
		models:         zaf.DefaultModels(),
		optimizer:      DefaultSimpleOptimizer(),
		update:         DefaultWegstein(),
		unmeasured:     NullUnmeasured{},
		logger:         logging.NewNopLogger(),
	}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// MaxIterations returns the iteration cap.
func (o Options) MaxIterations() int { return o.maxIterations }

// Tolerance returns the residual threshold.
func (o Options) Tolerance() float64 { return o.tolerance }

// Consecutive returns the required number of consecutive converged steps.
func (o Options) Consecutive() int { return o.consecutive }

// DeltaTolerance returns the composition-change threshold.
func (o Options) DeltaTolerance() float64 { return o.deltaTolerance }

// Models returns the correction models used by the default calculator.
func (o Options) Models() zaf.Models { return o.models }

// Update returns the update rule.
func (o Options) Update() UpdateRule { return o.update }

// WithMaxIterations sets the iteration cap.
//
// Errors:
//   - Panics when n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(panicMaxIterations)
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithTolerance sets the residual threshold max|k_meas/k_calc − 1|.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolerance)
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithConsecutive requires n consecutive steps below the tolerance.
func WithConsecutive(n int) Option {
	if n < 1 {
		panic(panicConsecutive)
	}

	return func(o *Options) { o.consecutive = n }
}

// WithDeltaTolerance sets the composition-change stop. 0 disables it.
func WithDeltaTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicDeltaTolerance)
	}

	return func(o *Options) { o.deltaTolerance = tol }
}

// WithConcurrency bounds the number of requests QuantifyBatch evaluates at
// once. 0 removes the bound.
func WithConcurrency(n int) Option {
	if n < 0 {
		panic(panicConcurrency)
	}

	return func(o *Options) { o.concurrency = n }
}

// WithModels selects the matrix and fluorescence models of the default
// calculator.
func WithModels(m zaf.Models) Option {
	return func(o *Options) { o.models = m }
}

// WithCalculator replaces the ZAF calculator. Mainly useful for tests and
// for external k-ratio engines.
func WithCalculator(c Calculator) Option {
	if c == nil {
		panic(panicNil)
	}

	return func(o *Options) { o.calculator = c }
}

// WithOptimizer replaces the k-ratio optimizer.
func WithOptimizer(opt Optimizer) Option {
	if opt == nil {
		panic(panicNil)
	}

	return func(o *Options) { o.optimizer = opt }
}

// WithUpdate selects the composition update rule.
func WithUpdate(u UpdateRule) Option {
	if u == nil {
		panic(panicNil)
	}

	return func(o *Options) { o.update = u }
}

// WithNaive is shorthand for WithUpdate(NaiveRule{}).
func WithNaive() Option { return WithUpdate(NaiveRule{}) }

// WithUnmeasured installs an unmeasured-element rule.
func WithUnmeasured(r UnmeasuredRule) Option {
	if r == nil {
		panic(panicNil)
	}

	return func(o *Options) { o.unmeasured = r }
}

// WithLogger injects a structured logger. The solver never uses a global one.
func WithLogger(l logging.Logger) Option {
	if l == nil {
		panic(panicNil)
	}

	return func(o *Options) { o.logger = l }
}
