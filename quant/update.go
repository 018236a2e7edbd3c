package quant

import (
	"fmt"
	"math"
)

// UpdateState is the per-element input of one update step.
type UpdateState struct {
	C     float64 // current fraction
	Ratio float64 // k_meas / k_calc at C

	// Previous step; valid only when HasPrev.
	PrevC   float64
	PrevG   float64 // PrevC·PrevRatio
	HasPrev bool
}

// UpdateRule maps the current fraction and k-ratio ratio to the next trial
// fraction. Implementations must be pure; negative results are clamped to 0
// by the solver.
type UpdateRule interface {
	Name() string
	Next(s UpdateState) float64
}

// NaiveRule is direct substitution c' = c·r.
type NaiveRule struct{}

// Name implements UpdateRule.
func (NaiveRule) Name() string { return "naive" }

// Next implements UpdateRule.
func (NaiveRule) Next(s UpdateState) float64 { return s.C * s.Ratio }

// Wegstein accelerates the fixed-point iteration c = g(c), g(c) = c·r(c),
// with a secant estimate of g′:
//
//	s = (g − g_prev)/(c − c_prev),  q = s/(s − 1) ∈ [QMin, QMax],
//	c' = q·c + (1 − q)·g.
//
// The first step, a vanishing Δc and a non-positive c' fall back to g.
type Wegstein struct {
	QMin float64
	QMax float64
}

// Default Wegstein bounds. q < 0 accelerates, 0 < q < 1 damps.
const (
	DefaultQMin = -5.0
	DefaultQMax = 0.9
)

// wegsteinMinStep is the smallest |Δc| the secant slope is formed from.
const wegsteinMinStep = 1e-12

// DefaultWegstein returns Wegstein{DefaultQMin, DefaultQMax}.
func DefaultWegstein() Wegstein { return Wegstein{QMin: DefaultQMin, QMax: DefaultQMax} }

// NewWegstein validates the bounds.
//
// Errors:
//   - Panics unless qmin ≤ qmax < 1 and both are finite.
func NewWegstein(qmin, qmax float64) Wegstein {
	if math.IsNaN(qmin) || math.IsNaN(qmax) || math.IsInf(qmin, 0) || qmax >= 1 || qmin > qmax {
		panic(fmt.Sprintf("quant: NewWegstein: need qmin ≤ qmax < 1, got [%g, %g]", qmin, qmax))
	}

	return Wegstein{QMin: qmin, QMax: qmax}
}

// Name implements UpdateRule.
func (Wegstein) Name() string { return "wegstein" }

// Next implements UpdateRule.
func (w Wegstein) Next(s UpdateState) float64 {
	g := s.C * s.Ratio
	dc := s.C - s.PrevC
	if !s.HasPrev || math.Abs(dc) < wegsteinMinStep {
		return g
	}
	slope := (g - s.PrevG) / dc
	if slope == 1 {
		return g
	}
	q := slope / (slope - 1)
	q = math.Max(w.QMin, math.Min(w.QMax, q))
	next := q*s.C + (1-q)*g
	if !(next > 0) || math.IsInf(next, 0) {
		return g
	}

	return next
}
