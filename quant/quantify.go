package quant

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/epmaquant/logging"
	"github.com/katalvlaran/epmaquant/xray"
)

// Quantifier runs the iterative composition solver with a fixed
// configuration. It holds no per-run state and is safe for concurrent use
// provided its Database, Calculator and Logger are.
type Quantifier struct {
	db   xray.Database
	opts Options
	calc Calculator
}

// New returns a Quantifier over db.
//
// Errors:
//   - ErrNilDatabase when db is nil.
func New(db xray.Database, opts ...Option) (*Quantifier, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	o := gatherOptions(opts...)
	calc := o.calculator
	if calc == nil {
		calc = ZAFCalculator{DB: db, Models: o.models}
	}

	return &Quantifier{db: db, opts: o, calc: calc}, nil
}

// Options returns the effective configuration.
func (q *Quantifier) Options() Options { return q.opts }

// Quantify is shorthand for New(db, opts...) followed by Quantify.
func Quantify(db xray.Database, label string, krs []KRatio, opts ...Option) (*Result, error) {
	q, err := New(db, opts...)
	if err != nil {
		return nil, err
	}

	return q.Quantify(label, krs)
}

// run is the mutable state of one Quantify call.
type run struct {
	label    string
	eff      []KRatio
	active   []bool
	c        []float64 // fractions of eff elements
	prevC    []float64
	prevG    []float64
	hasPrev  bool
	streak   int
	measured map[xray.Element]bool
}

// Quantify solves for the composition that reproduces krs.
//
// Implementation:
//   - Stage 1: validate, optimize to one k-ratio per element, check the
//     unmeasured-element rule does not collide with a measured element.
//   - Stage 2: seed c_i = max(k_i, 0)·c_std,i; elements with k_i ≤ 0 stay at 0.
//   - Stage 3: per step, compute k_calc at the current composition, form
//     r_i = k_i/k_calc,i, test convergence, then apply the update rule.
//
// Convergence is max|r_i − 1| < Tolerance for Consecutive steps, or
// max|Δc| < DeltaTolerance. Hitting MaxIterations yields StatusNotConverged
// with a nil error. Result.Composition is always the composition of the last
// recorded Iteration, so it pairs with Result.Residual.
//
// Errors:
//   - ErrNoKRatios, ErrBadKRatio, ErrNotInStandard, ErrDuplicateElement,
//     ErrBadCalculation; correction errors (overvoltage, mismatch) from the
//     calculator. All are wrapped with the label and, past Stage 1, the
//     iteration number.
//
// Complexity:
//   - O(MaxIterations · cost(Calculate)).
func (q *Quantifier) Quantify(label string, krs []KRatio) (*Result, error) {
	log := q.opts.logger.With(logging.String("label", label))
	res, err := q.quantify(label, krs, log)
	if err != nil {
		log.Error("quantification failed", logging.Err(err))
		return nil, err
	}
	fields := []logging.Field{
		logging.Int("iterations", len(res.Iterations)),
		logging.Float64("residual", res.Residual),
		logging.Float64("total", res.Total()),
	}
	if res.Converged() {
		log.Info("quantification converged", fields...)
	} else {
		log.Warn("quantification did not converge", fields...)
	}

	return res, nil
}

func (q *Quantifier) quantify(label string, krs []KRatio, log logging.Logger) (*Result, error) {
	r, err := q.prepare(label, krs)
	if err != nil {
		return nil, err
	}
	res := &Result{RunID: uuid.New(), Label: label, KRatios: r.eff, Status: StatusNotConverged}

	comp, err := q.compose(r)
	if err != nil {
		return nil, fmt.Errorf("quant: %s: seed: %w", label, err)
	}
	if !anyTrue(r.active) {
		res.Status, res.Composition = StatusConverged, comp
		return res, nil
	}

	for it := 1; it <= q.opts.maxIterations; it++ {
		step, err := q.evaluate(r, comp, it)
		if err != nil {
			return nil, fmt.Errorf("quant: %s: iteration %d: %w", label, it, err)
		}
		res.Residual = step.Residual
		if step.Residual < q.opts.tolerance {
			r.streak++
		} else {
			r.streak = 0
		}
		if r.streak >= q.opts.consecutive {
			res.Iterations = append(res.Iterations, step)
			res.Status, res.Composition = StatusConverged, comp
			log.Debug("quant step", stepFields(step)...)
			return res, nil
		}

		delta, err := q.update(r, step)
		if err != nil {
			return nil, fmt.Errorf("quant: %s: iteration %d: %w", label, it, err)
		}
		step.Delta = delta
		res.Iterations = append(res.Iterations, step)
		res.Composition = comp
		log.Debug("quant step", stepFields(step)...)
		if delta < q.opts.deltaTolerance {
			res.Status = StatusConverged
			break
		}

		comp, err = q.compose(r)
		if err != nil {
			return nil, fmt.Errorf("quant: %s: iteration %d: %w", label, it, err)
		}
	}

	return res, nil
}

func (q *Quantifier) prepare(label string, krs []KRatio) (*run, error) {
	if len(krs) == 0 {
		return nil, fmt.Errorf("quant: %s: %w", label, ErrNoKRatios)
	}
	for _, kr := range krs {
		if err := kr.Validate(); err != nil {
			return nil, fmt.Errorf("quant: %s: %w", label, err)
		}
	}
	eff, err := q.opts.optimizer.Optimize(q.db, krs)
	if err != nil {
		return nil, fmt.Errorf("quant: %s: %w", label, err)
	}
	r := &run{
		label:    label,
		eff:      eff,
		active:   make([]bool, len(eff)),
		c:        make([]float64, len(eff)),
		prevC:    make([]float64, len(eff)),
		prevG:    make([]float64, len(eff)),
		measured: make(map[xray.Element]bool, len(eff)),
	}
	for i, kr := range eff {
		if r.measured[kr.Element] {
			return nil, fmt.Errorf("quant: %s: %s: %w", label, kr.Element, ErrDuplicateElement)
		}
		r.measured[kr.Element] = true
		if kr.Value > 0 {
			r.active[i] = true
			r.c[i] = kr.Value * kr.StandardMaterial.MassFraction(kr.Element)
		}
	}
	if err := checkUnmeasured(q.opts.unmeasured, r.measured); err != nil {
		return nil, fmt.Errorf("quant: %s: %w", label, err)
	}

	return r, nil
}

// compose builds the trial material from the measured fractions and the
// unmeasured-element rule.
func (q *Quantifier) compose(r *run) (xray.Material, error) {
	measured := make(map[xray.Element]float64, len(r.eff))
	for i, kr := range r.eff {
		measured[kr.Element] = r.c[i]
	}
	all := make(map[xray.Element]float64, len(measured)+1)
	for el, c := range q.opts.unmeasured.Apply(measured) {
		all[el] = c
	}
	for el, c := range measured {
		all[el] = c
	}

	return xray.NewMaterial(r.label, all)
}

func (q *Quantifier) evaluate(r *run, comp xray.Material, it int) (Iteration, error) {
	kc, err := q.calc.Calculate(comp, r.eff)
	if err != nil {
		return Iteration{}, err
	}
	if len(kc) != len(r.eff) {
		return Iteration{}, fmt.Errorf("%d values for %d k-ratios: %w", len(kc), len(r.eff), ErrBadCalculation)
	}
	step := Iteration{
		Index:       it,
		Composition: comp,
		Calculated:  make(map[xray.Element]float64, len(kc)),
		Ratios:      make(map[xray.Element]float64, len(kc)),
	}
	for i, kr := range r.eff {
		if !r.active[i] {
			continue
		}
		if !(kc[i] > 0) || math.IsInf(kc[i], 0) {
			return Iteration{}, fmt.Errorf("%s: k=%g: %w", kr.Element, kc[i], ErrBadCalculation)
		}
		ratio := kr.Value / kc[i]
		step.Calculated[kr.Element] = kc[i]
		step.Ratios[kr.Element] = ratio
		step.Residual = math.Max(step.Residual, math.Abs(ratio-1))
	}

	return step, nil
}

// update advances r.c in place and returns max|Δc|.
func (q *Quantifier) update(r *run, step Iteration) (float64, error) {
	delta := 0.0
	for i, kr := range r.eff {
		if !r.active[i] {
			continue
		}
		s := UpdateState{
			C:       r.c[i],
			Ratio:   step.Ratios[kr.Element],
			PrevC:   r.prevC[i],
			PrevG:   r.prevG[i],
			HasPrev: r.hasPrev,
		}
		next := q.opts.update.Next(s)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, fmt.Errorf("%s: %s update gave %g: %w", kr.Element, q.opts.update.Name(), next, ErrBadCalculation)
		}
		next = math.Max(0, next)
		delta = math.Max(delta, math.Abs(next-r.c[i]))
		r.prevC[i], r.prevG[i] = s.C, s.C*s.Ratio
		r.c[i] = next
		if next == 0 {
			// clamped: held at zero from here on, like a non-positive k
			r.active[i] = false
		}
	}
	r.hasPrev = true

	return delta, nil
}

func stepFields(s Iteration) []logging.Field {
	return []logging.Field{
		logging.Int("iteration", s.Index),
		logging.Float64("residual", s.Residual),
		logging.Float64("delta", s.Delta),
		logging.Any("composition", s.Composition),
	}
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}

	return false
}
