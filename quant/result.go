package quant

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/epmaquant/xray"
)

// Status is the terminal state of a run.
type Status int

const (
	StatusConverged Status = iota
	StatusNotConverged
)

// String returns "converged" or "not converged".
func (s Status) String() string {
	if s == StatusConverged {
		return "converged"
	}

	return "not converged"
}

// Iteration records one solver step.
type Iteration struct {
	Index       int                      // 1-based
	Composition xray.Material            // trial composition the step was evaluated at
	Calculated  map[xray.Element]float64 // k_calc of each active element
	Ratios      map[xray.Element]float64 // k_meas/k_calc
	Residual    float64                  // max|r − 1|
	Delta       float64                  // max|Δc| of the update; 0 when none was made
}

// Result is the outcome of one quantification. Non-convergence is reported
// through Status; the history is always complete.
type Result struct {
	RunID       uuid.UUID
	Label       string
	Status      Status
	Composition xray.Material // last evaluated composition, not normalized
	KRatios     []KRatio      // effective k-ratios after optimization
	Iterations  []Iteration
	Residual    float64 // of the last evaluated step
}

// Converged reports Status == StatusConverged.
func (r *Result) Converged() bool { return r.Status == StatusConverged }

// Err returns nil on convergence, otherwise ErrNotConverged wrapped with the
// label and iteration count.
func (r *Result) Err() error {
	if r.Converged() {
		return nil
	}

	return fmt.Errorf("quant: %s after %d iterations (residual %.3g): %w",
		r.Label, len(r.Iterations), r.Residual, ErrNotConverged)
}

// Final returns the last recorded step; false when there is none.
func (r *Result) Final() (Iteration, bool) {
	if len(r.Iterations) == 0 {
		return Iteration{}, false
	}

	return r.Iterations[len(r.Iterations)-1], true
}

// Total returns the analytical total of the final composition.
func (r *Result) Total() float64 { return r.Composition.Total() }

// Normalized returns the final composition scaled to a total of 1.
func (r *Result) Normalized() (xray.Material, error) { return r.Composition.Normalized() }

// String returns e.g. "K411: converged in 7 [O=0.4312,Mg=...] total=0.9981".
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s in %d [", r.Label, r.Status, len(r.Iterations))
	for i, el := range r.Composition.Elements() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%.4f", el, r.Composition.MassFraction(el))
	}
	fmt.Fprintf(&b, "] total=%.4f", r.Total())

	return b.String()
}
