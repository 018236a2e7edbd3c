package quant

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epmaquant/xray"
)

// UnmeasuredRule supplies the fractions of elements that have no k-ratio.
// It runs after every update, on the fractions of the measured elements.
type UnmeasuredRule interface {
	// Elements returns the elements the rule sets.
	Elements() []xray.Element

	// Apply returns the fractions of Elements given the measured ones.
	Apply(measured map[xray.Element]float64) map[xray.Element]float64
}

// NullUnmeasured adds nothing.
type NullUnmeasured struct{}

// Elements implements UnmeasuredRule.
func (NullUnmeasured) Elements() []xray.Element { return nil }

// Apply implements UnmeasuredRule.
func (NullUnmeasured) Apply(map[xray.Element]float64) map[xray.Element]float64 { return nil }

// ByDifference sets one element to 1 − Σ measured, floored at 0.
type ByDifference struct {
	Element xray.Element
}

// Elements implements UnmeasuredRule.
func (d ByDifference) Elements() []xray.Element { return []xray.Element{d.Element} }

// Apply implements UnmeasuredRule.
func (d ByDifference) Apply(measured map[xray.Element]float64) map[xray.Element]float64 {
	sum := 0.0
	for _, c := range measured {
		sum += c
	}

	return map[xray.Element]float64{d.Element: math.Max(0, 1-sum)}
}

// FixedFraction holds one element at a known fraction.
type FixedFraction struct {
	Element  xray.Element
	Fraction float64
}

// NewFixedFraction panics unless 0 ≤ c ≤ 1.
func NewFixedFraction(el xray.Element, c float64) FixedFraction {
	if !(c >= 0 && c <= 1) {
		panic(fmt.Sprintf("quant: NewFixedFraction(%s): fraction %g outside [0, 1]", el, c))
	}

	return FixedFraction{Element: el, Fraction: c}
}

// Elements implements UnmeasuredRule.
func (f FixedFraction) Elements() []xray.Element { return []xray.Element{f.Element} }

// Apply implements UnmeasuredRule.
func (f FixedFraction) Apply(map[xray.Element]float64) map[xray.Element]float64 {
	return map[xray.Element]float64{f.Element: f.Fraction}
}

// UnmeasuredRules applies several rules in order. Later rules see the
// measured fractions only, never the output of earlier rules.
type UnmeasuredRules []UnmeasuredRule

// Elements implements UnmeasuredRule.
func (rs UnmeasuredRules) Elements() []xray.Element {
	var out []xray.Element
	for _, r := range rs {
		out = append(out, r.Elements()...)
	}

	return out
}

// Apply implements UnmeasuredRule.
func (rs UnmeasuredRules) Apply(measured map[xray.Element]float64) map[xray.Element]float64 {
	out := make(map[xray.Element]float64)
	for _, r := range rs {
		for el, c := range r.Apply(measured) {
			out[el] = c
		}
	}

	return out
}

// checkUnmeasured rejects rules that target a measured element or set the
// same element twice.
func checkUnmeasured(r UnmeasuredRule, measured map[xray.Element]bool) error {
	seen := make(map[xray.Element]bool)
	for _, el := range r.Elements() {
		if measured[el] || seen[el] {
			return fmt.Errorf("unmeasured rule on %s: %w", el, ErrDuplicateElement)
		}
		seen[el] = true
	}

	return nil
}
