package quant

import (
	"fmt"

	"github.com/katalvlaran/epmaquant/xray"
	"github.com/katalvlaran/epmaquant/zaf"
)

// Calculator computes the k-ratios a composition would produce. The result
// is parallel to krs. Entries for elements at zero fraction may be 0; the
// solver ignores them.
type Calculator interface {
	Calculate(comp xray.Material, krs []KRatio) ([]float64, error)
}

// CalculatorFunc adapts a function to Calculator.
type CalculatorFunc func(comp xray.Material, krs []KRatio) ([]float64, error)

// Calculate implements Calculator.
func (f CalculatorFunc) Calculate(comp xray.Material, krs []KRatio) ([]float64, error) {
	return f(comp, krs)
}

// ZAFCalculator rebuilds a MultiZAF for the unknown and for the standard of
// every k-ratio and returns their k-ratio.
type ZAFCalculator struct {
	DB     xray.Database
	Models zaf.Models
}

// Calculate implements Calculator.
//
// Errors:
//   - correction construction and evaluation errors, wrapped with the element.
func (c ZAFCalculator) Calculate(comp xray.Material, krs []KRatio) ([]float64, error) {
	out := make([]float64, len(krs))
	for i, kr := range krs {
		if comp.MassFraction(kr.Element) <= 0 {
			continue
		}
		k, err := c.one(comp, kr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kr.Element, err)
		}
		out[i] = k
	}

	return out, nil
}

func (c ZAFCalculator) one(comp xray.Material, kr KRatio) (float64, error) {
	unk, err := zaf.NewMulti(c.Models, kr.Lines, comp, kr.Unknown, c.DB)
	if err != nil {
		return 0, err
	}
	std, err := zaf.NewMulti(c.Models, kr.Lines, kr.StandardMaterial, kr.Standard, c.DB)
	if err != nil {
		return 0, err
	}

	return unk.K(std)
}

// Factors returns the per-line correction factors of kr at comp.
func (c ZAFCalculator) Factors(comp xray.Material, kr KRatio) ([]zaf.Factors, error) {
	unk, err := zaf.NewMulti(c.Models, kr.Lines, comp, kr.Unknown, c.DB)
	if err != nil {
		return nil, err
	}
	std, err := zaf.NewMulti(c.Models, kr.Lines, kr.StandardMaterial, kr.Standard, c.DB)
	if err != nil {
		return nil, err
	}

	return zaf.Summarize(unk, std)
}
