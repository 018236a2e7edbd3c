package quant

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epmaquant/xray"
)

// KRatio is one measured intensity ratio of an unknown against a standard,
// over a set of lines of one element. It is immutable input.
type KRatio struct {
	Element          xray.Element
	Lines            []xray.CharXRay
	Unknown          xray.Conditions
	Standard         xray.Conditions
	StandardMaterial xray.Material
	Value            float64
	Sigma            float64 // one standard uncertainty; 0 when unknown
}

// NewKRatio resolves the lines of el in fam through db.
//
// Errors:
//   - xray.ErrNoLines when db has no line of el in fam.
func NewKRatio(db xray.Database, el xray.Element, fam xray.Family, unk, std xray.Conditions, stdMat xray.Material, value, sigma float64) (KRatio, error) {
	lines, err := xray.Characteristic(db, el, fam)
	if err != nil {
		return KRatio{}, err
	}

	return KRatio{
		Element:          el,
		Lines:            lines,
		Unknown:          unk,
		Standard:         std,
		StandardMaterial: stdMat,
		Value:            value,
		Sigma:            sigma,
	}, nil
}

// Validate checks the lines, value, uncertainty, conditions and standard.
func (k KRatio) Validate() error {
	if len(k.Lines) == 0 {
		return fmt.Errorf("%s: %w", k.Element, xray.ErrNoLines)
	}
	for _, x := range k.Lines {
		if x.Element != k.Element {
			return fmt.Errorf("%s: line %s: %w", k.Element, x, ErrBadKRatio)
		}
	}
	if math.IsNaN(k.Value) || math.IsInf(k.Value, 0) || math.IsNaN(k.Sigma) || math.IsInf(k.Sigma, 0) || k.Sigma < 0 {
		return fmt.Errorf("%s: k=%g±%g: %w", k.Element, k.Value, k.Sigma, ErrBadKRatio)
	}
	if err := k.Unknown.Validate(); err != nil {
		return fmt.Errorf("%s unknown: %w", k.Element, err)
	}
	if err := k.Standard.Validate(); err != nil {
		return fmt.Errorf("%s standard: %w", k.Element, err)
	}
	if k.StandardMaterial.MassFraction(k.Element) <= 0 {
		return fmt.Errorf("%s in %s: %w", k.Element, k.StandardMaterial.Name(), ErrNotInStandard)
	}

	return nil
}

// Significance returns Value/Sigma; +Inf when Sigma ≤ 0.
func (k KRatio) Significance() float64 {
	if k.Sigma <= 0 {
		return math.Inf(1)
	}

	return k.Value / k.Sigma
}

// Overvoltage returns the smallest E0/Ec over the lines and both sets of
// conditions.
func (k KRatio) Overvoltage(db xray.Database) (float64, error) {
	e0 := math.Min(k.Unknown.BeamEnergy, k.Standard.BeamEnergy)
	u := math.Inf(1)
	for _, x := range k.Lines {
		v, err := xray.Overvoltage(db, x.SubShell(), e0)
		if err != nil {
			return 0, err
		}
		u = math.Min(u, v)
	}

	return u, nil
}

// LineEnergy returns the energy of the brightest line.
func (k KRatio) LineEnergy(db xray.Database) (float64, error) {
	x, err := xray.Brightest(db, k.Lines)
	if err != nil {
		return 0, err
	}

	return db.LineEnergy(x)
}

// String returns e.g. "k[Si Kα1+1 vs SiO2]=0.4413±0.0012".
func (k KRatio) String() string {
	name := k.Element.Symbol()
	if len(k.Lines) > 0 {
		name = k.Lines[0].Element.Symbol() + " " + k.Lines[0].Siegbahn()
		if len(k.Lines) > 1 {
			name += fmt.Sprintf("+%d", len(k.Lines)-1)
		}
	}

	return fmt.Sprintf("k[%s vs %s]=%.4f±%.4f", name, k.StandardMaterial.Name(), k.Value, k.Sigma)
}

// sameMeasurement reports whether a and b differ only in Value and Sigma.
func sameMeasurement(a, b KRatio) bool {
	if a.Element != b.Element || len(a.Lines) != len(b.Lines) {
		return false
	}
	lines := make(map[xray.CharXRay]bool, len(a.Lines))
	for _, x := range a.Lines {
		lines[x] = true
	}
	for _, x := range b.Lines {
		if !lines[x] {
			return false
		}
	}

	return sameConditions(a.Unknown, b.Unknown) && sameConditions(a.Standard, b.Standard) &&
		sameMaterial(a.StandardMaterial, b.StandardMaterial)
}

func sameConditions(a, b xray.Conditions) bool {
	if a.BeamEnergy != b.BeamEnergy || a.TakeOff != b.TakeOff {
		return false
	}
	if a.Coating == nil || b.Coating == nil {
		return a.Coating == b.Coating
	}

	return a.Coating.Density == b.Coating.Density && a.Coating.Thickness == b.Coating.Thickness &&
		sameMaterial(a.Coating.Material, b.Coating.Material)
}

func sameMaterial(a, b xray.Material) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, el := range a.Elements() {
		if !b.Has(el) || a.MassFraction(el) != b.MassFraction(el) {
			return false
		}
	}

	return true
}
