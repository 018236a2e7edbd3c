package zaf

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/epmaquant/xray"
)

// MultiZAF is the set of ZAFCorrection for every subshell touched by a set
// of lines of one element, for one material and one set of conditions.
type MultiZAF struct {
	element xray.Element
	lines   []xray.CharXRay
	weights []float64
	zafs    map[xray.SubShell]*ZAFCorrection
	mat     xray.Material
	cond    xray.Conditions
}

// NewMulti builds one ZAFCorrection per distinct inner subshell of lines.
//
// Errors:
//   - xray.ErrNoLines on an empty set; ErrElementMismatch when the lines
//     belong to different elements.
//   - New errors are forwarded.
func NewMulti(models Models, lines []xray.CharXRay, mat xray.Material, cond xray.Conditions, db xray.Database) (*MultiZAF, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("zaf.NewMulti(%s): %w", mat.Name(), xray.ErrNoLines)
	}
	m := &MultiZAF{
		element: lines[0].Element,
		lines:   make([]xray.CharXRay, len(lines)),
		weights: make([]float64, len(lines)),
		zafs:    make(map[xray.SubShell]*ZAFCorrection, 2),
		mat:     mat,
		cond:    cond,
	}
	copy(m.lines, lines)
	sort.Slice(m.lines, func(i, j int) bool { return m.lines[i].String() < m.lines[j].String() })
	for i, x := range m.lines {
		if x.Element != m.element {
			return nil, fmt.Errorf("zaf.NewMulti: %s and %s: %w", m.lines[0], x, ErrElementMismatch)
		}
		w, err := db.LineWeight(x)
		if err != nil {
			return nil, fmt.Errorf("zaf.NewMulti(%s): %w", mat.Name(), err)
		}
		m.weights[i] = w
		sh := x.SubShell()
		if _, ok := m.zafs[sh]; ok {
			continue
		}
		c, err := New(models, mat, sh, cond, db)
		if err != nil {
			return nil, err
		}
		m.zafs[sh] = c
	}

	return m, nil
}

// Element returns the element of the lines.
func (m *MultiZAF) Element() xray.Element { return m.element }

// Lines returns a copy of the line set in name order.
func (m *MultiZAF) Lines() []xray.CharXRay {
	out := make([]xray.CharXRay, len(m.lines))
	copy(out, m.lines)

	return out
}

// Material returns the composition.
func (m *MultiZAF) Material() xray.Material { return m.mat }

// Conditions returns the measurement conditions.
func (m *MultiZAF) Conditions() xray.Conditions { return m.cond }

// Correction returns the ZAFCorrection of sh.
func (m *MultiZAF) Correction(sh xray.SubShell) (*ZAFCorrection, bool) {
	c, ok := m.zafs[sh]
	return c, ok
}

func checkMulti(unk, std *MultiZAF) error {
	if unk == nil || std == nil {
		return ErrNilCorrection
	}
	if len(unk.lines) != len(std.lines) {
		return ErrLinesMismatch
	}
	for i := range unk.lines {
		if unk.lines[i] != std.lines[i] {
			return fmt.Errorf("%s vs %s: %w", unk.lines[i], std.lines[i], ErrLinesMismatch)
		}
	}

	return nil
}

// Summarize returns the per-line factors of the pair. Each Factors.K uses
// the element mass fractions of the two materials.
//
// Errors:
//   - ErrLinesMismatch when the line sets differ; pair errors are forwarded.
func Summarize(unk, std *MultiZAF) ([]Factors, error) {
	if err := checkMulti(unk, std); err != nil {
		return nil, fmt.Errorf("zaf.Summarize: %w", err)
	}
	cu, cs := unk.mat.MassFraction(unk.element), std.mat.MassFraction(std.element)
	out := make([]Factors, 0, len(unk.lines))
	for i, x := range unk.lines {
		sh := x.SubShell()
		f, err := factors(unk.zafs[sh], std.zafs[sh], x, unk.cond.TakeOff, std.cond.TakeOff)
		if err != nil {
			return nil, fmt.Errorf("zaf.Summarize(%s): %w", x, err)
		}
		f.Weight = unk.weights[i]
		f.K = f.Generation * f.ZAFc * cu / cs
		out = append(out, f)
	}

	return out, nil
}

// K returns the calculated k-ratio of the line set:
//
//	k = Σ w_l·I_u,l·c_u / Σ w_l·I_s,l·c_s,  I = Q(E0)·Fχ·F_fl·T.
//
// For a single line it equals K(unk, std, line, θu, θs, c_u, c_s).
//
// Errors:
//   - ErrLinesMismatch, xray.ErrZeroTotal when the standard holds none of
//     the element; model errors are forwarded.
func (m *MultiZAF) K(std *MultiZAF) (float64, error) {
	if err := checkMulti(m, std); err != nil {
		return 0, fmt.Errorf("zaf.K: %w", err)
	}
	cu, cs := m.mat.MassFraction(m.element), std.mat.MassFraction(std.element)
	if cs <= 0 {
		return 0, fmt.Errorf("zaf.K: %s in standard %s: %w", std.element, std.mat.Name(), xray.ErrZeroTotal)
	}
	var num, den float64
	for i, x := range m.lines {
		sh := x.SubShell()
		iu, err := intensity(m.zafs[sh], x)
		if err != nil {
			return 0, fmt.Errorf("zaf.K: unknown: %w", err)
		}
		is, err := intensity(std.zafs[sh], x)
		if err != nil {
			return 0, fmt.Errorf("zaf.K: standard: %w", err)
		}
		num += m.weights[i] * iu
		den += std.weights[i] * is
	}

	return num * cu / (den * cs), nil
}

// intensity returns the relative emitted intensity Q(E0)·Fχ·F_fl·T of x per
// unit mass fraction.
func intensity(c *ZAFCorrection, x xray.CharXRay) (float64, error) {
	if x.SubShell() != c.SubShell() {
		return 0, fmt.Errorf("%s on %s: %w", x, c.SubShell(), ErrLineMismatch)
	}
	theta := c.Conditions.TakeOff
	fchi, err := c.Matrix.Fchi(x, theta)
	if err != nil {
		return 0, err
	}
	ff, err := c.Fluorescence.F(x, theta)
	if err != nil {
		return 0, err
	}
	t, err := c.Coating.Transmission(x, theta)
	if err != nil {
		return 0, err
	}
	q := ionization(c)

	return q * fchi * ff * t, nil
}
