package xraydb

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/epmaquant/xray"
)

// Kramers-type MAC model constants.
const (
	// muKC is μ just above the K edge of carbon, cm²/g; μK⁺ scales as Z^-3.2.
	muKC = 45000.0

	// muKExponent is the Z exponent of μK⁺.
	muKExponent = -3.2

	// muEnergyExponent is the energy exponent n of μ ∝ E^-n between edges.
	muEnergyExponent = 2.6

	// mJump is the jump ratio of each M subshell.
	mJump = 1.9
)

type lineData struct {
	energy float64 // eV
	weight float64 // within family
}

type elementData struct {
	weight float64                    // g/mol
	edges  map[xray.Shell]float64     // eV
	lines  map[xray.CharXRay]lineData // characteristic lines
}

// Table is an in-memory xray.Database.
type Table struct {
	data map[xray.Element]elementData
}

// New returns the built-in table.
func New() *Table {
	t := &Table{data: make(map[xray.Element]elementData, len(elements))}
	for _, e := range elements {
		ed := elementData{
			weight: e.weight,
			edges:  make(map[xray.Shell]float64, len(e.edges)),
			lines:  make(map[xray.CharXRay]lineData, len(e.lines)),
		}
		for sh, ev := range e.edges {
			ed.edges[sh] = ev
		}
		for _, l := range e.lines {
			ed.lines[xray.Line(e.z, l.inner, l.outer)] = lineData{energy: l.energy, weight: l.weight}
		}
		t.data[e.z] = ed
	}

	return t
}

// Elements returns the supported elements in ascending Z.
func (t *Table) Elements() []xray.Element {
	out := make([]xray.Element, 0, len(t.data))
	for el := range t.data {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func (t *Table) element(el xray.Element) (elementData, error) {
	ed, ok := t.data[el]
	if !ok {
		return elementData{}, fmt.Errorf("xraydb: %s: %w", el, xray.ErrUnknownElement)
	}

	return ed, nil
}

// AtomicWeight implements xray.Database.
func (t *Table) AtomicWeight(el xray.Element) (float64, error) {
	ed, err := t.element(el)
	if err != nil {
		return 0, err
	}

	return ed.weight, nil
}

// EdgeEnergy implements xray.Database.
func (t *Table) EdgeEnergy(sh xray.SubShell) (float64, error) {
	ed, err := t.element(sh.Element)
	if err != nil {
		return 0, err
	}
	ev, ok := ed.edges[sh.Shell]
	if !ok {
		return 0, fmt.Errorf("xraydb: %s: %w", sh, xray.ErrUnknownEdge)
	}

	return ev, nil
}

func (t *Table) line(x xray.CharXRay) (lineData, error) {
	ed, err := t.element(x.Element)
	if err != nil {
		return lineData{}, err
	}
	ld, ok := ed.lines[x]
	if !ok {
		return lineData{}, fmt.Errorf("xraydb: %s: %w", x, xray.ErrUnknownLine)
	}

	return ld, nil
}

// LineEnergy implements xray.Database.
func (t *Table) LineEnergy(x xray.CharXRay) (float64, error) {
	ld, err := t.line(x)
	if err != nil {
		return 0, err
	}

	return ld.energy, nil
}

// LineWeight implements xray.Database.
func (t *Table) LineWeight(x xray.CharXRay) (float64, error) {
	ld, err := t.line(x)
	if err != nil {
		return 0, err
	}

	return ld.weight, nil
}

// Lines implements xray.Database. Lines are returned in IUPAC order.
func (t *Table) Lines(el xray.Element) []xray.CharXRay {
	ed, ok := t.data[el]
	if !ok {
		return nil
	}
	out := make([]xray.CharXRay, 0, len(ed.lines))
	for x := range ed.lines {
		out = append(out, x)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Inner != out[j].Inner {
			return out[i].Inner < out[j].Inner
		}
		return out[i].Outer < out[j].Outer
	})

	return out
}

// FluorescenceYield implements xray.Database.
func (t *Table) FluorescenceYield(sh xray.SubShell) (float64, error) {
	if _, err := t.EdgeEnergy(sh); err != nil {
		return 0, err
	}
	z := sh.Element.Z()
	var x float64
	switch {
	case sh.Shell == xray.K:
		x = 0.015 + 0.0327*z - 0.64e-6*z*z*z
	case sh.Shell <= xray.L3:
		x = 0.17765 + 0.00298937*z + 8.91297e-5*z*z - 2.67184e-7*z*z*z
	default:
		x = 0.5 * (-0.00036 + 0.00386*z + 0.00013*z*z)
	}
	x4 := x * x * x * x

	return x4 / (1 + x4), nil
}

// JumpRatio implements xray.Database.
func (t *Table) JumpRatio(sh xray.SubShell) (float64, error) {
	if _, err := t.EdgeEnergy(sh); err != nil {
		return 0, err
	}

	return jumpRatio(sh.Element.Z(), sh.Shell), nil
}

func jumpRatio(z float64, sh xray.Shell) float64 {
	switch sh {
	case xray.K:
		return 125/z + 3.5
	case xray.L1:
		return 1.16
	case xray.L2:
		return 1.41
	case xray.L3:
		return 80/z + 1.5
	default:
		return mJump
	}
}

// MAC implements xray.Database (cm²/g at energy eV).
func (t *Table) MAC(el xray.Element, energy float64) (float64, error) {
	ed, err := t.element(el)
	if err != nil {
		return 0, err
	}
	if !(energy > 0) {
		return 0, fmt.Errorf("xraydb: MAC(%s, %g eV): %w", el, energy, xray.ErrBeamEnergy)
	}
	eK, ok := ed.edges[xray.K]
	if !ok {
		return 0, fmt.Errorf("xraydb: %s K: %w", el, xray.ErrUnknownEdge)
	}
	z := el.Z()
	mu := muKC * math.Pow(z/6, muKExponent) * math.Pow(eK/energy, muEnergyExponent)
	for sh, ev := range ed.edges {
		if energy < ev {
			mu /= jumpRatio(z, sh)
		}
	}

	return mu, nil
}

var _ xray.Database = (*Table)(nil)
