package xray

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"
)

// Material is an immutable element → mass-fraction snapshot.
//
// Contracts:
//   - Every fraction is finite and ≥ 0; zero entries are kept so a trial
//     composition can hold an element at 0 without dropping it.
//   - Fractions need not sum to 1.0 (trial compositions during iteration,
//     analytical totals); use Normalized where a normalized composition is
//     required.
//   - Elements() iterates in ascending atomic number; results are deterministic.
//
// The zero value is an empty material; constructors reject it.
type Material struct {
	name  string
	frac  map[Element]float64
	order []Element
}

// NewMaterial validates fractions and returns an immutable Material.
// The input map is copied.
//
// Errors:
//   - ErrEmptyMaterial  when fractions is empty.
//   - ErrUnknownElement when a key is not a valid element.
//   - ErrBadFraction    when a value is negative, NaN or ±Inf.
func NewMaterial(name string, fractions map[Element]float64) (Material, error) {
	if len(fractions) == 0 {
		return Material{}, fmt.Errorf("NewMaterial(%q): %w", name, ErrEmptyMaterial)
	}
	m := Material{
		name:  name,
		frac:  make(map[Element]float64, len(fractions)),
		order: make([]Element, 0, len(fractions)),
	}
	for el, c := range fractions {
		if !el.Valid() {
			return Material{}, fmt.Errorf("NewMaterial(%q): Z=%d: %w", name, int(el), ErrUnknownElement)
		}
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return Material{}, fmt.Errorf("NewMaterial(%q): %s=%g: %w", name, el, c, ErrBadFraction)
		}
		m.frac[el] = c
		m.order = append(m.order, el)
	}
	sort.Slice(m.order, func(i, j int) bool { return m.order[i] < m.order[j] })

	return m, nil
}

// Pure returns a material consisting of el only, at mass fraction 1.
func Pure(el Element) (Material, error) {
	return NewMaterial(el.Symbol(), map[Element]float64{el: 1})
}

// Name returns the material label.
func (m Material) Name() string { return m.name }

// Len returns the number of elements (including zero-fraction entries).
func (m Material) Len() int { return len(m.order) }

// Elements returns the elements in ascending atomic number. The slice is a copy.
func (m Material) Elements() []Element {
	out := make([]Element, len(m.order))
	copy(out, m.order)

	return out
}

// Has reports whether el is present (even at zero fraction).
func (m Material) Has(el Element) bool {
	_, ok := m.frac[el]
	return ok
}

// MassFraction returns the fraction of el, or 0 if absent.
func (m Material) MassFraction(el Element) float64 { return m.frac[el] }

// Fractions returns a copy of the element → fraction map.
func (m Material) Fractions() map[Element]float64 {
	out := make(map[Element]float64, len(m.frac))
	for el, c := range m.frac {
		out[el] = c
	}

	return out
}

// Total returns the sum of all mass fractions (the analytical total).
func (m Material) Total() float64 {
	vals := make([]float64, 0, len(m.order))
	for _, el := range m.order {
		vals = append(vals, m.frac[el])
	}

	return floats.Sum(vals)
}

// Normalized returns a copy whose fractions sum to 1.
//
// Errors:
//   - ErrZeroTotal when the total is zero.
func (m Material) Normalized() (Material, error) {
	t := m.Total()
	if t <= 0 {
		return Material{}, fmt.Errorf("Normalized(%q): %w", m.name, ErrZeroTotal)
	}
	out := make(map[Element]float64, len(m.frac))
	for el, c := range m.frac {
		out[el] = c / t
	}

	return NewMaterial(m.name, out)
}

// With returns a copy with el set to c.
func (m Material) With(el Element, c float64) (Material, error) {
	out := m.Fractions()
	out[el] = c

	return NewMaterial(m.name, out)
}

// Weights returns the elements and their normalized weights (c_i/Σc) as
// parallel slices in ascending Z. It is the basis of every compositional
// parameter average in the correction models.
//
// Errors:
//   - ErrZeroTotal when the total is zero.
func (m Material) Weights() ([]Element, []float64, error) {
	t := m.Total()
	if t <= 0 {
		return nil, nil, fmt.Errorf("Weights(%q): %w", m.name, ErrZeroTotal)
	}
	els := m.Elements()
	w := make([]float64, len(els))
	for i, el := range els {
		w[i] = m.frac[el]
	}
	floats.Scale(1/t, w)

	return els, w, nil
}

// Mean returns the mass-fraction weighted mean Σ w_i·f(el_i) over the
// normalized weights.
//
// Errors:
//   - ErrZeroTotal when the total is zero.
func (m Material) Mean(f func(Element) float64) (float64, error) {
	els, w, err := m.Weights()
	if err != nil {
		return 0, err
	}
	vals := make([]float64, len(els))
	for i, el := range els {
		vals[i] = f(el)
	}

	return floats.Dot(w, vals), nil
}

// String returns e.g. "SiO2[O=0.5326,Si=0.4674]".
func (m Material) String() string {
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteByte('[')
	for i, el := range m.order {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%.4f", el, m.frac[el])
	}
	b.WriteByte(']')

	return b.String()
}

// ParseFormula converts a simple stoichiometric formula such as "SiO2",
// "BaCl" or "Fe2O3" into mass fractions using atomic weights from db.
// Parentheses and hydrates are not supported.
//
// Errors:
//   - ErrBadFormula on malformed input; ErrUnknownElement forwarded from
//     ParseElement or db.
func ParseFormula(db Database, formula string) (Material, error) {
	atoms, err := parseAtoms(formula)
	if err != nil {
		return Material{}, err
	}
	mass := make(map[Element]float64, len(atoms))
	total := 0.0
	for el, n := range atoms {
		a, err := db.AtomicWeight(el)
		if err != nil {
			return Material{}, fmt.Errorf("ParseFormula(%q): %w", formula, err)
		}
		mass[el] = n * a
		total += n * a
	}
	for el := range mass {
		mass[el] /= total
	}

	return NewMaterial(formula, mass)
}

// parseAtoms splits "Fe2O3" into {Fe:2, O:3}.
func parseAtoms(formula string) (map[Element]float64, error) {
	rs := []rune(strings.TrimSpace(formula))
	if len(rs) == 0 {
		return nil, fmt.Errorf("ParseFormula(%q): %w", formula, ErrBadFormula)
	}
	atoms := make(map[Element]float64)
	for i := 0; i < len(rs); {
		if !unicode.IsUpper(rs[i]) {
			return nil, fmt.Errorf("ParseFormula(%q): position %d: %w", formula, i, ErrBadFormula)
		}
		j := i + 1
		for j < len(rs) && unicode.IsLower(rs[j]) {
			j++
		}
		el, err := ParseElement(string(rs[i:j]))
		if err != nil {
			return nil, fmt.Errorf("ParseFormula(%q): %w", formula, err)
		}
		k := j
		for k < len(rs) && (unicode.IsDigit(rs[k]) || rs[k] == '.') {
			k++
		}
		n := 1.0
		if k > j {
			n, err = strconv.ParseFloat(string(rs[j:k]), 64)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("ParseFormula(%q): count %q: %w", formula, string(rs[j:k]), ErrBadFormula)
			}
		}
		atoms[el] += n
		i = k
	}

	return atoms, nil
}
