package xray

import (
	"fmt"
	"strings"
)

// Element identifies a chemical element by atomic number.
type Element int

// MaxElement is the highest atomic number with a symbol in this package.
const MaxElement Element = 99

var symbols = [...]string{
	"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es",
}

// Valid reports whether e lies in 1..MaxElement.
func (e Element) Valid() bool { return e >= 1 && e <= MaxElement }

// Z returns the atomic number as a float64 for use in model arithmetic.
func (e Element) Z() float64 { return float64(e) }

// Symbol returns the chemical symbol, or "Z<n>" for unsupported numbers.
func (e Element) Symbol() string {
	if !e.Valid() {
		return fmt.Sprintf("Z%d", int(e))
	}

	return symbols[e]
}

// String implements fmt.Stringer.
func (e Element) String() string { return e.Symbol() }

// ParseElement resolves a chemical symbol (case-sensitive first letter,
// e.g. "Si", "O") to an Element.
func ParseElement(symbol string) (Element, error) {
	s := strings.TrimSpace(symbol)
	for z := Element(1); z <= MaxElement; z++ {
		if symbols[z] == s {
			return z, nil
		}
	}

	return 0, fmt.Errorf("ParseElement(%q): %w", symbol, ErrUnknownElement)
}

// MustElement is ParseElement for literals known to be valid; it panics otherwise.
func MustElement(symbol string) Element {
	e, err := ParseElement(symbol)
	if err != nil {
		panic(err)
	}

	return e
}
