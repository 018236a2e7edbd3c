package xray

import (
	"fmt"
	"strings"
)

// Shell enumerates the atomic subshells in IUPAC notation.
type Shell int

// Subshells from K outward. Only K..M5 are used as ionized inner shells;
// N shells appear as outer shells of L and M transitions.
const (
	K Shell = iota
	L1
	L2
	L3
	M1
	M2
	M3
	M4
	M5
	N1
	N2
	N3
	N4
	N5
	N6
	N7
)

var shellNames = [...]string{
	"K", "L1", "L2", "L3", "M1", "M2", "M3", "M4", "M5",
	"N1", "N2", "N3", "N4", "N5", "N6", "N7",
}

// String returns the IUPAC shell name.
func (s Shell) String() string {
	if s < K || s > N7 {
		return fmt.Sprintf("Shell(%d)", int(s))
	}

	return shellNames[s]
}

// Principal returns the principal quantum number of the shell (1 for K, 2 for L, …).
func (s Shell) Principal() int {
	switch {
	case s == K:
		return 1
	case s <= L3:
		return 2
	case s <= M5:
		return 3
	default:
		return 4
	}
}

// ParseShell resolves an IUPAC shell name.
func ParseShell(name string) (Shell, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for i, sn := range shellNames {
		if sn == n {
			return Shell(i), nil
		}
	}

	return 0, fmt.Errorf("ParseShell(%q): %w", name, ErrUnknownShell)
}

// SubShell identifies an ionization edge: one subshell of one element.
type SubShell struct {
	Element Element
	Shell   Shell
}

// String returns e.g. "Si K" or "Ba L3".
func (s SubShell) String() string { return s.Element.Symbol() + " " + s.Shell.String() }

// CharXRay identifies a characteristic transition: a vacancy in Inner is
// filled by an electron from Outer. Energy and weight live in the Database.
type CharXRay struct {
	Element Element
	Inner   Shell
	Outer   Shell
}

// SubShell returns the ionized inner subshell that produces this line.
func (x CharXRay) SubShell() SubShell { return SubShell{Element: x.Element, Shell: x.Inner} }

// Family returns the principal shell family of the inner shell ('K', 'L' or 'M').
func (x CharXRay) Family() byte { return "KLMN"[x.Inner.Principal()-1] }

// String returns the IUPAC form, e.g. "Si K-L3".
func (x CharXRay) String() string {
	return x.Element.Symbol() + " " + x.Inner.String() + "-" + x.Outer.String()
}

// Siegbahn returns the Siegbahn name of the line ("Kα1", "Lβ2", …) or the
// IUPAC transition when no common name exists.
func (x CharXRay) Siegbahn() string {
	if n, ok := siegbahn[[2]Shell{x.Inner, x.Outer}]; ok {
		return n
	}

	return x.Inner.String() + "-" + x.Outer.String()
}

var siegbahn = map[[2]Shell]string{
	{K, L3}:  "Kα1",
	{K, L2}:  "Kα2",
	{K, M3}:  "Kβ1",
	{K, M2}:  "Kβ3",
	{L3, M5}: "Lα1",
	{L3, M4}: "Lα2",
	{L2, M4}: "Lβ1",
	{L3, N5}: "Lβ2",
	{L1, M3}: "Lβ3",
	{L2, N4}: "Lγ1",
	{L3, M1}: "Ll",
	{M5, N7}: "Mα1",
	{M4, N6}: "Mβ",
}

// Line is a convenience constructor for a CharXRay.
func Line(el Element, inner, outer Shell) CharXRay {
	return CharXRay{Element: el, Inner: inner, Outer: outer}
}
