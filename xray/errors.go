// SPDX-License-Identifier: MIT
// Package xray: sentinel error set.
// Every message is prefixed with "xray: ..." for consistency. Callers match
// with errors.Is; contextual wrapping uses fmt.Errorf("ctx: %w", ErrX).

package xray

import "errors"

var (
	// ErrUnknownElement indicates an atomic number or symbol outside the
	// supported periodic table range, or missing from a Database.
	ErrUnknownElement = errors.New("xray: unknown element")

	// ErrUnknownShell indicates a shell name or value that is not recognised.
	ErrUnknownShell = errors.New("xray: unknown shell")

	// ErrUnknownLine indicates a transition the Database has no data for.
	ErrUnknownLine = errors.New("xray: unknown characteristic line")

	// ErrUnknownEdge indicates a subshell the Database has no edge energy for.
	ErrUnknownEdge = errors.New("xray: unknown edge")

	// ErrUnknownFamily indicates a transition family name or code that is not
	// present in the lookup table.
	ErrUnknownFamily = errors.New("xray: unknown transition family")

	// ErrEmptyMaterial indicates a material with no elements.
	ErrEmptyMaterial = errors.New("xray: material has no elements")

	// ErrBadFraction indicates a negative, NaN or infinite mass fraction.
	ErrBadFraction = errors.New("xray: mass fraction must be finite and non-negative")

	// ErrZeroTotal indicates a material whose mass fractions sum to zero where
	// a normalized composition is required.
	ErrZeroTotal = errors.New("xray: material mass fractions sum to zero")

	// ErrBadFormula indicates a chemical formula that cannot be parsed.
	ErrBadFormula = errors.New("xray: malformed chemical formula")

	// ErrBeamEnergy indicates a beam energy that is not finite and positive.
	ErrBeamEnergy = errors.New("xray: beam energy must be finite and positive")

	// ErrTakeOff indicates a take-off angle outside (0, π/2].
	ErrTakeOff = errors.New("xray: take-off angle must lie in (0, π/2]")

	// ErrBadFilm indicates a coating with non-positive density or negative thickness.
	ErrBadFilm = errors.New("xray: coating density must be positive and thickness non-negative")

	// ErrOvervoltage indicates a beam energy at or below the ionization edge
	// (overvoltage u0 ≤ 1); no characteristic emission is possible.
	ErrOvervoltage = errors.New("xray: beam energy at or below edge energy")

	// ErrNoLines indicates an empty transition set where at least one line
	// is required.
	ErrNoLines = errors.New("xray: no characteristic lines")
)
