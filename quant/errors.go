// SPDX-License-Identifier: MIT
// Package quant: sentinel error set.
// Hard errors (construction, mismatch, bad input) abort a run and are
// returned wrapped with the label and iteration. Non-convergence is a status,
// not an error; Result.Err maps it to ErrNotConverged for callers that want one.

package quant

import "errors"

var (
	// ErrNotConverged is reported by Result.Err when the iteration cap was hit.
	ErrNotConverged = errors.New("quant: iteration did not converge")

	// ErrNoKRatios indicates an empty k-ratio set.
	ErrNoKRatios = errors.New("quant: no k-ratios")

	// ErrBadKRatio indicates a k-ratio with no lines, lines of another
	// element, or a non-finite value or uncertainty.
	ErrBadKRatio = errors.New("quant: invalid k-ratio")

	// ErrNotInStandard indicates a standard that does not contain the element.
	ErrNotInStandard = errors.New("quant: element absent from standard")

	// ErrDuplicateElement indicates more than one effective k-ratio for an
	// element, or an unmeasured-element rule targeting a measured element.
	ErrDuplicateElement = errors.New("quant: duplicate element")

	// ErrBadCalculation indicates a calculator returning a non-finite or
	// non-positive k-ratio for an element with positive fraction, or a
	// result of the wrong length.
	ErrBadCalculation = errors.New("quant: invalid calculated k-ratio")

	// ErrNilDatabase indicates a Quantifier built without a Database.
	ErrNilDatabase = errors.New("quant: nil database")
)
