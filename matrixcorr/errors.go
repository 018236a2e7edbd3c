// SPDX-License-Identifier: MIT
// Package matrixcorr: sentinel error set.
// Construction-domain errors are fatal to the model instance and are never
// retried. Callers match with errors.Is; context is added with
// fmt.Errorf("ctx: %w", ErrX) at the boundary.

package matrixcorr

import (
	"errors"

	"github.com/katalvlaran/epmaquant/xray"
)

var (
	// ErrOvervoltage is xray.ErrOvervoltage: E0 at or below the edge energy.
	ErrOvervoltage = xray.ErrOvervoltage

	// ErrModeMismatch indicates a shell-mode call on a continuum-mode model or
	// the reverse.
	ErrModeMismatch = errors.New("matrixcorr: shell/continuum mode mismatch")

	// ErrDegenerate indicates a model parameter that came out non-finite or
	// outside its physical domain (e.g. Riveros α ≤ 0). Never clamped.
	ErrDegenerate = errors.New("matrixcorr: degenerate model parameter")

	// ErrNoDepthProfile is returned by Phi on models without a depth
	// distribution (Null).
	ErrNoDepthProfile = errors.New("matrixcorr: model has no depth distribution")

	// ErrUnknownKind indicates an unsupported model kind.
	ErrUnknownKind = errors.New("matrixcorr: unknown model kind")

	// ErrDepth indicates a negative or non-finite mass depth.
	ErrDepth = errors.New("matrixcorr: mass depth must be finite and non-negative")
)
