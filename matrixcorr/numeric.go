package matrixcorr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultQuadNodes is the Gauss–Legendre node count of NumericFchi.
const DefaultQuadNodes = 256

// NumericFchi integrates ∫₀^∞ ϕ(ρz)·e^(−χρz)dρz by Gauss–Legendre quadrature
// after mapping ρz = L·t/(1−t), t ∈ [0,1), with L = F(). It cross-checks the
// closed forms and serves models or χ values where one is not available.
//
// Errors:
//   - ErrNoDepthProfile for models without ϕ; ErrDepth for χ < 0.
func NumericFchi(m MatrixCorrection, chi float64, nodes int) (float64, error) {
	if !(chi >= 0) {
		return 0, fmt.Errorf("NumericFchi: χ=%g: %w", chi, ErrDepth)
	}
	if nodes <= 0 {
		nodes = DefaultQuadNodes
	}
	if _, err := m.Phi(0); err != nil {
		return 0, err
	}
	l := m.F()
	var firstErr error
	integrand := func(t float64) float64 {
		if t >= 1 {
			return 0
		}
		s := 1 - t
		rz := l * t / s
		phi, err := m.Phi(rz)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return 0
		}
		return phi * math.Exp(-chi*rz) * l / (s * s)
	}
	v := quad.Fixed(integrand, 0, 1, nodes, nil, 0)
	if firstErr != nil {
		return 0, fmt.Errorf("NumericFchi: %w", firstErr)
	}

	return v, nil
}
