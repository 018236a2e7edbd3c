package xray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Database is the narrow contract to the element/line/edge and
// mass-absorption tables. The core only reads from it; implementations must
// be safe for concurrent readers.
//
// All energies are in eV and MACs in cm²/g.
type Database interface {
	// AtomicWeight returns the standard atomic weight in g/mol.
	AtomicWeight(el Element) (float64, error)

	// EdgeEnergy returns the ionization energy of sh.
	EdgeEnergy(sh SubShell) (float64, error)

	// LineEnergy returns the photon energy of x.
	LineEnergy(x CharXRay) (float64, error)

	// LineWeight returns the relative intensity of x within its family
	// (strongest line of the family = 1).
	LineWeight(x CharXRay) (float64, error)

	// Lines returns every line of el the database knows.
	Lines(el Element) []CharXRay

	// FluorescenceYield returns the probability that a vacancy in sh
	// relaxes radiatively.
	FluorescenceYield(sh SubShell) (float64, error)

	// JumpRatio returns the absorption-edge jump ratio of sh.
	JumpRatio(sh SubShell) (float64, error)

	// MAC returns the mass-absorption coefficient of pure el at energy.
	MAC(el Element, energy float64) (float64, error)
}

// MAC returns the mass-absorption coefficient of mat at energy:
// Σ c_i·μ_i(E) over the raw (unnormalized) mass fractions.
func MAC(db Database, mat Material, energy float64) (float64, error) {
	els := mat.Elements()
	c := make([]float64, len(els))
	mu := make([]float64, len(els))
	for i, el := range els {
		m, err := db.MAC(el, energy)
		if err != nil {
			return 0, fmt.Errorf("MAC(%s, %.1f eV): %w", mat.Name(), energy, err)
		}
		c[i], mu[i] = mat.MassFraction(el), m
	}

	return floats.Dot(c, mu), nil
}

// Chi returns χ = μ(mat, E)·csc(θ), the absorption coefficient along the
// path toward a detector at take-off angle θ.
//
// Errors:
//   - ErrTakeOff when θ ∉ (0, π/2]; MAC lookup errors are forwarded.
func Chi(db Database, mat Material, energy, takeOff float64) (float64, error) {
	if err := ValidateTakeOff(takeOff); err != nil {
		return 0, err
	}
	mu, err := MAC(db, mat, energy)
	if err != nil {
		return 0, err
	}

	return mu / math.Sin(takeOff), nil
}

// propertyTol tolerates rounding in θ = π/2 supplied through degree conversion.
const propertyTol = 1e-12

// ValidateTakeOff checks θ ∈ (0, π/2].
func ValidateTakeOff(takeOff float64) error {
	if math.IsNaN(takeOff) || takeOff <= 0 || takeOff > math.Pi/2+propertyTol {
		return fmt.Errorf("take-off %g rad: %w", takeOff, ErrTakeOff)
	}

	return nil
}

// Overvoltage returns u0 = E0/E_edge for sh.
func Overvoltage(db Database, sh SubShell, e0 float64) (float64, error) {
	ec, err := db.EdgeEnergy(sh)
	if err != nil {
		return 0, err
	}

	return e0 / ec, nil
}
