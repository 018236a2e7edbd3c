package xray

import (
	"fmt"
	"math"
)

// CarbonDensity is the nominal density of an evaporated carbon coat in g/cm³.
const CarbonDensity = 1.9

// Film is a uniform surface layer (typically a conductive coat).
type Film struct {
	Material  Material
	Density   float64 // g/cm³
	Thickness float64 // nm
}

// MassThickness returns ρ·t in g/cm².
func (f Film) MassThickness() float64 { return f.Density * f.Thickness * 1e-7 }

// Validate checks density > 0, thickness ≥ 0 and a non-empty material.
func (f Film) Validate() error {
	if f.Material.Len() == 0 {
		return fmt.Errorf("film: %w", ErrEmptyMaterial)
	}
	if !(f.Density > 0) || math.IsInf(f.Density, 0) || !(f.Thickness >= 0) || math.IsInf(f.Thickness, 0) {
		return fmt.Errorf("film %s: ρ=%g t=%g: %w", f.Material.Name(), f.Density, f.Thickness, ErrBadFilm)
	}

	return nil
}

// CarbonCoating returns a carbon film of the given thickness in nm.
func CarbonCoating(nm float64) *Film {
	c, _ := Pure(6) // carbon is always valid
	return &Film{Material: c, Density: CarbonDensity, Thickness: nm}
}

// Conditions describes one measurement: beam energy, take-off angle and an
// optional coating. A k-ratio carries two independent Conditions, one for
// the unknown and one for the standard.
type Conditions struct {
	BeamEnergy float64 // eV
	TakeOff    float64 // radians
	Coating    *Film   // nil ⇒ uncoated
}

// Validate checks E0 is finite and positive, θ ∈ (0, π/2] and any coating.
func (c Conditions) Validate() error {
	if !(c.BeamEnergy > 0) || math.IsInf(c.BeamEnergy, 0) {
		return fmt.Errorf("E0=%g eV: %w", c.BeamEnergy, ErrBeamEnergy)
	}
	if err := ValidateTakeOff(c.TakeOff); err != nil {
		return err
	}
	if c.Coating != nil {
		return c.Coating.Validate()
	}

	return nil
}

// Degrees converts an angle in degrees to radians.
func Degrees(deg float64) float64 { return deg * math.Pi / 180 }
