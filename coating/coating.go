// Package coating models the transmission of emitted X-rays through a uniform
// surface film such as an evaporated carbon coat.
package coating

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epmaquant/xray"
)

// CoatingCorrection returns the fraction of emitted intensity that survives
// the surface layer on the way to the detector.
type CoatingCorrection interface {
	// Film returns the layer, or nil for an uncoated surface.
	Film() *xray.Film

	// Transmission returns T ∈ (0, 1] for line x at takeOff.
	Transmission(x xray.CharXRay, takeOff float64) (float64, error)

	// TransmissionEnergy is Transmission for a photon energy in eV.
	TransmissionEnergy(energy, takeOff float64) (float64, error)
}

// New returns Null for a nil film and a Layer otherwise.
//
// Errors:
//   - xray.ErrBadFilm, xray.ErrEmptyMaterial from film validation.
func New(film *xray.Film, db xray.Database) (CoatingCorrection, error) {
	if film == nil {
		return Null{}, nil
	}

	return NewLayer(*film, db)
}

// Null is an uncoated surface.
type Null struct{}

// Film implements CoatingCorrection.
func (Null) Film() *xray.Film { return nil }

// Transmission is always 1.
func (Null) Transmission(xray.CharXRay, float64) (float64, error) { return 1, nil }

// TransmissionEnergy is always 1.
func (Null) TransmissionEnergy(float64, float64) (float64, error) { return 1, nil }

// Layer is a single homogeneous film: T = exp(−μ_film(E)·ρt/sinθ).
type Layer struct {
	film xray.Film
	db   xray.Database
}

// NewLayer validates film and returns a Layer.
func NewLayer(film xray.Film, db xray.Database) (*Layer, error) {
	if err := film.Validate(); err != nil {
		return nil, fmt.Errorf("coating.NewLayer: %w", err)
	}

	return &Layer{film: film, db: db}, nil
}

// Film implements CoatingCorrection.
func (l *Layer) Film() *xray.Film {
	f := l.film
	return &f
}

// Transmission implements CoatingCorrection.
func (l *Layer) Transmission(x xray.CharXRay, takeOff float64) (float64, error) {
	e, err := l.db.LineEnergy(x)
	if err != nil {
		return 0, fmt.Errorf("Layer.Transmission: %w", err)
	}

	return l.TransmissionEnergy(e, takeOff)
}

// TransmissionEnergy implements CoatingCorrection.
func (l *Layer) TransmissionEnergy(energy, takeOff float64) (float64, error) {
	chi, err := xray.Chi(l.db, l.film.Material, energy, takeOff)
	if err != nil {
		return 0, fmt.Errorf("Layer.Transmission: %w", err)
	}

	return math.Exp(-chi * l.film.MassThickness()), nil
}
