package matrixcorr

import (
	"fmt"

	"github.com/katalvlaran/epmaquant/xray"
)

// Null is Castaing's first approximation: every factor is 1.
type Null struct {
	base
}

// NewNull returns a Null model. It accepts any material and subshell; only a
// non-positive or non-finite e0 is rejected. db may be nil, in which case
// EdgeEnergy reports 0.
func NewNull(mat xray.Material, sh xray.SubShell, e0 float64, db xray.Database) (*Null, error) {
	if err := checkBeam(e0); err != nil {
		return nil, fmt.Errorf("NewNull(%s): %w", sh, err)
	}
	b := base{db: db, mat: mat, sh: sh, shell: true, e0: e0}
	if db != nil {
		if ec, err := db.EdgeEnergy(sh); err == nil {
			b.ec = ec
		}
	}

	return &Null{base: b}, nil
}

// Kind implements MatrixCorrection.
func (*Null) Kind() Kind { return KindNull }

// F implements MatrixCorrection.
func (*Null) F() float64 { return 1 }

// Fchi implements MatrixCorrection; always 1.
func (*Null) Fchi(xray.CharXRay, float64) (float64, error) { return 1, nil }

// FchiEnergy implements MatrixCorrection; always 1.
func (*Null) FchiEnergy(float64, float64) (float64, error) { return 1, nil }

// FchiAt is always 1.
func (*Null) FchiAt(float64) float64 { return 1 }

// Phi always fails with ErrNoDepthProfile.
func (*Null) Phi(float64) (float64, error) {
	return 0, fmt.Errorf("Null.Phi: %w", ErrNoDepthProfile)
}
