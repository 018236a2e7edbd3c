package matrixcorr

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/epmaquant/xray"
)

// Kind selects a matrix-correction model.
type Kind int

// Supported models.
const (
	KindNull Kind = iota
	KindXPP
	KindCitZAF
	KindRiveros1993
)

var kindNames = [...]string{"Null", "XPP", "CitZAF", "Riveros1993"}

// String returns the model name.
func (k Kind) String() string {
	if k < KindNull || k > KindRiveros1993 {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind resolves a model name case-insensitively ("xpp", "citzaf", …).
func ParseKind(name string) (Kind, error) {
	n := strings.TrimSpace(name)
	for i, kn := range kindNames {
		if strings.EqualFold(kn, n) {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("ParseKind(%q): %w", name, ErrUnknownKind)
}

// MatrixCorrection is one depth-distribution model instance, built for a
// single (material, subshell, E0) and immutable afterwards.
//
// Contract:
//   - F() > 0.
//   - Fchi(x, θ) ≤ F() for every θ ∈ (0, π/2].
//   - Phi is the depth distribution normalized to ϕ(∞) = 0; models without
//     one return ErrNoDepthProfile.
type MatrixCorrection interface {
	// Kind reports the model.
	Kind() Kind

	// Material returns the composition the model was built for.
	Material() xray.Material

	// SubShell returns the ionized subshell; false in continuum mode.
	SubShell() (xray.SubShell, bool)

	// BeamEnergy returns E0 in eV.
	BeamEnergy() float64

	// EdgeEnergy returns the ionization energy in eV (photon energy in
	// continuum mode).
	EdgeEnergy() float64

	// F returns ∫ϕ(ρz)dρz in g/cm².
	F() float64

	// Fchi returns ∫ϕ(ρz)·exp(−χρz)dρz for line x observed at takeOff.
	Fchi(x xray.CharXRay, takeOff float64) (float64, error)

	// FchiEnergy is Fchi for an arbitrary photon energy in eV.
	FchiEnergy(energy, takeOff float64) (float64, error)

	// Phi returns ϕ(ρz).
	Phi(rhoZ float64) (float64, error)
}

// New builds a model of the given kind for mat, ionized subshell sh and beam
// energy e0 (eV).
//
// Errors:
//   - ErrUnknownKind for an unsupported kind.
//   - ErrOvervoltage when e0 ≤ edge energy (not for KindNull).
//   - ErrDegenerate when a model parameter is non-finite or non-physical.
//   - xray.ErrBeamEnergy, xray.ErrZeroTotal and Database lookup errors are forwarded.
func New(kind Kind, mat xray.Material, sh xray.SubShell, e0 float64, db xray.Database) (MatrixCorrection, error) {
	switch kind {
	case KindNull:
		return NewNull(mat, sh, e0, db)
	case KindXPP:
		return NewXPP(mat, sh, e0, db)
	case KindCitZAF:
		return NewCitZAF(mat, sh, e0, db)
	case KindRiveros1993:
		return NewRiveros(mat, sh, e0, db)
	default:
		return nil, fmt.Errorf("matrixcorr.New(%s): %w", kind, ErrUnknownKind)
	}
}

// base carries the inputs every model keeps.
type base struct {
	db    xray.Database
	mat   xray.Material
	sh    xray.SubShell
	shell bool
	e0    float64 // eV
	ec    float64 // eV
}

// newBase validates the shell-mode inputs shared by every physical model.
func newBase(name string, mat xray.Material, sh xray.SubShell, e0 float64, db xray.Database) (base, error) {
	if err := checkBeam(e0); err != nil {
		return base{}, fmt.Errorf("%s(%s, %s): %w", name, mat.Name(), sh, err)
	}
	if mat.Total() <= 0 {
		return base{}, fmt.Errorf("%s(%s, %s): %w", name, mat.Name(), sh, xray.ErrZeroTotal)
	}
	ec, err := db.EdgeEnergy(sh)
	if err != nil {
		return base{}, fmt.Errorf("%s(%s, %s): %w", name, mat.Name(), sh, err)
	}
	if e0 <= ec {
		return base{}, fmt.Errorf("%s(%s, %s): E0=%g eV, Ec=%g eV: %w", name, mat.Name(), sh, e0, ec, ErrOvervoltage)
	}

	return base{db: db, mat: mat, sh: sh, shell: true, e0: e0, ec: ec}, nil
}

func checkBeam(e0 float64) error {
	if !(e0 > 0) || e0 > 1e9 {
		return fmt.Errorf("E0=%g eV: %w", e0, xray.ErrBeamEnergy)
	}

	return nil
}

func (b base) Material() xray.Material         { return b.mat }
func (b base) SubShell() (xray.SubShell, bool) { return b.sh, b.shell }
func (b base) BeamEnergy() float64             { return b.e0 }
func (b base) EdgeEnergy() float64             { return b.ec }

// u0 returns the overvoltage E0/Ec.
func (b base) u0() float64 { return b.e0 / b.ec }

// chiLine resolves χ for line x, checking it comes from the model's subshell.
func (b base) chiLine(x xray.CharXRay, takeOff float64) (float64, error) {
	if !b.shell {
		return 0, fmt.Errorf("Fchi(%s): %w", x, ErrModeMismatch)
	}
	e, err := b.db.LineEnergy(x)
	if err != nil {
		return 0, err
	}

	return xray.Chi(b.db, b.mat, e, takeOff)
}

func checkDepth(rhoZ float64) error {
	if !(rhoZ >= 0) || rhoZ > 1e300 {
		return fmt.Errorf("ρz=%g: %w", rhoZ, ErrDepth)
	}

	return nil
}

// finitePositive reports whether every v is finite and > 0.
func finitePositive(vs ...float64) bool {
	for _, v := range vs {
		if !(v > 0) || v > 1e300 {
			return false
		}
	}

	return true
}
