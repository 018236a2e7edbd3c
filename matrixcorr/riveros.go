package matrixcorr

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epmaquant/xray"
)

// Riveros is the Riveros (1993) Gaussian depth distribution
//
//	ϕ(ρz) = exp(−α²ρz²)·(γ0 − (γ0 − ϕ0)·e^(−βρz)).
//
// Per-element α_i and β_i (Berger J) are combined by a mass-fraction weighted
// average, not a logarithmic one; this follows the published parameterization.
//
// A model is either in shell mode (built by NewRiveros, ionizing a subshell)
// or in continuum mode (built by NewRiverosContinuum, generating
// bremsstrahlung at a photon energy). Fchi requires shell mode; Fchip
// requires continuum mode.
type Riveros struct {
	base
	alpha, beta, gamma0, phi0 float64
	f                         float64
}

// NewRiveros builds a shell-mode Riveros model.
//
// Errors:
//   - ErrOvervoltage when e0 ≤ edge energy.
//   - ErrDegenerate when α ≤ 0, β ≤ 0 or any parameter is non-finite.
func NewRiveros(mat xray.Material, sh xray.SubShell, e0 float64, db xray.Database) (*Riveros, error) {
	bs, err := newBase("NewRiveros", mat, sh, e0, db)
	if err != nil {
		return nil, err
	}

	return newRiveros(bs)
}

// NewRiverosContinuum builds a continuum-mode model for bremsstrahlung of
// photon energy eNu (eV) generated by beam energy e0.
//
// Errors:
//   - ErrOvervoltage when e0 ≤ eNu; ErrDegenerate as NewRiveros.
func NewRiverosContinuum(mat xray.Material, e0, eNu float64, db xray.Database) (*Riveros, error) {
	if err := checkBeam(e0); err != nil {
		return nil, fmt.Errorf("NewRiverosContinuum(%s): %w", mat.Name(), err)
	}
	if !(eNu > 0) || e0 <= eNu {
		return nil, fmt.Errorf("NewRiverosContinuum(%s): E0=%g eV, Eν=%g eV: %w", mat.Name(), e0, eNu, ErrOvervoltage)
	}

	return newRiveros(base{db: db, mat: mat, e0: e0, ec: eNu})
}

func newRiveros(bs base) (*Riveros, error) {
	name := bs.mat.Name()
	els, w, err := bs.mat.Weights()
	if err != nil {
		return nil, fmt.Errorf("Riveros(%s): %w", name, err)
	}
	e0k, eck := bs.e0*1e-3, bs.ec*1e-3

	var alpha, beta float64
	for i, el := range els {
		a, err := bs.db.AtomicWeight(el)
		if err != nil {
			return nil, fmt.Errorf("Riveros(%s): %w", name, err)
		}
		z := el.Z()
		ai := 2.14e5 * math.Pow(z, 1.16) / (a * math.Pow(e0k, 1.25)) *
			math.Sqrt(math.Log(1.166*bs.e0/BergerJ(el))/(e0k-eck))
		alpha += w[i] * ai
		beta += w[i] * 0.4 * ai * math.Pow(z, 0.6)
	}

	eta, err := MeanEta(bs.mat, bs.e0)
	if err != nil {
		return nil, err
	}
	u0 := bs.u0()
	g0 := gamma0(u0)
	phi0 := 1 + 2.8*(1-0.9/u0)*eta

	m := &Riveros{base: bs, alpha: alpha, beta: beta, gamma0: g0, phi0: phi0}
	m.f = m.fchi(0)
	if !finitePositive(alpha, beta, g0, phi0, m.f) {
		return nil, fmt.Errorf("Riveros(%s, %g eV): α=%g β=%g γ0=%g ϕ0=%g: %w", name, bs.e0, alpha, beta, g0, phi0, ErrDegenerate)
	}

	return m, nil
}

// Kind implements MatrixCorrection.
func (*Riveros) Kind() Kind { return KindRiveros1993 }

// F implements MatrixCorrection.
func (m *Riveros) F() float64 { return m.f }

// Alpha returns α in cm²/g.
func (m *Riveros) Alpha() float64 { return m.alpha }

// Beta returns β in cm²/g.
func (m *Riveros) Beta() float64 { return m.beta }

// Gamma0 returns γ0.
func (m *Riveros) Gamma0() float64 { return m.gamma0 }

// Phi0 returns ϕ(0).
func (m *Riveros) Phi0() float64 { return m.phi0 }

// Phi implements MatrixCorrection.
func (m *Riveros) Phi(rhoZ float64) (float64, error) {
	if err := checkDepth(rhoZ); err != nil {
		return 0, err
	}
	ar := m.alpha * rhoZ

	return math.Exp(-ar*ar) * (m.gamma0 - (m.gamma0-m.phi0)*math.Exp(-m.beta*rhoZ)), nil
}

// fchi evaluates ∫₀^∞ through erfcx; no exp(x²)·erfc(x) overflow for large χ.
func (m *Riveros) fchi(chi float64) float64 {
	k := math.SqrtPi / (2 * m.alpha)
	t := 2 * m.alpha

	return k * (m.gamma0*Erfcx(chi/t) - (m.gamma0-m.phi0)*Erfcx((chi+m.beta)/t))
}

// FchiAt returns the closed-form emitted intensity for an explicit χ in cm²/g.
func (m *Riveros) FchiAt(chi float64) float64 { return m.fchi(chi) }

// Fchi implements MatrixCorrection.
//
// Errors:
//   - ErrModeMismatch in continuum mode.
func (m *Riveros) Fchi(x xray.CharXRay, takeOff float64) (float64, error) {
	chi, err := m.chiLine(x, takeOff)
	if err != nil {
		return 0, fmt.Errorf("Riveros.Fchi: %w", err)
	}

	return m.fchi(chi), nil
}

// FchiEnergy implements MatrixCorrection in both modes.
func (m *Riveros) FchiEnergy(energy, takeOff float64) (float64, error) {
	chi, err := xray.Chi(m.db, m.mat, energy, takeOff)
	if err != nil {
		return 0, fmt.Errorf("Riveros.FchiEnergy: %w", err)
	}

	return m.fchi(chi), nil
}

// Fchip returns the partial emitted intensity ∫₀^τ ϕ(ρz)·e^(−χρz)dρz at the
// model's photon energy, for a layer of mass thickness tau (g/cm²).
// tau = +Inf gives the full FchiEnergy.
//
// Errors:
//   - ErrModeMismatch in shell mode.
//   - ErrDepth for negative or NaN tau.
func (m *Riveros) Fchip(takeOff, tau float64) (float64, error) {
	if m.shell {
		return 0, fmt.Errorf("Riveros.Fchip(%s): %w", m.sh, ErrModeMismatch)
	}
	if !(tau >= 0) {
		return 0, fmt.Errorf("Riveros.Fchip: τ=%g: %w", tau, ErrDepth)
	}
	chi, err := xray.Chi(m.db, m.mat, m.ec, takeOff)
	if err != nil {
		return 0, fmt.Errorf("Riveros.Fchip: %w", err)
	}
	if math.IsInf(tau, 1) {
		return m.fchi(chi), nil
	}

	return m.gamma0*m.partial(chi, tau) - (m.gamma0-m.phi0)*m.partial(chi+m.beta, tau), nil
}

// partial returns ∫₀^τ exp(−α²ρz² − s·ρz)dρz.
func (m *Riveros) partial(s, tau float64) float64 {
	t := 2 * m.alpha
	u := s / t
	v := m.alpha*tau + u

	return math.SqrtPi / t * (Erfcx(u) - Erfcx(v)*math.Exp(-m.alpha*m.alpha*tau*tau-s*tau))
}
