package matrixcorr

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epmaquant/xray"
)

// CitZAF is the conventional ZAF scheme in ϕ(ρz) form: Bethe stopping at the
// mean energy (E0+Ec)/2, Love–Scott backscatter loss and the Philibert/Heinrich
// absorption function
//
//	f(χ) = (1+h)/((1+χ/σ)·(1+h·(1+χ/σ))),  σ = 4.5e5/(E0^1.65 − Ec^1.65),  h = Σ c·1.2A/Z².
//
// The matching depth distribution is ϕ(ρz) = F·σ(1+h)·[e^(−σρz) − e^(−σ(1+h)/h·ρz)].
type CitZAF struct {
	base
	f, sigma, h float64
}

// NewCitZAF builds a CitZAF model.
//
// Errors:
//   - ErrOvervoltage when e0 ≤ edge energy.
//   - ErrDegenerate when the stopping power or any parameter is non-positive.
func NewCitZAF(mat xray.Material, sh xray.SubShell, e0 float64, db xray.Database) (*CitZAF, error) {
	bs, err := newBase("NewCitZAF", mat, sh, e0, db)
	if err != nil {
		return nil, err
	}
	els, w, err := mat.Weights()
	if err != nil {
		return nil, err
	}

	eMean := (e0 + bs.ec) / 2
	s, err := BetheStopping(db, mat, eMean)
	if err != nil {
		return nil, fmt.Errorf("NewCitZAF(%s): %w", mat.Name(), err)
	}
	eta, err := MeanEta(mat, e0)
	if err != nil {
		return nil, err
	}
	r := LoveScottR(eta, bs.u0())

	// Q(Ē)/Q(E0) with ln U written as log1p for U close to 1.
	m := IonizationExponent(sh)
	uMean, u0 := eMean/bs.ec, bs.u0()
	qRatio := math.Log1p(uMean-1) / math.Log1p(u0-1) * math.Pow(u0/uMean, m)

	f := r * qRatio * (e0 - bs.ec) * 1e-3 / s

	e0k, eck := e0*1e-3, bs.ec*1e-3
	sigma := 4.5e5 / (math.Pow(e0k, 1.65) - math.Pow(eck, 1.65))
	h := 0.0
	for i, el := range els {
		a, err := db.AtomicWeight(el)
		if err != nil {
			return nil, fmt.Errorf("NewCitZAF(%s): %w", mat.Name(), err)
		}
		h += w[i] * 1.2 * a / (el.Z() * el.Z())
	}

	if !finitePositive(s, r, f, sigma, h) {
		return nil, fmt.Errorf("NewCitZAF(%s, %s, %g eV): S=%g R=%g σ=%g: %w", mat.Name(), sh, e0, s, r, sigma, ErrDegenerate)
	}

	return &CitZAF{base: bs, f: f, sigma: sigma, h: h}, nil
}

// Kind implements MatrixCorrection.
func (*CitZAF) Kind() Kind { return KindCitZAF }

// F implements MatrixCorrection.
func (m *CitZAF) F() float64 { return m.f }

// Phi implements MatrixCorrection.
func (m *CitZAF) Phi(rhoZ float64) (float64, error) {
	if err := checkDepth(rhoZ); err != nil {
		return 0, err
	}
	k := m.sigma * (1 + m.h)

	return m.f * k * (math.Exp(-m.sigma*rhoZ) - math.Exp(-k/m.h*rhoZ)), nil
}

func (m *CitZAF) fchi(chi float64) float64 {
	x := chi / m.sigma
	return m.f * (1 + m.h) / ((1 + x) * (1 + m.h*(1+x)))
}

// FchiAt returns the closed-form emitted intensity for an explicit χ in cm²/g.
func (m *CitZAF) FchiAt(chi float64) float64 { return m.fchi(chi) }

// Fchi implements MatrixCorrection.
func (m *CitZAF) Fchi(x xray.CharXRay, takeOff float64) (float64, error) {
	chi, err := m.chiLine(x, takeOff)
	if err != nil {
		return 0, fmt.Errorf("CitZAF.Fchi: %w", err)
	}

	return m.fchi(chi), nil
}

// FchiEnergy implements MatrixCorrection.
func (m *CitZAF) FchiEnergy(energy, takeOff float64) (float64, error) {
	chi, err := xray.Chi(m.db, m.mat, energy, takeOff)
	if err != nil {
		return 0, fmt.Errorf("CitZAF.FchiEnergy: %w", err)
	}

	return m.fchi(chi), nil
}
