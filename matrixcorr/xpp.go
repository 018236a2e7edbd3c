package matrixcorr

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epmaquant/xray"
)

// Stopping-power expansion of the simplified PAP (XPP) model; j is the
// mean ionization potential in keV.
func xppD(j float64) [3]float64 {
	return [3]float64{6.6e-6, 1.12e-5 * (1.35 - 0.45*j*j), 2.2e-6 / j}
}

func xppP(j float64) [3]float64 {
	return [3]float64{0.78, 0.1, -(0.5 - 0.25*j)}
}

const (
	// xppTinyT switches the stopping-power term to its T → 0 limit.
	xppTinyT = 1e-6

	// xppTinyEps bounds |ε| = |a−b|/b away from zero.
	xppTinyEps = 1e-6
)

// XPP is the Pouchou–Pichoir simplified PAP depth distribution
// ϕ(ρz) = A·e^(−aρz) + (B·ρz + ϕ0 − A)·e^(−bρz).
//
// Implementation:
//   - All model arithmetic runs in keV; inputs are eV.
//   - Parameter averages use normalized mass fractions.
//
// Complexity: O(n) construction for n elements, O(1) per Fchi/Phi plus one
// MAC lookup per element.
type XPP struct {
	base
	f, phi0       float64
	a, b, bigA, B float64
	rBar          float64
}

// NewXPP builds an XPP model.
//
// Errors:
//   - ErrOvervoltage when e0 ≤ edge energy.
//   - ErrDegenerate when a closed-form parameter is non-finite or a, b ≤ 0.
func NewXPP(mat xray.Material, sh xray.SubShell, e0 float64, db xray.Database) (*XPP, error) {
	bs, err := newBase("NewXPP", mat, sh, e0, db)
	if err != nil {
		return nil, err
	}
	els, w, err := mat.Weights()
	if err != nil {
		return nil, err
	}

	// Mean ionization potential and M = Σ c·Z/A.
	var m, lnJ, sqrtZ float64
	for i, el := range els {
		a, err := db.AtomicWeight(el)
		if err != nil {
			return nil, fmt.Errorf("NewXPP(%s): %w", mat.Name(), err)
		}
		cza := w[i] * el.Z() / a
		m += cza
		lnJ += cza * math.Log(PAPJ(el))
		sqrtZ += w[i] * math.Sqrt(el.Z())
	}
	lnJ /= m
	j := math.Exp(lnJ)

	e0k, eck := e0*1e-3, bs.ec*1e-3
	u0 := bs.u0()
	v0 := e0k / j
	lnU0 := math.Log(u0)
	mExp := IonizationExponent(sh)

	// 1/S
	d, pw := xppD(j), xppP(j)
	invS := 0.0
	for k := range pw {
		t := 1 + pw[k] - mExp
		var term float64
		if math.Abs(t) < xppTinyT {
			term = lnU0 * lnU0 / 2
		} else {
			ut := math.Pow(u0, t)
			term = (t*ut*lnU0 - ut + 1) / (t * t)
		}
		invS += d[k] * math.Pow(v0/u0, pw[k]) * term
	}
	invS *= u0 / (v0 * m)

	qlA := lnU0 / (math.Pow(u0, mExp) * eck * eck)

	// Backscatter.
	zb := sqrtZ * sqrtZ
	eta := 1.75e-3*zb + 0.37*(1-math.Exp(-0.015*math.Pow(zb, 1.3)))
	wBar := 0.595 + eta/3.7 + math.Pow(eta, 4.55)
	q := (2*wBar - 1) / (1 - wBar)
	jU0 := 1 + u0*(lnU0-1)
	g := 1.0
	if u0-1 >= 1e-5 {
		g = (u0 - 1 - (1-math.Pow(u0, -(1+q)))/(1+q)) / ((2 + q) * jU0)
	}
	r := 1 - eta*wBar*(1-g)

	rr := 2 - 2.3*eta
	phi0 := 1 + 3.3*(1-math.Pow(u0, -rr))*math.Pow(eta, 1.2)

	f := r * invS / qlA

	// Mean depth.
	x := 1 + 1.3*math.Log(zb)
	y := 0.2 + zb/200
	fOverR := 1 + x*math.Log(1+y*(1-math.Pow(u0, -0.42)))/math.Log(1+y)
	if fOverR < phi0 {
		fOverR = phi0
	}
	rBar := f / fOverR

	gg := 0.22 * math.Log(4*zb) * (1 - 2*math.Exp(-zb*(u0-1)/15))
	h := 1 - 10*(1-1/(1+u0/10))/(zb*zb)

	b := math.Sqrt2 * (1 + math.Sqrt(1-rBar*phi0/f)) / rBar

	gh4 := gg * h * h * h * h
	if lim := 0.9 * b * rBar * rBar * (b - 2*phi0/f); gh4 > lim {
		gh4 = lim
	}
	p := gh4 * f / (rBar * rBar)

	a := (p + b*(2*phi0-b*f)) / (b*f*(2-b*rBar) - phi0)
	eps := (a - b) / b
	if math.Abs(eps) < xppTinyEps {
		eps = math.Copysign(xppTinyEps, eps)
		a = b * (1 + eps)
	}
	bigB := (b*b*f*(1+eps) - p - phi0*b*(2+eps)) / eps
	bigA := (bigB/b + phi0 - b*f) * (1 + eps) / eps

	if !finitePositive(f, phi0, rBar, a, b) || math.IsNaN(bigA) || math.IsInf(bigA, 0) ||
		math.IsNaN(bigB) || math.IsInf(bigB, 0) {
		return nil, fmt.Errorf("NewXPP(%s, %s, %g eV): F=%g a=%g b=%g: %w", mat.Name(), sh, e0, f, a, b, ErrDegenerate)
	}

	return &XPP{base: bs, f: f, phi0: phi0, a: a, b: b, bigA: bigA, B: bigB, rBar: rBar}, nil
}

// Kind implements MatrixCorrection.
func (*XPP) Kind() Kind { return KindXPP }

// F implements MatrixCorrection.
func (m *XPP) F() float64 { return m.f }

// Phi0 returns the surface ionization ϕ(0).
func (m *XPP) Phi0() float64 { return m.phi0 }

// MeanDepth returns R̄, the mean generation depth in g/cm².
func (m *XPP) MeanDepth() float64 { return m.rBar }

// Phi implements MatrixCorrection.
func (m *XPP) Phi(rhoZ float64) (float64, error) {
	if err := checkDepth(rhoZ); err != nil {
		return 0, err
	}

	return m.bigA*math.Exp(-m.a*rhoZ) + (m.B*rhoZ+m.phi0-m.bigA)*math.Exp(-m.b*rhoZ), nil
}

func (m *XPP) fchi(chi float64) float64 {
	bc := m.b + chi
	return m.bigA/(m.a+chi) + (m.phi0-m.bigA)/bc + m.B/(bc*bc)
}

// FchiAt returns the closed-form emitted intensity for an explicit χ in cm²/g.
func (m *XPP) FchiAt(chi float64) float64 { return m.fchi(chi) }

// Fchi implements MatrixCorrection.
func (m *XPP) Fchi(x xray.CharXRay, takeOff float64) (float64, error) {
	chi, err := m.chiLine(x, takeOff)
	if err != nil {
		return 0, fmt.Errorf("XPP.Fchi: %w", err)
	}

	return m.fchi(chi), nil
}

// FchiEnergy implements MatrixCorrection.
func (m *XPP) FchiEnergy(energy, takeOff float64) (float64, error) {
	chi, err := xray.Chi(m.db, m.mat, energy, takeOff)
	if err != nil {
		return 0, fmt.Errorf("XPP.FchiEnergy: %w", err)
	}

	return m.fchi(chi), nil
}
