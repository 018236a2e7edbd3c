package matrixcorr

import (
	"math"

	"github.com/katalvlaran/epmaquant/xray"
)

// bergerJ holds the Berger–Seltzer mean ionization potentials (eV) for Z=1..20.
var bergerJ = [...]float64{
	19.2, 41.8, 40.0, 63.7, 76.0, 78.0, 82.0, 95.0, 115.0, 137.0,
	149.0, 156.0, 166.0, 173.0, 173.0, 180.0, 174.0, 188.0, 190.0, 191.0,
}

// BergerJ returns the mean ionization potential of el in eV: tabulated for
// Z ≤ 20, J = 9.76·Z + 58.5·Z^-0.19 above.
func BergerJ(el xray.Element) float64 {
	z := int(el)
	if z >= 1 && z <= len(bergerJ) {
		return bergerJ[z-1]
	}
	fz := el.Z()

	return 9.76*fz + 58.5*math.Pow(fz, -0.19)
}

// PAPJ returns the Pouchou–Pichoir mean ionization potential of el in keV.
func PAPJ(el xray.Element) float64 {
	z := el.Z()
	return 1e-3 * z * (10.04 + 8.25*math.Exp(-z/11.22))
}

// LoveScottEta returns the backscatter coefficient of element Z at beam
// energy e0 (eV).
func LoveScottEta(el xray.Element, e0 float64) float64 {
	z := el.Z()
	eta20 := (-52.3791 + 150.48371*z - 1.67373*z*z + 0.00716*z*z*z) * 1e-4
	gEta := (-1112.8 + 30.289*z - 0.15498*z*z) * 1e-4

	return eta20 * (1 + gEta*math.Log(e0/20e3))
}

// LoveScottR returns the backscatter loss factor R for mean backscatter
// coefficient eta at overvoltage u0.
func LoveScottR(eta, u0 float64) float64 {
	x := math.Log(u0)
	i := 0.33148*x + 0.05596*x*x - 0.06339*x*x*x + 0.00947*x*x*x*x
	g := (2.87898*x - 1.51307*x*x + 0.81312*x*x*x - 0.08241*x*x*x*x) / u0

	return 1 - eta*math.Pow(i+eta*g, 1.67)
}

// MeanEta returns the mass-fraction weighted Love–Scott η of mat.
func MeanEta(mat xray.Material, e0 float64) (float64, error) {
	return mat.Mean(func(el xray.Element) float64 { return LoveScottEta(el, e0) })
}

// BetheStopping returns the Bethe stopping power S(E) of mat at energy e
// (eV) in keV·cm²/g, using Berger J and the 1.166 factor.
func BetheStopping(db xray.Database, mat xray.Material, e float64) (float64, error) {
	els, w, err := mat.Weights()
	if err != nil {
		return 0, err
	}
	ek := e * 1e-3
	s := 0.0
	for i, el := range els {
		a, err := db.AtomicWeight(el)
		if err != nil {
			return 0, err
		}
		s += w[i] * el.Z() / a * math.Log(1.166*e/BergerJ(el))
	}

	return 78500 / ek * s, nil
}

// Ionization returns the relative ionization cross-section
// Q(E) ∝ ln(U)/(U^m·Ec²), with U = e/ec and m the shell exponent for sh.
// Energies are eV; the result is only meaningful in ratios.
func Ionization(sh xray.SubShell, e, ec float64) float64 {
	u := e / ec
	eck := ec * 1e-3

	return math.Log(u) / (math.Pow(u, IonizationExponent(sh)) * eck * eck)
}

// IonizationExponent returns the m exponent of the XPP cross-section.
func IonizationExponent(sh xray.SubShell) float64 {
	switch sh.Shell.Principal() {
	case 1:
		z := sh.Element.Z()
		return 0.86 + 0.12*math.Exp(-(z/5)*(z/5))
	case 2:
		return 0.82
	default:
		return 0.78
	}
}

// Erfcx returns the scaled complementary error function exp(x²)·erfc(x),
// accurate for large positive x where erfc underflows.
func Erfcx(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x < 0:
		return 2*math.Exp(x*x) - Erfcx(-x)
	case x < 10:
		return math.Exp(x*x) * math.Erfc(x)
	}
	// Continued fraction erfcx(x) = (1/√π)·1/(x + (1/2)/(x + 1/(x + (3/2)/(x + …)))).
	const terms = 40
	f := x
	for n := terms; n >= 1; n-- {
		f = x + float64(n)/2/f
	}

	return 1 / (math.SqrtPi * f)
}

// gamma0 returns the Riveros γ0(U0) surface ionization multiplier.
// Near U0 = 1 it uses a series in x = ln U0 (limit 1.57… at U0 → 1).
func gamma0(u0 float64) float64 {
	x := math.Log(u0)
	if x < 1e-3 {
		// lnU0 − 5 + 5U0^-0.2 = 0.1x² − x³/150 + x⁴/3000 …; (U0−1) = expm1(x).
		n := 0.1*x*x - 0.0066667*x*x*x + 0.00033333*x*x*x*x
		if x == 0 {
			return 5 * math.Pi * 0.1
		}
		return 5 * math.Pi * u0 * n / (math.Expm1(x) * x)
	}

	return 5 * math.Pi * u0 / ((u0 - 1) * x) * (x - 5 + 5*math.Pow(u0, -0.2))
}
