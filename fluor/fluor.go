// Package fluor computes characteristic secondary-fluorescence enhancement.
//
// A FluorescenceCorrection is built for one (material, subshell, E0) and
// returns F ≥ 1, the ratio of total to primary emission of a line of that
// subshell. Null returns exactly 1; Reed sums the contribution of every
// other characteristic line in the material energetic enough to ionize the
// subshell.
package fluor

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/epmaquant/xray"
)

// Kind selects a fluorescence model.
type Kind int

// Supported models.
const (
	KindNull Kind = iota
	KindReed
)

// String returns "Null" or "Reed".
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindReed:
		return "Reed"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves "null" or "reed" case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "null":
		return KindNull, nil
	case "reed":
		return KindReed, nil
	}

	return 0, fmt.Errorf("fluor.ParseKind(%q): %w", name, ErrUnknownKind)
}

// FluorescenceCorrection is one enhancement model instance.
type FluorescenceCorrection interface {
	Kind() Kind
	SubShell() xray.SubShell

	// F returns the enhancement factor (≥ 1) for line x observed at takeOff.
	F(x xray.CharXRay, takeOff float64) (float64, error)
}

// New builds a model of the given kind.
func New(kind Kind, mat xray.Material, sh xray.SubShell, e0 float64, db xray.Database) (FluorescenceCorrection, error) {
	switch kind {
	case KindNull:
		return Null{sh: sh}, nil
	case KindReed:
		return NewReed(mat, sh, e0, db)
	}

	return nil, fmt.Errorf("fluor.New(%s): %w", kind, ErrUnknownKind)
}

// Null is the no-fluorescence model.
type Null struct {
	sh xray.SubShell
}

// NewNull returns a Null model for sh.
func NewNull(sh xray.SubShell) Null { return Null{sh: sh} }

// Kind implements FluorescenceCorrection.
func (Null) Kind() Kind { return KindNull }

// SubShell implements FluorescenceCorrection.
func (n Null) SubShell() xray.SubShell { return n.sh }

// F is always 1.
func (Null) F(xray.CharXRay, float64) (float64, error) { return 1, nil }

// Cross-family excitation factors P of the Reed model.
const (
	reedSameFamily = 1.0
	reedLExcitesK  = 4.2
	reedKExcitesL  = 0.24
)

// exciter is one line of another element able to ionize the primary subshell.
type exciter struct {
	line xray.CharXRay
	// pre holds every factor that does not depend on the observed line:
	// 0.5·c_B·((r_A−1)/r_A)·ω_B·p_B·(A_A/A_B)·(μ_A(E_B)/μ(E_B))·((U_B−1)/(U_A−1))^1.67·P.
	pre float64
	muB float64 // μ(material, E_B), cm²/g
}

// Reed is the Reed (1965) characteristic fluorescence correction.
//
// Implementation:
//   - Exciters are the lines of every other element present with E_B > Ec_A
//     and their own edge below E0.
//   - p_B is the line weight normalized over the lines sharing its inner subshell.
//   - Pairs involving M shells across families contribute nothing.
//
// Complexity: O(L) per F for L exciting lines.
type Reed struct {
	db       xray.Database
	mat      xray.Material
	sh       xray.SubShell
	e0, ecA  float64
	sigma    float64 // Lenard coefficient, cm²/g
	exciters []exciter
}

// NewReed builds a Reed model.
//
// Errors:
//   - xray.ErrOvervoltage when e0 ≤ Ec_A; Database errors are forwarded.
func NewReed(mat xray.Material, sh xray.SubShell, e0 float64, db xray.Database) (*Reed, error) {
	ecA, err := db.EdgeEnergy(sh)
	if err != nil {
		return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
	}
	if !(e0 > ecA) {
		return nil, fmt.Errorf("NewReed(%s): E0=%g eV: %w", sh, e0, xray.ErrOvervoltage)
	}
	rA, err := db.JumpRatio(sh)
	if err != nil {
		return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
	}
	aA, err := db.AtomicWeight(sh.Element)
	if err != nil {
		return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
	}
	total := mat.Total()
	if total <= 0 {
		return nil, fmt.Errorf("NewReed(%s): %w", mat.Name(), xray.ErrZeroTotal)
	}

	r := &Reed{
		db: db, mat: mat, sh: sh, e0: e0, ecA: ecA,
		sigma: 3.3e5 / (math.Pow(e0*1e-3, 1.65) - math.Pow(ecA*1e-3, 1.65)),
	}
	uA := e0 / ecA
	for _, elB := range mat.Elements() {
		cB := mat.MassFraction(elB) / total
		if elB == sh.Element || cB <= 0 {
			continue
		}
		aB, err := db.AtomicWeight(elB)
		if err != nil {
			return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
		}
		lines := db.Lines(elB)
		shellWeight := make(map[xray.Shell]float64, 4)
		for _, x := range lines {
			w, err := db.LineWeight(x)
			if err != nil {
				return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
			}
			shellWeight[x.Inner] += w
		}
		for _, x := range lines {
			p := excitationFactor(x.Inner, sh.Shell)
			if p == 0 {
				continue
			}
			eB, err := db.LineEnergy(x)
			if err != nil {
				return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
			}
			ecB, err := db.EdgeEnergy(x.SubShell())
			if err != nil {
				return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
			}
			if eB <= ecA || ecB >= e0 {
				continue
			}
			wB, err := db.LineWeight(x)
			if err != nil {
				return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
			}
			omegaB, err := db.FluorescenceYield(x.SubShell())
			if err != nil {
				return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
			}
			muAB, err := db.MAC(sh.Element, eB)
			if err != nil {
				return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
			}
			muB, err := xray.MAC(db, mat, eB)
			if err != nil {
				return nil, fmt.Errorf("NewReed(%s): %w", sh, err)
			}
			uB := e0 / ecB
			pre := 0.5 * cB * (rA - 1) / rA * omegaB * wB / shellWeight[x.Inner] * aA / aB *
				muAB / muB * math.Pow((uB-1)/(uA-1), 1.67) * p
			r.exciters = append(r.exciters, exciter{line: x, pre: pre, muB: muB})
		}
	}

	return r, nil
}

// excitationFactor returns P for an exciting line with inner shell b
// ionizing shell a, or 0 when the pair is not modelled.
func excitationFactor(b, a xray.Shell) float64 {
	pb, pa := b.Principal(), a.Principal()
	switch {
	case pb == pa:
		return reedSameFamily
	case pb == 2 && pa == 1:
		return reedLExcitesK
	case pb == 1 && pa == 2:
		return reedKExcitesL
	}

	return 0
}

// Kind implements FluorescenceCorrection.
func (*Reed) Kind() Kind { return KindReed }

// SubShell implements FluorescenceCorrection.
func (r *Reed) SubShell() xray.SubShell { return r.sh }

// Exciters returns the lines that contribute fluorescence.
func (r *Reed) Exciters() []xray.CharXRay {
	out := make([]xray.CharXRay, len(r.exciters))
	for i, e := range r.exciters {
		out[i] = e.line
	}

	return out
}

// F implements FluorescenceCorrection.
//
// Errors:
//   - ErrLineMismatch when x is not a line of the model subshell.
//   - xray.ErrTakeOff and Database errors are forwarded.
func (r *Reed) F(x xray.CharXRay, takeOff float64) (float64, error) {
	if x.SubShell() != r.sh {
		return 0, fmt.Errorf("Reed.F(%s) on %s: %w", x, r.sh, ErrLineMismatch)
	}
	if len(r.exciters) == 0 {
		return 1, nil
	}
	eA, err := r.db.LineEnergy(x)
	if err != nil {
		return 0, fmt.Errorf("Reed.F: %w", err)
	}
	chiA, err := xray.Chi(r.db, r.mat, eA, takeOff)
	if err != nil {
		return 0, fmt.Errorf("Reed.F: %w", err)
	}
	f := 1.0
	for _, e := range r.exciters {
		u := chiA / e.muB
		v := r.sigma / e.muB
		f += e.pre * (log1pOver(u) + log1pOver(v))
	}

	return f, nil
}

// log1pOver returns ln(1+x)/x, 1 at x → 0.
func log1pOver(x float64) float64 {
	if math.Abs(x) < 1e-9 {
		return 1 - x/2
	}

	return math.Log1p(x) / x
}
