package zaf

import (
	"fmt"

	"github.com/katalvlaran/epmaquant/coating"
	"github.com/katalvlaran/epmaquant/fluor"
	"github.com/katalvlaran/epmaquant/matrixcorr"
	"github.com/katalvlaran/epmaquant/xray"
)

// Models selects the model families a ZAFCorrection is built from.
// The coating model follows from Conditions.Coating.
type Models struct {
	Matrix       matrixcorr.Kind
	Fluorescence fluor.Kind
}

// DefaultModels returns XPP with Reed fluorescence.
func DefaultModels() Models {
	return Models{Matrix: matrixcorr.KindXPP, Fluorescence: fluor.KindReed}
}

// String returns e.g. "XPP+Reed".
func (m Models) String() string { return m.Matrix.String() + "+" + m.Fluorescence.String() }

// ZAFCorrection is the matched set of models for one material, subshell and
// set of measurement conditions.
type ZAFCorrection struct {
	Matrix       matrixcorr.MatrixCorrection
	Fluorescence fluor.FluorescenceCorrection
	Coating      coating.CoatingCorrection
	Conditions   xray.Conditions
}

// New builds the three models for mat and sh under cond.
//
// Errors:
//   - Conditions validation errors (xray.ErrBeamEnergy, xray.ErrTakeOff, xray.ErrBadFilm).
//   - Model construction errors are forwarded.
func New(models Models, mat xray.Material, sh xray.SubShell, cond xray.Conditions, db xray.Database) (*ZAFCorrection, error) {
	if err := cond.Validate(); err != nil {
		return nil, fmt.Errorf("zaf.New(%s, %s): %w", mat.Name(), sh, err)
	}
	mc, err := matrixcorr.New(models.Matrix, mat, sh, cond.BeamEnergy, db)
	if err != nil {
		return nil, fmt.Errorf("zaf.New(%s, %s): %w", mat.Name(), sh, err)
	}
	fc, err := fluor.New(models.Fluorescence, mat, sh, cond.BeamEnergy, db)
	if err != nil {
		return nil, fmt.Errorf("zaf.New(%s, %s): %w", mat.Name(), sh, err)
	}
	cc, err := coating.New(cond.Coating, db)
	if err != nil {
		return nil, fmt.Errorf("zaf.New(%s, %s): %w", mat.Name(), sh, err)
	}

	return &ZAFCorrection{Matrix: mc, Fluorescence: fc, Coating: cc, Conditions: cond}, nil
}

// SubShell returns the subshell the matrix model was built for.
func (c *ZAFCorrection) SubShell() xray.SubShell {
	sh, _ := c.Matrix.SubShell()
	return sh
}

// Material returns the composition the correction was built for.
func (c *ZAFCorrection) Material() xray.Material { return c.Matrix.Material() }

func checkPair(unk, std *ZAFCorrection) error {
	if unk == nil || std == nil {
		return ErrNilCorrection
	}
	su, okU := unk.Matrix.SubShell()
	ss, okS := std.Matrix.SubShell()
	if !okU || !okS {
		return matrixcorr.ErrModeMismatch
	}
	if su != ss {
		return fmt.Errorf("%s vs %s: %w", su, ss, ErrShellMismatch)
	}

	return nil
}

func checkLine(unk, std *ZAFCorrection, x xray.CharXRay) error {
	if err := checkPair(unk, std); err != nil {
		return err
	}
	if x.SubShell() != unk.SubShell() {
		return fmt.Errorf("%s on %s: %w", x, unk.SubShell(), ErrLineMismatch)
	}

	return nil
}

// Z returns the atomic-number correction F(unk)/F(std).
//
// Errors:
//   - ErrShellMismatch when the subshells differ.
func Z(unk, std *ZAFCorrection) (float64, error) {
	if err := checkPair(unk, std); err != nil {
		return 0, fmt.Errorf("zaf.Z: %w", err)
	}

	return unk.Matrix.F() / std.Matrix.F(), nil
}

// A returns the absorption correction [Fχ(unk, θu)/Fχ(std, θs)]/Z.
//
// Errors:
//   - ErrShellMismatch, ErrLineMismatch; model errors are forwarded.
func A(unk, std *ZAFCorrection, x xray.CharXRay, thetaUnk, thetaStd float64) (float64, error) {
	if err := checkLine(unk, std, x); err != nil {
		return 0, fmt.Errorf("zaf.A: %w", err)
	}
	fu, err := unk.Matrix.Fchi(x, thetaUnk)
	if err != nil {
		return 0, fmt.Errorf("zaf.A: unknown: %w", err)
	}
	fs, err := std.Matrix.Fchi(x, thetaStd)
	if err != nil {
		return 0, fmt.Errorf("zaf.A: standard: %w", err)
	}

	return (fu / unk.Matrix.F()) / (fs / std.Matrix.F()), nil
}

// Fluorescence returns the fluorescence correction F(unk)/F(std).
func Fluorescence(unk, std *ZAFCorrection, x xray.CharXRay, thetaUnk, thetaStd float64) (float64, error) {
	if err := checkLine(unk, std, x); err != nil {
		return 0, fmt.Errorf("zaf.Fluorescence: %w", err)
	}
	fu, err := unk.Fluorescence.F(x, thetaUnk)
	if err != nil {
		return 0, fmt.Errorf("zaf.Fluorescence: unknown: %w", err)
	}
	fs, err := std.Fluorescence.F(x, thetaStd)
	if err != nil {
		return 0, fmt.Errorf("zaf.Fluorescence: standard: %w", err)
	}

	return fu / fs, nil
}

// Coating returns the coating transmission ratio T(unk)/T(std).
func Coating(unk, std *ZAFCorrection, x xray.CharXRay, thetaUnk, thetaStd float64) (float64, error) {
	if err := checkLine(unk, std, x); err != nil {
		return 0, fmt.Errorf("zaf.Coating: %w", err)
	}
	tu, err := unk.Coating.Transmission(x, thetaUnk)
	if err != nil {
		return 0, fmt.Errorf("zaf.Coating: unknown: %w", err)
	}
	ts, err := std.Coating.Transmission(x, thetaStd)
	if err != nil {
		return 0, fmt.Errorf("zaf.Coating: standard: %w", err)
	}

	return tu / ts, nil
}

// Generation returns the ratio of ionization cross-sections Q(E0u)/Q(E0s);
// exactly 1 when both were measured at the same beam energy.
func Generation(unk, std *ZAFCorrection) (float64, error) {
	if err := checkPair(unk, std); err != nil {
		return 0, fmt.Errorf("zaf.Generation: %w", err)
	}
	if unk.Matrix.BeamEnergy() == std.Matrix.BeamEnergy() {
		return 1, nil
	}

	return ionization(unk) / ionization(std), nil
}

// ZAFc returns Z·A·F·coating.
func ZAFc(unk, std *ZAFCorrection, x xray.CharXRay, thetaUnk, thetaStd float64) (float64, error) {
	f, err := factors(unk, std, x, thetaUnk, thetaStd)
	if err != nil {
		return 0, err
	}

	return f.ZAFc, nil
}

// K returns the calculated k-ratio Generation·ZAFc·cUnk/cStd.
func K(unk, std *ZAFCorrection, x xray.CharXRay, thetaUnk, thetaStd, cUnk, cStd float64) (float64, error) {
	f, err := factors(unk, std, x, thetaUnk, thetaStd)
	if err != nil {
		return 0, err
	}

	return f.Generation * f.ZAFc * cUnk / cStd, nil
}

// Factors is the per-line breakdown of a calculated k-ratio.
type Factors struct {
	Line       xray.CharXRay
	Weight     float64 // relative line intensity
	Z          float64
	A          float64
	F          float64
	Coating    float64
	Generation float64
	ZAFc       float64
	K          float64 // Generation·ZAFc·c_unk/c_std
}

func factors(unk, std *ZAFCorrection, x xray.CharXRay, thetaUnk, thetaStd float64) (Factors, error) {
	z, err := Z(unk, std)
	if err != nil {
		return Factors{}, err
	}
	a, err := A(unk, std, x, thetaUnk, thetaStd)
	if err != nil {
		return Factors{}, err
	}
	f, err := Fluorescence(unk, std, x, thetaUnk, thetaStd)
	if err != nil {
		return Factors{}, err
	}
	c, err := Coating(unk, std, x, thetaUnk, thetaStd)
	if err != nil {
		return Factors{}, err
	}
	g, err := Generation(unk, std)
	if err != nil {
		return Factors{}, err
	}

	return Factors{Line: x, Z: z, A: a, F: f, Coating: c, Generation: g, ZAFc: z * a * f * c}, nil
}

// ionization returns Q(E0) of the correction subshell, 1 when the edge is unknown.
func ionization(c *ZAFCorrection) float64 {
	ec := c.Matrix.EdgeEnergy()
	if ec <= 0 {
		return 1
	}

	return matrixcorr.Ionization(c.SubShell(), c.Matrix.BeamEnergy(), ec)
}
