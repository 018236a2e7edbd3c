package xray_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epmaquant/xray"
	"github.com/katalvlaran/epmaquant/xraydb"
)

func TestNewMaterial_Validation(t *testing.T) {
	_, err := xray.NewMaterial("empty", nil)
	require.ErrorIs(t, err, xray.ErrEmptyMaterial)

	_, err = xray.NewMaterial("neg", map[xray.Element]float64{8: -0.1})
	require.ErrorIs(t, err, xray.ErrBadFraction)

	_, err = xray.NewMaterial("nan", map[xray.Element]float64{8: math.NaN()})
	require.ErrorIs(t, err, xray.ErrBadFraction)

	_, err = xray.NewMaterial("z0", map[xray.Element]float64{0: 1})
	require.ErrorIs(t, err, xray.ErrUnknownElement)
}

func TestMaterial_OrderAndCopies(t *testing.T) {
	m, err := xray.NewMaterial("m", map[xray.Element]float64{30: 0.3, 8: 0.2, 14: 0.1})
	require.NoError(t, err)

	assert.Equal(t, []xray.Element{8, 14, 30}, m.Elements())
	assert.InDelta(t, 0.6, m.Total(), 1e-12)

	f := m.Fractions()
	f[8] = 99
	assert.InDelta(t, 0.2, m.MassFraction(8), 0, "Fractions returns a copy")

	n, err := m.Normalized()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Total(), 1e-12)
	assert.InDelta(t, 0.5, n.MassFraction(30), 1e-12)

	els, w, err := m.Weights()
	require.NoError(t, err)
	assert.Equal(t, m.Elements(), els)
	assert.InDelta(t, 1.0/3, w[0], 1e-12)
}

func TestMaterial_ZeroFractionKept(t *testing.T) {
	m, err := xray.NewMaterial("m", map[xray.Element]float64{8: 0, 14: 0})
	require.NoError(t, err)
	assert.True(t, m.Has(8))
	_, err = m.Normalized()
	require.ErrorIs(t, err, xray.ErrZeroTotal)
	_, err = m.Mean(xray.Element.Z)
	require.ErrorIs(t, err, xray.ErrZeroTotal)
}

func TestMaterial_MeanAndWith(t *testing.T) {
	m, err := xray.NewMaterial("m", map[xray.Element]float64{8: 0.2, 14: 0.6})
	require.NoError(t, err)
	z, err := m.Mean(xray.Element.Z)
	require.NoError(t, err)
	assert.InDelta(t, 0.25*8+0.75*14, z, 1e-12)

	w, err := m.With(30, 0.2)
	require.NoError(t, err)
	assert.False(t, m.Has(30), "With copies")
	assert.InDelta(t, 1.0, w.Total(), 1e-12)
	assert.Contains(t, w.String(), "Zn=0.2000")
}

func TestParseFormula_Errors(t *testing.T) {
	db := xraydb.New()
	for _, f := range []string{"", "sio2", "Si0", "Xx2"} {
		_, err := xray.ParseFormula(db, f)
		require.Error(t, err, f)
	}
	_, err := xray.ParseFormula(db, "UO2")
	require.ErrorIs(t, err, xray.ErrUnknownElement)
}

func TestFamilies(t *testing.T) {
	db := xraydb.New()
	ba := xray.MustElement("Ba")

	la, err := xray.Characteristic(db, ba, xray.LAlpha)
	require.NoError(t, err)
	require.Len(t, la, 2)
	assert.Equal(t, "Lα1", la[0].Siegbahn(), "brightest first")

	best, err := xray.Brightest(db, la)
	require.NoError(t, err)
	assert.Equal(t, la[0], best)

	_, err = xray.Characteristic(db, xray.MustElement("O"), xray.LAlpha)
	require.ErrorIs(t, err, xray.ErrNoLines)

	fam, err := xray.DefaultFamilyTable().Resolve(3)
	require.NoError(t, err)
	assert.Equal(t, xray.LAlpha, fam)
	_, err = xray.DefaultFamilyTable().Resolve(42)
	require.ErrorIs(t, err, xray.ErrUnknownFamily)

	f, err := xray.ParseFamily("Kα")
	require.NoError(t, err)
	assert.Equal(t, xray.KAlpha, f)
}

func TestConditions_Validate(t *testing.T) {
	ok := xray.Conditions{BeamEnergy: 15e3, TakeOff: xray.Degrees(40), Coating: xray.CarbonCoating(10)}
	require.NoError(t, ok.Validate())
	assert.InDelta(t, 1.9e-6, ok.Coating.MassThickness(), 1e-15)

	bad := ok
	bad.BeamEnergy = 0
	require.ErrorIs(t, bad.Validate(), xray.ErrBeamEnergy)

	bad = ok
	bad.TakeOff = xray.Degrees(95)
	require.ErrorIs(t, bad.Validate(), xray.ErrTakeOff)

	bad = ok
	bad.Coating = xray.CarbonCoating(-1)
	require.ErrorIs(t, bad.Validate(), xray.ErrBadFilm)

	require.NoError(t, xray.ValidateTakeOff(xray.Degrees(90)))
}
