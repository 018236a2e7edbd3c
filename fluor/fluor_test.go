package fluor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epmaquant/fluor"
	"github.com/katalvlaran/epmaquant/xray"
	"github.com/katalvlaran/epmaquant/xraydb"
)

var (
	si    = xray.MustElement("Si")
	zn    = xray.MustElement("Zn")
	o     = xray.MustElement("O")
	siK   = xray.SubShell{Element: si, Shell: xray.K}
	znK   = xray.SubShell{Element: zn, Shell: xray.K}
	siKa1 = xray.Line(si, xray.K, xray.L3)
	znKa1 = xray.Line(zn, xray.K, xray.L3)
	theta = xray.Degrees(40)
)

func mix(t *testing.T, cZn float64) xray.Material {
	t.Helper()
	m, err := xray.NewMaterial("Si-Zn", map[xray.Element]float64{si: 1 - cZn, zn: cZn})
	require.NoError(t, err)
	return m
}

func TestNull(t *testing.T) {
	n := fluor.NewNull(siK)
	assert.Equal(t, fluor.KindNull, n.Kind())
	assert.Equal(t, siK, n.SubShell())
	f, err := n.F(siKa1, theta)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

func TestReedEnhancement(t *testing.T) {
	db := xraydb.New()
	mat, err := xray.ParseFormula(db, "Zn2SiO4")
	require.NoError(t, err)

	r, err := fluor.NewReed(mat, siK, 15e3, db)
	require.NoError(t, err)
	ex := r.Exciters()
	require.NotEmpty(t, ex)
	for _, x := range ex {
		assert.Equal(t, zn, x.Element, x.String())
		assert.Equal(t, xray.K, x.Inner)
	}
	f, err := r.F(siKa1, theta)
	require.NoError(t, err)
	assert.Greater(t, f, 1.0)
	assert.Less(t, f, 1.2)

	// nothing in the matrix reaches the Zn K edge
	rz, err := fluor.NewReed(mat, znK, 15e3, db)
	require.NoError(t, err)
	assert.Empty(t, rz.Exciters())
	f, err = rz.F(znKa1, theta)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

func TestReedScalesWithExciter(t *testing.T) {
	db := xraydb.New()
	lo, err := fluor.NewReed(mix(t, 0.1), siK, 15e3, db)
	require.NoError(t, err)
	hi, err := fluor.NewReed(mix(t, 0.5), siK, 15e3, db)
	require.NoError(t, err)
	fLo, err := lo.F(siKa1, theta)
	require.NoError(t, err)
	fHi, err := hi.F(siKa1, theta)
	require.NoError(t, err)
	assert.Greater(t, fHi, fLo)

	// the exciting line needs its own edge below E0
	below, err := fluor.NewReed(mix(t, 0.5), siK, 9e3, db)
	require.NoError(t, err)
	assert.Empty(t, below.Exciters())
}

func TestReedPure(t *testing.T) {
	db := xraydb.New()
	p, err := xray.Pure(si)
	require.NoError(t, err)
	r, err := fluor.NewReed(p, siK, 15e3, db)
	require.NoError(t, err)
	f, err := r.F(siKa1, theta)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

func TestReedErrors(t *testing.T) {
	db := xraydb.New()
	mat := mix(t, 0.3)

	_, err := fluor.NewReed(mat, znK, 9e3, db)
	assert.ErrorIs(t, err, xray.ErrOvervoltage)

	r, err := fluor.NewReed(mat, siK, 15e3, db)
	require.NoError(t, err)
	_, err = r.F(xray.Line(o, xray.K, xray.L3), theta)
	assert.ErrorIs(t, err, fluor.ErrLineMismatch)
	_, err = r.F(siKa1, 0)
	assert.ErrorIs(t, err, xray.ErrTakeOff)
}

func TestKind(t *testing.T) {
	for _, k := range []fluor.Kind{fluor.KindNull, fluor.KindReed} {
		got, err := fluor.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := fluor.ParseKind("armstrong")
	assert.ErrorIs(t, err, fluor.ErrUnknownKind)

	db := xraydb.New()
	_, err = fluor.New(fluor.Kind(9), mix(t, 0.1), siK, 15e3, db)
	assert.ErrorIs(t, err, fluor.ErrUnknownKind)
	c, err := fluor.New(fluor.KindReed, mix(t, 0.1), siK, 15e3, db)
	require.NoError(t, err)
	assert.Equal(t, fluor.KindReed, c.Kind())
}
