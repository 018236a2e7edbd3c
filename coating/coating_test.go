package coating_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epmaquant/coating"
	"github.com/katalvlaran/epmaquant/xray"
	"github.com/katalvlaran/epmaquant/xraydb"
)

var (
	siKa1 = xray.Line(xray.MustElement("Si"), xray.K, xray.L3)
	oKa1  = xray.Line(xray.MustElement("O"), xray.K, xray.L3)
	theta = xray.Degrees(40)
)

func TestNull(t *testing.T) {
	c, err := coating.New(nil, xraydb.New())
	require.NoError(t, err)
	assert.Nil(t, c.Film())
	tr, err := c.Transmission(siKa1, theta)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tr)
	tr, err = c.TransmissionEnergy(500, theta)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tr)
}

func TestLayer(t *testing.T) {
	db := xraydb.New()
	film := xray.CarbonCoating(20)
	c, err := coating.New(film, db)
	require.NoError(t, err)
	require.NotNil(t, c.Film())
	assert.Equal(t, *film, *c.Film())

	tr, err := c.Transmission(siKa1, theta)
	require.NoError(t, err)
	e, err := db.LineEnergy(siKa1)
	require.NoError(t, err)
	mu, err := db.MAC(xray.MustElement("C"), e)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-mu/math.Sin(theta)*film.MassThickness()), tr, 1e-12)
	assert.Greater(t, tr, 0.0)
	assert.Less(t, tr, 1.0)

	// soft lines suffer more
	to, err := c.Transmission(oKa1, theta)
	require.NoError(t, err)
	assert.Less(t, to, tr)

	// so do grazing take-offs and thicker films
	low, err := c.Transmission(siKa1, xray.Degrees(15))
	require.NoError(t, err)
	assert.Less(t, low, tr)
	thick, err := coating.NewLayer(*xray.CarbonCoating(40), db)
	require.NoError(t, err)
	tt, err := thick.Transmission(siKa1, theta)
	require.NoError(t, err)
	assert.InDelta(t, tr*tr, tt, 1e-12)

	bare, err := coating.NewLayer(*xray.CarbonCoating(0), db)
	require.NoError(t, err)
	t0, err := bare.Transmission(siKa1, theta)
	require.NoError(t, err)
	assert.Equal(t, 1.0, t0)
}

func TestLayerErrors(t *testing.T) {
	db := xraydb.New()
	bad := *xray.CarbonCoating(10)
	bad.Density = 0
	_, err := coating.NewLayer(bad, db)
	assert.ErrorIs(t, err, xray.ErrBadFilm)
	_, err = coating.New(&xray.Film{Density: 1, Thickness: 1}, db)
	assert.ErrorIs(t, err, xray.ErrEmptyMaterial)

	c, err := coating.NewLayer(*xray.CarbonCoating(10), db)
	require.NoError(t, err)
	_, err = c.Transmission(siKa1, 2)
	assert.ErrorIs(t, err, xray.ErrTakeOff)
	_, err = c.Transmission(xray.Line(xray.MustElement("U"), xray.K, xray.L3), theta)
	assert.ErrorIs(t, err, xray.ErrUnknownElement)
}
