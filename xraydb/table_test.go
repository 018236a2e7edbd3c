package xraydb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epmaquant/xray"
	"github.com/katalvlaran/epmaquant/xraydb"
)

var (
	o  = xray.MustElement("O")
	si = xray.MustElement("Si")
	zn = xray.MustElement("Zn")
	ba = xray.MustElement("Ba")
)

func TestTable_UnknownElement(t *testing.T) {
	db := xraydb.New()
	u := xray.MustElement("U")

	_, err := db.AtomicWeight(u)
	require.ErrorIs(t, err, xray.ErrUnknownElement)
	_, err = db.MAC(u, 1000)
	require.ErrorIs(t, err, xray.ErrUnknownElement)
	assert.Nil(t, db.Lines(u))
}

func TestTable_EdgesAndLines(t *testing.T) {
	db := xraydb.New()

	ek, err := db.EdgeEnergy(xray.SubShell{Element: si, Shell: xray.K})
	require.NoError(t, err)
	assert.InDelta(t, 1839.0, ek, 1e-9)

	_, err = db.EdgeEnergy(xray.SubShell{Element: o, Shell: xray.L3})
	require.ErrorIs(t, err, xray.ErrUnknownEdge)

	e, err := db.LineEnergy(xray.Line(ba, xray.L3, xray.M5))
	require.NoError(t, err)
	assert.InDelta(t, 4466.26, e, 1e-9)

	_, err = db.LineWeight(xray.Line(o, xray.K, xray.M3))
	require.ErrorIs(t, err, xray.ErrUnknownLine)

	// Every line lies below its own edge.
	for _, el := range db.Elements() {
		for _, x := range db.Lines(el) {
			le, err := db.LineEnergy(x)
			require.NoError(t, err)
			ec, err := db.EdgeEnergy(x.SubShell())
			require.NoError(t, err, x.String())
			assert.Less(t, le, ec, x.String())
		}
	}
}

func TestTable_LinesOrdered(t *testing.T) {
	lines := xraydb.New().Lines(zn)
	require.NotEmpty(t, lines)
	for i := 1; i < len(lines); i++ {
		prev, cur := lines[i-1], lines[i]
		ok := prev.Inner < cur.Inner || (prev.Inner == cur.Inner && prev.Outer < cur.Outer)
		assert.True(t, ok, "%s before %s", prev, cur)
	}
}

func TestTable_FluorescenceYield(t *testing.T) {
	db := xraydb.New()
	wSi, err := db.FluorescenceYield(xray.SubShell{Element: si, Shell: xray.K})
	require.NoError(t, err)
	wZn, err := db.FluorescenceYield(xray.SubShell{Element: zn, Shell: xray.K})
	require.NoError(t, err)

	assert.Greater(t, wZn, wSi, "ω_K grows with Z")
	assert.InDelta(t, 0.05, wSi, 0.02)
	assert.InDelta(t, 0.47, wZn, 0.05)
}

func TestTable_MAC(t *testing.T) {
	db := xraydb.New()

	// Monotone decreasing away from edges.
	lo, err := db.MAC(si, 3000)
	require.NoError(t, err)
	hi, err := db.MAC(si, 6000)
	require.NoError(t, err)
	assert.Greater(t, lo, hi)

	// The K edge is a jump upward.
	below, err := db.MAC(si, 1838)
	require.NoError(t, err)
	above, err := db.MAC(si, 1840)
	require.NoError(t, err)
	assert.Greater(t, above/below, 5.0)

	_, err = db.MAC(si, 0)
	require.ErrorIs(t, err, xray.ErrBeamEnergy)
}

func TestTable_ParseFormula(t *testing.T) {
	db := xraydb.New()
	m, err := xray.ParseFormula(db, "SiO2")
	require.NoError(t, err)
	assert.InDelta(t, 0.4674, m.MassFraction(si), 1e-3)
	assert.InDelta(t, 0.5326, m.MassFraction(o), 1e-3)
	assert.InDelta(t, 1.0, m.Total(), 1e-12)
}
