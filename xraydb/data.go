package xraydb

import "github.com/katalvlaran/epmaquant/xray"

type lineSpec struct {
	inner, outer xray.Shell
	energy       float64 // eV
	weight       float64
}

type elementSpec struct {
	z      xray.Element
	weight float64
	edges  map[xray.Shell]float64
	lines  []lineSpec
}

// Shorthand for the table below.
const (
	k  = xray.K
	l1 = xray.L1
	l2 = xray.L2
	l3 = xray.L3
	m1 = xray.M1
	m2 = xray.M2
	m3 = xray.M3
	m4 = xray.M4
	m5 = xray.M5
	n4 = xray.N4
	n5 = xray.N5
)

// kLines returns Kα1, Kα2 and (when kb1 > 0) Kβ1.
func kLines(ka1, ka2, kb1, kbw float64) []lineSpec {
	out := []lineSpec{{k, l3, ka1, 1}}
	if ka2 > 0 {
		out = append(out, lineSpec{k, l2, ka2, 0.5})
	}
	if kb1 > 0 {
		out = append(out, lineSpec{k, m3, kb1, kbw})
	}

	return out
}

// lLines returns Lα1 and Lβ1.
func lLines(la1, lb1, lbw float64) []lineSpec {
	return []lineSpec{{l3, m5, la1, 1}, {l2, m4, lb1, lbw}}
}

func join(parts ...[]lineSpec) []lineSpec {
	var out []lineSpec
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

var elements = []elementSpec{
	{z: 6, weight: 12.011, edges: map[xray.Shell]float64{k: 284.2}, lines: kLines(277, 0, 0, 0)},
	{z: 8, weight: 15.999, edges: map[xray.Shell]float64{k: 543.1}, lines: kLines(524.9, 0, 0, 0)},
	{z: 11, weight: 22.990, edges: map[xray.Shell]float64{k: 1070.8, l3: 30.5}, lines: kLines(1040.98, 0, 0, 0)},
	{z: 12, weight: 24.305, edges: map[xray.Shell]float64{k: 1303, l3: 49.5}, lines: kLines(1253.6, 0, 0, 0)},
	{z: 13, weight: 26.982, edges: map[xray.Shell]float64{k: 1559.6, l3: 72.55}, lines: kLines(1486.7, 0, 0, 0)},
	{
		z: 14, weight: 28.086,
		edges: map[xray.Shell]float64{k: 1839, l1: 149.7, l2: 99.8, l3: 99.42},
		lines: kLines(1739.98, 1739.38, 1835.94, 0.02),
	},
	{z: 17, weight: 35.453, edges: map[xray.Shell]float64{k: 2822.4, l3: 200}, lines: kLines(2622.39, 2620.78, 2815.6, 0.08)},
	{
		z: 20, weight: 40.078,
		edges: map[xray.Shell]float64{k: 4038.5, l1: 438.4, l2: 349.7, l3: 346.2},
		lines: join(kLines(3691.68, 3688.09, 4012.7, 0.13), lLines(341.3, 344.9, 0.6)),
	},
	{
		z: 22, weight: 47.867,
		edges: map[xray.Shell]float64{k: 4966.4, l1: 560.9, l2: 460.2, l3: 453.8},
		lines: join(kLines(4510.84, 4504.86, 4931.81, 0.14), lLines(452.2, 458.4, 0.6)),
	},
	{
		z: 26, weight: 55.845,
		edges: map[xray.Shell]float64{k: 7112, l1: 844.6, l2: 719.9, l3: 706.8},
		lines: join(kLines(6403.84, 6390.84, 7057.98, 0.17), lLines(705.0, 718.5, 0.5)),
	},
	{
		z: 28, weight: 58.693,
		edges: map[xray.Shell]float64{k: 8333, l1: 1008.6, l2: 870, l3: 852.7},
		lines: join(kLines(7478.15, 7460.89, 8264.66, 0.17), lLines(851.5, 868.8, 0.4)),
	},
	{
		z: 29, weight: 63.546,
		edges: map[xray.Shell]float64{k: 8979, l1: 1096.7, l2: 952.3, l3: 932.7},
		lines: join(kLines(8047.78, 8027.83, 8905.29, 0.17), lLines(929.7, 949.8, 0.35)),
	},
	{
		z: 30, weight: 65.38,
		edges: map[xray.Shell]float64{k: 9659, l1: 1196.2, l2: 1044.9, l3: 1021.8},
		lines: join(kLines(8638.86, 8615.78, 9572, 0.17), lLines(1011.7, 1034.7, 0.3)),
	},
	{
		z: 56, weight: 137.327,
		edges: map[xray.Shell]float64{
			k: 37441, l1: 5989, l2: 5624, l3: 5247,
			m1: 1293, m2: 1137, m3: 1063, m4: 795.7, m5: 780.5,
		},
		lines: join(
			kLines(32193.6, 31817.1, 36378.2, 0.2),
			[]lineSpec{
				{l3, m5, 4466.26, 1},
				{l3, m4, 4450.90, 0.11},
				{l2, m4, 4827.53, 0.6},
				{l3, n5, 5156.5, 0.2},
				{l2, n4, 5531.1, 0.1},
			},
		),
	},
}
