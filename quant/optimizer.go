package quant

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/epmaquant/xray"
)

// Optimizer reduces a k-ratio set to exactly one effective k-ratio per
// element. Output order is ascending atomic number.
type Optimizer interface {
	Optimize(db xray.Database, krs []KRatio) ([]KRatio, error)
}

// Simple optimizer defaults.
const (
	DefaultMinOvervoltage  = 1.5
	DefaultMinSignificance = 0.0
)

// SimpleOptimizer keeps one k-ratio per element.
//
// Policy:
//   - Candidates with U0 < MinOvervoltage or k/σ < MinSignificance are
//     dropped, unless every candidate of the element fails, in which case
//     all of them stay in the running.
//   - Among the rest the highest significance wins (σ ≤ 0 counts as +Inf);
//     ties go to the higher overvoltage, then the higher value, then the
//     lower line energy, then input order.
type SimpleOptimizer struct {
	MinOvervoltage  float64
	MinSignificance float64
}

// DefaultSimpleOptimizer returns the documented thresholds.
func DefaultSimpleOptimizer() SimpleOptimizer {
	return SimpleOptimizer{MinOvervoltage: DefaultMinOvervoltage, MinSignificance: DefaultMinSignificance}
}

type candidate struct {
	kr     KRatio
	u0     float64
	sig    float64
	energy float64
}

func (a candidate) better(b candidate) bool {
	switch {
	case a.sig != b.sig:
		return a.sig > b.sig
	case a.u0 != b.u0:
		return a.u0 > b.u0
	case a.kr.Value != b.kr.Value:
		return a.kr.Value > b.kr.Value
	default:
		return a.energy < b.energy
	}
}

// Optimize implements Optimizer.
//
// Errors:
//   - ErrNoKRatios on an empty set; database lookup errors are forwarded.
func (o SimpleOptimizer) Optimize(db xray.Database, krs []KRatio) ([]KRatio, error) {
	if len(krs) == 0 {
		return nil, ErrNoKRatios
	}
	groups := groupByElement(krs)
	out := make([]KRatio, 0, len(groups))
	for _, g := range groups {
		cands := make([]candidate, 0, len(g))
		for _, kr := range g {
			u0, err := kr.Overvoltage(db)
			if err != nil {
				return nil, fmt.Errorf("optimize %s: %w", kr.Element, err)
			}
			e, err := kr.LineEnergy(db)
			if err != nil {
				return nil, fmt.Errorf("optimize %s: %w", kr.Element, err)
			}
			cands = append(cands, candidate{kr: kr, u0: u0, sig: kr.Significance(), energy: e})
		}
		pool := make([]candidate, 0, len(cands))
		for _, c := range cands {
			if c.u0 >= o.MinOvervoltage && c.sig >= o.MinSignificance {
				pool = append(pool, c)
			}
		}
		if len(pool) == 0 {
			pool = cands
		}
		best := pool[0]
		for _, c := range pool[1:] {
			if c.better(best) {
				best = c
			}
		}
		out = append(out, best.kr)
	}

	return out, nil
}

// CombiningOptimizer first merges repeated measurements (same lines,
// conditions and standard) into their inverse-variance weighted mean, then
// hands the result to Next. When any σ of a group is ≤ 0 the plain mean is
// used and the merged σ is 0.
type CombiningOptimizer struct {
	Next Optimizer // nil ⇒ DefaultSimpleOptimizer
}

// Optimize implements Optimizer.
func (o CombiningOptimizer) Optimize(db xray.Database, krs []KRatio) ([]KRatio, error) {
	if len(krs) == 0 {
		return nil, ErrNoKRatios
	}
	next := o.Next
	if next == nil {
		next = DefaultSimpleOptimizer()
	}

	return next.Optimize(db, Combine(krs))
}

// Combine merges repeated measurements. Input order of first occurrences is
// kept.
func Combine(krs []KRatio) []KRatio {
	used := make([]bool, len(krs))
	out := make([]KRatio, 0, len(krs))
	for i := range krs {
		if used[i] {
			continue
		}
		group := []KRatio{krs[i]}
		for j := i + 1; j < len(krs); j++ {
			if !used[j] && sameMeasurement(krs[i], krs[j]) {
				group = append(group, krs[j])
				used[j] = true
			}
		}
		out = append(out, merge(group))
	}

	return out
}

func merge(group []KRatio) KRatio {
	if len(group) == 1 {
		return group[0]
	}
	vals := make([]float64, len(group))
	ws := make([]float64, len(group))
	weighted := true
	for i, kr := range group {
		vals[i] = kr.Value
		if kr.Sigma <= 0 {
			weighted = false
			continue
		}
		ws[i] = 1 / (kr.Sigma * kr.Sigma)
	}
	res := group[0]
	if !weighted {
		res.Value = stat.Mean(vals, nil)
		res.Sigma = 0
		return res
	}
	sw := 0.0
	for _, w := range ws {
		sw += w
	}
	res.Value = stat.Mean(vals, ws)
	res.Sigma = math.Sqrt(1 / sw)

	return res
}

// groupByElement groups k-ratios by element in ascending atomic number,
// preserving input order within a group.
func groupByElement(krs []KRatio) [][]KRatio {
	idx := make(map[xray.Element]int)
	var groups [][]KRatio
	var els []xray.Element
	for _, kr := range krs {
		i, ok := idx[kr.Element]
		if !ok {
			i = len(groups)
			idx[kr.Element] = i
			groups = append(groups, nil)
			els = append(els, kr.Element)
		}
		groups[i] = append(groups[i], kr)
	}
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return els[order[a]] < els[order[b]] })
	out := make([][]KRatio, len(groups))
	for i, j := range order {
		out[i] = groups[j]
	}

	return out
}
