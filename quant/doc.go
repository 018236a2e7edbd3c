// Package quant turns measured k-ratios into a composition.
//
// 🚀 Pipeline
//
//  1. Validate every KRatio (lines of one element, finite value, valid
//     conditions, element present in the standard).
//  2. Optimize: reduce the set to one effective k-ratio per element
//     (SimpleOptimizer, or CombiningOptimizer to merge repeats first).
//  3. Seed c_i = max(k_i, 0)·c_std,i and iterate:
//     k_calc at the current composition → r_i = k_i/k_calc,i → update rule.
//  4. Stop when max|r_i − 1| < Tolerance for Consecutive steps or when no
//     fraction moves by more than DeltaTolerance.
//
// ✨ Update rules
//
//   - NaiveRule: c' = c·r.
//   - Wegstein: secant-accelerated fixed point with q clamped to
//     [QMin, QMax]; the default.
//
// Unmeasured elements (ByDifference, FixedFraction) are re-applied after
// every update. Elements with k ≤ 0 are held at zero.
//
// ⚙️ Outcomes
//
//   - Converged and not-converged runs both return a *Result with the full
//     iteration history; Result.Err maps the latter to ErrNotConverged.
//   - Construction, mismatch and calculator failures abort the run and are
//     returned with the label and iteration number.
//   - QuantifyBatch runs requests in parallel and keeps per-request errors
//     in the Outcome, so a sweep can be tallied instead of aborted.
//
// Quick start:
//
//	db := xraydb.New()
//	q, _ := quant.New(db, quant.WithLogger(log))
//	res, err := q.Quantify("sample-1", krs)
//	if err != nil { … }
//	if !res.Converged() { … }
//	fmt.Println(res.Composition)
package quant
