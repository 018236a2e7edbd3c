// Package zaf combines matrix, fluorescence and coating models into the
// atomic-number (Z), absorption (A), fluorescence (F) and coating factors
// that relate a measured k-ratio to composition.
//
// 🚀 Layers
//
//   - ZAFCorrection bundles one model of each family for a single
//     (material, subshell, conditions). Unknown and standard are built
//     separately and paired per line.
//   - Z, A, Fluorescence, Coating, Generation, ZAFc and K evaluate the
//     factors for one matched pair.
//   - MultiZAF covers a set of lines of one element that may span several
//     subshells (e.g. Lβ = L2-M4 + L3-N5) and builds one ZAFCorrection per
//     distinct subshell. Its K weights each line by its relative intensity.
//
// ✨ Identities
//
//	ZAFc = Z · A · F · coating
//	k    = Generation · ZAFc · c_unk / c_std
//	ZAFc = 1 when unknown and standard share material and conditions.
//
// ⚙️ Errors
//
//   - ErrShellMismatch when the pair was built for different subshells.
//   - ErrLineMismatch when a line does not originate from the pair's subshell.
//   - Model construction errors (xray.ErrOvervoltage, matrixcorr.ErrDegenerate, …)
//     are forwarded unchanged.
package zaf
