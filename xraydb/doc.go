// Package xraydb is a compact, approximate implementation of xray.Database
// for a handful of elements (C, O, Na, Mg, Al, Si, Cl, Ca, Ti, Fe, Ni, Cu,
// Zn, Ba). It exists so the correction models and the solver can be
// exercised end to end without an external data service.
//
// Data sources:
//
//   - Edge and line energies: rounded literature values (eV).
//   - Line weights: typical relative intensities within a family.
//   - Fluorescence yields: Bambynek (K) and Hubbell-style (L, M) fits in Z.
//   - Jump ratios: Poehn-style fits in Z.
//   - MAC: a Kramers-type power law μ(E) = μK⁺(Z)·(E_K/E)^2.6 divided by the
//     product of the jump ratios of every edge above E. It reproduces
//     tabulated values to within tens of percent across 0.3–10 keV and is
//     NOT suitable for quantitative work.
//
// The table is immutable after New and safe for concurrent readers.
package xraydb
