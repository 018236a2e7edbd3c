// Package matrixcorr provides the depth-distribution (ϕ(ρz)) matrix-correction
// models used to relate generated and emitted characteristic X-ray intensity.
//
// 🚀 What is here
//
//   - MatrixCorrection: one interface for every model, exposing
//     F (∫ϕ dρz), Fchi (∫ϕ·e^(−χρz) dρz) and Phi (ϕ at a mass depth).
//   - Null: Castaing's first approximation; every factor is 1, Phi fails.
//   - XPP: Pouchou & Pichoir's simplified PAP with closed-form integrals.
//   - CitZAF: Bethe/Love–Scott atomic-number factor with the Philibert–Heinrich
//     absorption function.
//   - Riveros: the Riveros (1993) Gaussian ϕ(ρz), evaluated through erfcx,
//     with a continuum mode and the partial integral Fchip.
//   - NumericFchi: Gauss–Legendre cross-check of any closed form.
//
// ✨ Contracts
//
//   - Models are immutable after construction and cheap to build; callers
//     rebuild them whenever the composition changes.
//   - Construction fails with ErrOvervoltage when E0 ≤ Ec (Null excepted) and
//     with ErrDegenerate when a parameter is not finite or not physical.
//     Parameters are never clamped to force a result.
//   - Fchi ≤ F for every take-off angle in (0, π/2].
//
// ⚙️ Units
//
//	energy    eV at the API, keV inside the model formulas
//	angle     radians
//	ρz        g/cm²
//	χ, μ      cm²/g
//
// Quick start:
//
//	db := xraydb.New()
//	sio2, _ := xray.ParseFormula(db, "SiO2")
//	si := xray.MustElement("Si")
//	m, err := matrixcorr.New(matrixcorr.KindXPP, sio2, xray.SubShell{Element: si, Shell: xray.K}, 15e3, db)
//	if err != nil { … }
//	fchi, _ := m.Fchi(xray.Line(si, xray.K, xray.L3), xray.Degrees(40))
//	absorption := fchi / m.F()
package matrixcorr
