// Package epmaquant is a matrix-correction and quantification toolkit for
// electron-probe microanalysis: it turns measured k-ratios into mass
// fractions under a choice of physical models.
//
// 🚀 What is in epmaquant?
//
//	A small set of packages with narrow, testable contracts:
//		• Data model: elements, subshells, lines, materials, conditions
//		• Matrix corrections: Null, XPP, CitZAF, Riveros 1993 (ϕ(ρz) models)
//		• Fluorescence: Null, Reed characteristic fluorescence
//		• Coating: Null, single-layer transmission
//		• ZAF: Z/A/F/coating factors, multi-line k-ratios, per-line summaries
//		• Solver: optimizer, naive and Wegstein updates, batch runs
//
// ✨ Why this layout?
//
//   - Every model is immutable and rebuilt per composition snapshot
//   - The element/line/MAC database is an interface; xraydb ships a compact
//     approximate table for tests and demos
//   - Non-convergence is a reported status with a full iteration history
//   - Logging is injected (zap behind logging.Logger); configuration loads
//     through viper
//
// Packages:
//
//	xray/        Element, Shell, SubShell, CharXRay, Material, Conditions, Database
//	xraydb/      built-in approximate Database
//	matrixcorr/  MatrixCorrection and its models
//	fluor/       FluorescenceCorrection (Null, Reed)
//	coating/     CoatingCorrection (Null, Layer)
//	zaf/         ZAFCorrection, MultiZAF, factor summaries
//	quant/       KRatio, optimizers, update rules, Quantifier
//	config/      YAML / EPMAQ_* environment configuration
//	logging/     structured Logger interface
//
// Quick example:
//
//	db := xraydb.New()
//	q, _ := quant.New(db)
//	res, err := q.Quantify("sample", krs)
//
//	go get github.com/katalvlaran/epmaquant
package epmaquant
