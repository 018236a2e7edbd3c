// Package xray defines the data model shared by every correction model and
// by the quantification solver: elements, atomic subshells, characteristic
// X-ray transitions, materials, measurement conditions and the narrow
// Database contract through which edge energies, line energies, fluorescence
// yields and mass-absorption coefficients are resolved.
//
// 🚀 What lives here?
//
//   - Element, Shell, SubShell (atomic subshell identity) and CharXRay
//     (an ionized inner shell plus the outer shell that fills it).
//   - Material: an immutable element → mass-fraction snapshot. Fractions
//     need not sum to 1.0; Normalized() is used only where a model's
//     semantics require it (weighted parameter averages).
//   - Conditions and Film: beam energy, take-off angle, optional coating.
//   - Family and FamilyTable: transition families (Kα, Lα, …) and an explicit
//     code → family lookup table for line resolution.
//   - Database: the collaborator contract. Implementations live outside the
//     core (see package xraydb for an approximate built-in table).
//
// ⚙️ Units:
//
//	energies     eV
//	angles       radians
//	mass depth   g/cm²
//	MAC, χ       cm²/g
//	film density g/cm³, film thickness nm
//
// Nothing in this package performs I/O and nothing holds mutable global state.
package xray
