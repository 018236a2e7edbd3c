package xray

import (
	"fmt"
	"sort"
	"strings"
)

// Family names a group of transitions that a measurement resolves as one
// peak or one set of peaks (e.g. Kα = Kα1 + Kα2).
type Family int

// Supported transition families.
const (
	KAlpha Family = iota
	KBeta
	KAll
	LAlpha
	LBeta
	LAll
	MAlpha
	MAll
)

type familySpec struct {
	name  string
	match func(inner, outer Shell) bool
}

var families = [...]familySpec{
	KAlpha: {"Kα", func(i, o Shell) bool { return i == K && (o == L2 || o == L3) }},
	KBeta:  {"Kβ", func(i, o Shell) bool { return i == K && o >= M1 }},
	KAll:   {"K", func(i, _ Shell) bool { return i == K }},
	LAlpha: {"Lα", func(i, o Shell) bool { return i == L3 && (o == M4 || o == M5) }},
	LBeta:  {"Lβ", func(i, o Shell) bool { return (i == L2 && o == M4) || (i == L3 && o == N5) || (i == L1 && o == M3) }},
	LAll:   {"L", func(i, _ Shell) bool { return i >= L1 && i <= L3 }},
	MAlpha: {"Mα", func(i, o Shell) bool { return i == M5 && (o == N6 || o == N7) }},
	MAll:   {"M", func(i, _ Shell) bool { return i >= M1 && i <= M5 }},
}

// String returns the family name ("Kα", "L", …).
func (f Family) String() string {
	if f < KAlpha || f > MAll {
		return fmt.Sprintf("Family(%d)", int(f))
	}

	return families[f].name
}

// Contains reports whether x belongs to the family.
func (f Family) Contains(x CharXRay) bool {
	if f < KAlpha || f > MAll {
		return false
	}

	return families[f].match(x.Inner, x.Outer)
}

// ParseFamily resolves "Ka", "Kα", "K", "La", "Lb", "L", "Ma", "M"
// (case-insensitive for the Latin spelling).
func ParseFamily(name string) (Family, error) {
	n := strings.TrimSpace(name)
	n = strings.NewReplacer("α", "a", "β", "b").Replace(n)
	switch strings.ToLower(n) {
	case "ka":
		return KAlpha, nil
	case "kb":
		return KBeta, nil
	case "k":
		return KAll, nil
	case "la":
		return LAlpha, nil
	case "lb":
		return LBeta, nil
	case "l":
		return LAll, nil
	case "ma":
		return MAlpha, nil
	case "m":
		return MAll, nil
	}

	return 0, fmt.Errorf("ParseFamily(%q): %w", name, ErrUnknownFamily)
}

// FamilyTable maps numeric transition codes (as used by acquisition
// software and driver scripts) to families. It is plain data owned by the
// caller; nothing in the core keeps a global copy.
type FamilyTable map[int]Family

// DefaultFamilyTable returns a fresh table with the conventional codes
// 1=Kα, 2=Kβ, 3=Lα, 4=Lβ, 5=Mα, 6=K, 7=L, 8=M.
func DefaultFamilyTable() FamilyTable {
	return FamilyTable{
		1: KAlpha,
		2: KBeta,
		3: LAlpha,
		4: LBeta,
		5: MAlpha,
		6: KAll,
		7: LAll,
		8: MAll,
	}
}

// Resolve returns the family registered under code.
func (t FamilyTable) Resolve(code int) (Family, error) {
	f, ok := t[code]
	if !ok {
		return 0, fmt.Errorf("FamilyTable.Resolve(%d): %w", code, ErrUnknownFamily)
	}

	return f, nil
}

// Characteristic returns every line of el known to db that belongs to fam,
// ordered by descending weight (brightest first).
//
// Errors:
//   - ErrNoLines when db knows no line of el in fam.
func Characteristic(db Database, el Element, fam Family) ([]CharXRay, error) {
	var out []CharXRay
	for _, x := range db.Lines(el) {
		if fam.Contains(x) {
			out = append(out, x)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("Characteristic(%s, %s): %w", el, fam, ErrNoLines)
	}
	sortByWeight(db, out)

	return out, nil
}

// Brightest returns the line with the largest weight in lines.
//
// Errors:
//   - ErrNoLines on an empty slice; lookup errors from db are forwarded.
func Brightest(db Database, lines []CharXRay) (CharXRay, error) {
	if len(lines) == 0 {
		return CharXRay{}, ErrNoLines
	}
	var (
		best  CharXRay
		bestW = -1.0
	)
	for _, x := range lines {
		w, err := db.LineWeight(x)
		if err != nil {
			return CharXRay{}, err
		}
		if w > bestW {
			best, bestW = x, w
		}
	}

	return best, nil
}

// sortByWeight orders lines by descending weight; unknown weights sort last.
// Ties fall back to IUPAC name order so the result is deterministic.
func sortByWeight(db Database, lines []CharXRay) {
	weight := func(x CharXRay) float64 {
		w, err := db.LineWeight(x)
		if err != nil {
			return -1
		}
		return w
	}
	sort.SliceStable(lines, func(i, j int) bool {
		wi, wj := weight(lines[i]), weight(lines[j])
		if wi != wj {
			return wi > wj
		}
		return lines[i].String() < lines[j].String()
	})
}
