// Package decompose recursively expands canonical and compatibility
// decompositions from UCD records (spec.md §2 row 2, "Full decomposer").
//
// Grounded on _examples/original_source/source/src/normalization/decomposition.rs.
package decompose

import "github.com/boxesandglue/unorm/internal/ucd"

// Full recursively expands code's decomposition mapping until every
// element is itself without a decomposition (or, for canonical==true, has
// only a compatibility decomposition). Hangul syllables are expanded by the
// caller via internal/hangul — this function only consults the record
// map produced from UnicodeData.txt, which (per the UCD convention) never
// assigns Hangul syllables an explicit decomposition mapping.
func Full(code rune, records map[rune]*ucd.Record, canonical bool) []rune {
	rec, ok := records[code]
	if !ok || len(rec.Decomposition) == 0 {
		return []rune{code}
	}

	if canonical && rec.Tag != ucd.TagNone {
		// Compatibility-only decomposition; canonical form stops here.
		return []rune{code}
	}

	var out []rune

	for _, c := range rec.Decomposition {
		out = append(out, Full(c, records, canonical)...)
	}

	return out
}

// CCC returns the canonical combining class of code, defaulting to 0
// (starter) for codepoints absent from the UCD (the vast unassigned
// majority of the codespace).
func CCC(code rune, records map[rune]*ucd.Record) uint8 {
	if rec, ok := records[code]; ok {
		return rec.CCC
	}

	return 0
}
