// Package seeddata provides a small, curated Unicode Character Database
// subset that the unorm package builds its four forms' runtime tables from
// at init time, via the same internal/encode and internal/pack pipeline
// cmd/gentables runs against the real UCD files.
//
// Grounded on _examples/original_source/tests/ (which exercises the
// composing normalizer against small hand-picked code point sets rather
// than the full UCD) — this package plays the same role here, scaled up
// just enough to exercise every data-word variant from spec.md §3 at least
// once: a plain starter that composes forward, a combining mark, a
// two-element canonical decomposition (Pair), a composition-exclusion
// singleton, a compatibility-only singleton, a compatibility ligature
// (Expansion), and a CCC-zero second pair member that must combine
// backward rather than open its own run (the Bengali vowel-sign case).
package seeddata

import "github.com/boxesandglue/unorm/internal/ucd"

// Records is a minimal UnicodeData.txt-shaped subset.
var Records = buildRecords()

// Exclusions lists the code points CompositionExclusions.txt would mark
// for this subset.
var Exclusions = map[rune]bool{
	0x212B: true, // ANGSTROM SIGN: canonically equivalent to 00C5 but excluded from recomposition
}

func buildRecords() map[rune]*ucd.Record {
	records := make(map[rune]*ucd.Record)

	add := func(r *ucd.Record) { records[r.Code] = r }

	// Plain starters that combine forward with a following combining mark.
	add(&ucd.Record{Code: 0x0041}) // LATIN CAPITAL LETTER A
	add(&ucd.Record{Code: 0x0065}) // LATIN SMALL LETTER E

	// Combining marks, CCC per UnicodeData.txt field 3.
	add(&ucd.Record{Code: 0x0300, CCC: 230}) // COMBINING GRAVE ACCENT
	add(&ucd.Record{Code: 0x0301, CCC: 230}) // COMBINING ACUTE ACCENT
	add(&ucd.Record{Code: 0x030A, CCC: 230}) // COMBINING RING ABOVE
	add(&ucd.Record{Code: 0x0316, CCC: 220}) // COMBINING GRAVE ACCENT BELOW
	add(&ucd.Record{Code: 0x0315, CCC: 232}) // COMBINING COMMA ABOVE RIGHT
	add(&ucd.Record{Code: 0x05AE, CCC: 220}) // HEBREW ACCENT ZINOR

	// Canonical two-element decompositions (Pair variant, and the source
	// material internal/pairs builds the composition table from).
	add(&ucd.Record{Code: 0x00C0, Decomposition: []rune{0x0041, 0x0300}}) // LATIN CAPITAL LETTER A WITH GRAVE
	add(&ucd.Record{Code: 0x00E9, Decomposition: []rune{0x0065, 0x0301}}) // LATIN SMALL LETTER E WITH ACUTE
	add(&ucd.Record{Code: 0x00C5, Decomposition: []rune{0x0041, 0x030A}}) // LATIN CAPITAL LETTER A WITH RING ABOVE

	// Singleton, excluded from recomposition.
	add(&ucd.Record{Code: 0x212B, Decomposition: []rune{0x00C5}, Excluded: true}) // ANGSTROM SIGN

	// Compatibility singleton.
	add(&ucd.Record{Code: 0x00B9, Decomposition: []rune{0x0031}, Tag: ucd.TagSuper}) // SUPERSCRIPT ONE

	// Compatibility ligature: two leading starters, no trailing nonstarter.
	add(&ucd.Record{Code: 0xFB01, Decomposition: []rune{0x0066, 0x0069}, Tag: ucd.TagCompat}) // LATIN SMALL LIGATURE FI

	// Bengali vowel sign pair: the second element (09BE) has CCC 0, so it
	// must be encoded CombinesBackwards rather than as a Nonstarter or an
	// ordinary Starter — the generic (non-Hangul) counterpart to the
	// Hangul L/V/T combine-backwards path.
	add(&ucd.Record{Code: 0x09C7})                                        // BENGALI VOWEL SIGN E
	add(&ucd.Record{Code: 0x09BE})                                        // BENGALI VOWEL SIGN AA
	add(&ucd.Record{Code: 0x09CB, Decomposition: []rune{0x09C7, 0x09BE}}) // BENGALI VOWEL SIGN O

	return records
}

// MaxCode returns the highest code point Records describes, the upper
// bound internal/pack.Build needs to size its block index.
func MaxCode() rune {
	var max rune
	for code := range Records {
		if code > max {
			max = code
		}
	}

	return max
}
