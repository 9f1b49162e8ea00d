// Package unorm normalizes UTF-8 text to NFC, NFD, NFKC or NFKD.
//
// The engine is a single fast-forward scanner shared by all four forms
// (spec.md §4, "Runtime algorithm"): a codepoint whose data word needs no
// work is copied straight through, and one that does is dispatched to the
// composer, which either folds it into the open starter or defers it to
// the reorder buffer. NFD and NFKD run the identical scanner and composer
// against tables built with no composition data at all, so "no work" and
// "nothing left to compose" collapse the composer down to CCC-stable
// reordering — the decompose forms need no separate implementation.
//
// Grounded on _examples/original_source/composing/src/lib.rs's
// ComposingNormalizer (the normalizer_methods! macro's fast-forward loop
// and decode_codepoint dispatch) and
// _examples/original_source/composing/src/composition/hangul.rs for the
// Hangul special cases decode_codepoint routes around the data-word
// marker scheme entirely.
package unorm

import (
	"unicode/utf8"

	"github.com/boxesandglue/unorm/internal/codepoint"
	"github.com/boxesandglue/unorm/internal/encode"
	"github.com/boxesandglue/unorm/internal/format"
	"github.com/boxesandglue/unorm/internal/hangul"
	"github.com/boxesandglue/unorm/internal/pack"
	"github.com/boxesandglue/unorm/internal/pairs"
	"github.com/boxesandglue/unorm/internal/seeddata"
	"github.com/boxesandglue/unorm/internal/tables"
)

// Form selects a Unicode normalization form.
type Form int

const (
	NFC Form = iota
	NFD
	NFKC
	NFKD
)

// String returns s normalized to form f, matching the
// golang.org/x/text/unicode/norm.Form.String convention.
func (f Form) String(s string) string {
	return registry[f].normalize(s)
}

// Bytes returns b normalized to form f.
func (f Form) Bytes(b []byte) []byte {
	return []byte(registry[f].normalize(string(b)))
}

// name reports the form's conventional short name.
func (f Form) name() string {
	switch f {
	case NFC:
		return "NFC"
	case NFD:
		return "NFD"
	case NFKC:
		return "NFKC"
	case NFKD:
		return "NFKD"
	default:
		return "unorm.Form(?)"
	}
}

// formTables is everything one form needs at normalization time: its
// data words plus the two behavior switches that distinguish the four
// forms on top of an otherwise identical scanner.
type formTables struct {
	data tables.Data

	// composes is true for NFC/NFKC: Hangul L/V/T jamo go through the
	// composer's arithmetic jamo path, so a following V or T folds back
	// into an open L or LV. Combining marks compose through the form's
	// composition data instead; NFD/NFKD tables carry none, so there
	// every run degrades to a CCC-stable sort-and-emit.
	composes bool

	// expandHangul is true for NFD/NFKD: precomposed Hangul syllables
	// are never present in the data word table (spec.md §4.3) and are
	// split into jamo directly in the scan loop instead.
	expandHangul bool
}

// registry holds the four forms' built tables, keyed by Form.
var registry [4]formTables

func init() {
	maxCode := seeddata.MaxCode()

	composing := encode.BuildTables(seeddata.Records, seeddata.Exclusions)
	decomposingOnly := encode.Tables{Pairs: pairs.Map{}, ComposesWithLeft: map[rune]bool{}}

	registry[NFC] = formTables{
		data:     pack.Build(seeddata.Records, true, composing, maxCode),
		composes: true,
	}
	registry[NFKC] = formTables{
		data:     pack.Build(seeddata.Records, false, composing, maxCode),
		composes: true,
	}
	registry[NFD] = formTables{
		data:         pack.Build(seeddata.Records, true, decomposingOnly, maxCode),
		expandHangul: true,
	}
	registry[NFKD] = formTables{
		data:         pack.Build(seeddata.Records, false, decomposingOnly, maxCode),
		expandHangul: true,
	}
}

// normalize runs s through the fast-forward scanner for the form
// described by ft, returning its normalized form.
//
// This port drives the scan by decoded rune rather than the original's
// raw leading-byte comparison (spec.md §4.2's per-form first interesting
// byte is still the boundary documented in DESIGN.md): reproducing that
// byte-prefix trick exactly, without running it through a single test,
// risked a silent off-by-one that would pass every codepoint below the
// threshold through unexamined. Every codepoint's data word is still
// consulted, so the result is identical; only the micro-optimization of
// skipping the decode step for known-safe bytes is given up.
func (ft formTables) normalize(s string) string {
	c := &composer{compositions: ft.data.Compositions, active: format.NoCombining}
	c.out = make([]byte, 0, len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if ft.expandHangul && hangul.IsSyllable(r) {
			ft.emitHangulSyllable(c, r)
			continue
		}

		if ft.composes && !hangul.IsSyllable(r) {
			if handled := ft.stepHangulJamo(c, r); handled {
				continue
			}
		}

		word := ft.data.BlockWord(r)
		if word == 0 {
			c.openStarter(r, format.NoCombining)
			continue
		}

		ft.apply(c, r, word)
	}

	c.flush()

	return string(c.out)
}

// emitHangulSyllable splits a precomposed Hangul syllable into its jamo
// for NFD/NFKD, closing out whatever run was open first.
func (ft formTables) emitHangulSyllable(c *composer, s rune) {
	l, v, t, hasT, ok := hangul.Decompose(s)
	if !ok {
		c.openStarter(s, format.NoCombining)
		return
	}

	c.flush()
	c.out = appendRune(c.out, l)
	c.out = appendRune(c.out, v)

	if hasT {
		c.out = appendRune(c.out, t)
	}
}

// stepHangulJamo handles the three composable Hangul jamo classes for
// NFC/NFKC: L opens a run that a following V may close into an LV
// syllable, and V/T try to fold into whatever the composer currently has
// open. It reports whether it consumed r.
func (ft formTables) stepHangulJamo(c *composer, r rune) bool {
	switch {
	case hangul.IsL(r):
		c.openStarter(r, format.NoCombining)
		return true
	case hangul.IsV(r), hangul.IsT(r):
		c.combineHangulBackward(r)
		return true
	default:
		return false
	}
}

// apply dispatches one data word to the composer.
func (ft formTables) apply(c *composer, r rune, word uint64) {
	switch format.MarkerOf(word) {
	case format.MarkerStarter:
		c.openStarter(r, format.DecodeStarter(word))

	case format.MarkerNonstarter:
		c.feed(codepoint.FromCodeAndCCC(r, format.DecodeNonstarter(word)))

	case format.MarkerPair:
		starter, nonstarter, nonstarterCCC, combining := format.DecodePair(word)
		c.openStarter(starter, combining)
		c.feed(codepoint.FromCodeAndCCC(nonstarter, nonstarterCCC))

	case format.MarkerSingleton:
		target, combining := format.DecodeSingleton(word)
		c.openStarter(target, combining)

	case format.MarkerExpansion:
		ft.applyExpansion(c, word)

	case format.MarkerCombinesBackwards:
		c.combineBackward(r, format.DecodeCombinesBackwards(word))
	}
}

func (ft formTables) applyExpansion(c *composer, word uint64) {
	index, length, nonstarterLen, combining := format.DecodeExpansion(word)
	entries := ft.data.Expansions[index : int(index)+int(length)]
	leading := int(length) - int(nonstarterLen)

	for i := 0; i < leading; i++ {
		cp := codepoint.FromPacked(entries[i])

		starterCombining := format.NoCombining
		if i == leading-1 {
			starterCombining = combining
		}

		c.openStarter(cp.Code, starterCombining)
	}

	for i := leading; i < int(length); i++ {
		c.feed(codepoint.FromPacked(entries[i]))
	}
}
