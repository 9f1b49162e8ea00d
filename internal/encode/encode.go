// Package encode chooses a 64-bit data word for each codepoint (spec.md §2
// row 5, "Per-codepoint encoder"): one of the six variants from spec.md §3
// ("Data word"), plus any expansions-array payload the chosen variant needs.
//
// Grounded on _examples/original_source/prepare/src/encode/mod.rs, which
// dispatches over the same per-codepoint facts (CCC, decomposition shape,
// composes-with-left) but through eleven fine-grained Rust functions, one
// per decomposition length/shape combination. This port collapses all of
// them into the six branches spec.md actually names — every decomposition
// longer than the Pair/Singleton cases folds into one encodeExpansion
// helper with a length field, rather than one function per length.
package encode

import (
	"github.com/boxesandglue/unorm/internal/codepoint"
	"github.com/boxesandglue/unorm/internal/decompose"
	"github.com/boxesandglue/unorm/internal/format"
	"github.com/boxesandglue/unorm/internal/pairs"
	"github.com/boxesandglue/unorm/internal/precompose"
	"github.com/boxesandglue/unorm/internal/ucd"
)

// Tables bundles the per-form lookup data the encoder needs beyond a single
// codepoint's own record: the composition-pair map, the resulting forward
// and backward Combining words, and the set of codepoints that may combine
// with a preceding starter.
type Tables struct {
	Pairs             pairs.Map
	Forward           map[rune]format.Combining
	Backward          map[rune]format.Combining
	ComposesWithLeft  map[rune]bool
	ForwardTableData  []uint64
	BackwardTableData []uint64
}

// Compositions returns the single flat compositions array backing both the
// forward table (spec.md §3, "Composition pair") and the backward view
// built from t.Backward.
func (t Tables) Compositions() []uint64 {
	out := make([]uint64, 0, len(t.ForwardTableData)+len(t.BackwardTableData))
	out = append(out, t.ForwardTableData...)
	out = append(out, t.BackwardTableData...)

	return out
}

// BuildTables derives Tables from a parsed record set and exclusion list.
// The backward (combines-backward) table's indices are offset past the end
// of the forward table's data so both views share one flat compositions
// array at runtime (spec.md §6, "compositions: [u64]").
func BuildTables(records map[rune]*ucd.Record, exclusions map[rune]bool) Tables {
	m := pairs.Build(records, exclusions)
	forward := pairs.Pack(m)

	backward := pairs.PackBackward(m, forward.Combining)
	offset := uint16(len(forward.Data))

	backwardCombining := make(map[rune]format.Combining, len(backward.Combining))
	for code, c := range backward.Combining {
		backwardCombining[code] = format.NewCombining(c.Index()+offset, c.Count())
	}

	return Tables{
		Pairs:             m,
		Forward:           forward.Combining,
		Backward:          backwardCombining,
		ComposesWithLeft:  pairs.ComposesWithLeft(records),
		ForwardTableData:  forward.Data,
		BackwardTableData: backward.Data,
	}
}

// Result is one codepoint's encoded data word plus the expansions-array
// entries (if any) it needs appended. For the Expansion variant, Word's
// index field is left 0 — internal/pack assigns and patches the real index
// once it knows where Expansions lands in the shared array.
type Result struct {
	Word       uint64
	Expansions []uint32
}

func cccFunc(records map[rune]*ucd.Record) func(rune) uint8 {
	return func(r rune) uint8 { return decompose.CCC(r, records) }
}

// Codepoint encodes one codepoint for a given form (canonical selects
// NFC/NFD behavior; false selects NFKC/NFKD — the compatibility forms share
// the same data words as their canonical counterparts except that
// compatibility decompositions are also expanded, per spec.md §4.1).
func Codepoint(code rune, records map[rune]*ucd.Record, canonical bool, t Tables) Result {
	rec, ok := records[code]

	ccc := uint8(0)
	if ok {
		ccc = rec.CCC
	}

	full := decompose.Full(code, records, canonical)
	hasDecomposition := !(len(full) == 1 && full[0] == code)

	if !hasDecomposition {
		if ccc != 0 {
			return Result{Word: format.EncodeNonstarter(ccc)}
		}

		if t.ComposesWithLeft[code] {
			return Result{Word: format.EncodeCombinesBackwards(t.Backward[code])}
		}

		return Result{Word: format.EncodeStarter(t.Forward[code], false)}
	}

	decomposition := full
	if !t.ComposesWithLeft[code] {
		// Precompose can fold a decomposition all the way back to the very
		// codepoint being encoded: every ordinary precomposed letter's own
		// (starter, mark) pair is, tautologically, present in the
		// composition-pairs map as mapping to itself. Folding to that fixed
		// point would turn e.g. U+00C0's own encoding into a Singleton
		// pointing at U+00C0, discarding the starter+mark pair that NFD
		// needs. Only keep a fold that lands on a *different* codepoint
		// (the useful case: a multi-level singleton like ANGSTROM SIGN
		// folding past its intermediate target straight to the final
		// precomposed letter).
		if folded := precompose.Precompose(full, cccFunc(records), t.Pairs); !(len(folded) == 1 && folded[0] == code) {
			decomposition = folded
		}
	}

	if ccc == 0 && len(decomposition) == 1 {
		target := decomposition[0]
		return Result{Word: format.EncodeSingleton(target, t.Forward[target])}
	}

	if ccc == 0 && len(decomposition) == 2 &&
		decompose.CCC(decomposition[0], records) == 0 &&
		decompose.CCC(decomposition[1], records) != 0 {
		starter, nonstarter := decomposition[0], decomposition[1]
		return Result{Word: format.EncodePair(starter, nonstarter, decompose.CCC(nonstarter, records), t.Forward[starter])}
	}

	return encodeExpansion(decomposition, records, t)
}

func encodeExpansion(decomposition []rune, records map[rune]*ucd.Record, t Tables) Result {
	// A trailing entry counts as a nonstarter to feed into the compose
	// buffer, not a starter to open fresh, if it either carries a nonzero
	// CCC (the ordinary case) or is itself a ComposesWithLeft codepoint: a
	// CCC-zero codepoint that only ever appears as the second half of some
	// other starter's canonical pair (the Bengali vowel-sign shape) still
	// needs to be fed so the open starter's forward composition table gets
	// a chance at it, rather than opened as an unrelated fresh starter that
	// nothing will ever recombine.
	trailingNonstarters := 0
	for i := len(decomposition) - 1; i >= 0; i-- {
		c := decomposition[i]
		if decompose.CCC(c, records) == 0 && !t.ComposesWithLeft[c] {
			break
		}
		trailingNonstarters++
	}

	leadingStarters := len(decomposition) - trailingNonstarters

	entries := make([]uint32, len(decomposition))
	for i, c := range decomposition {
		entries[i] = codepoint.FromCodeAndCCC(c, decompose.CCC(c, records)).Packed()
	}

	combining := format.NoCombining
	if leadingStarters > 0 {
		combining = t.Forward[decomposition[leadingStarters-1]]
	}

	return Result{
		Word:       format.EncodeExpansion(0, uint8(len(decomposition)), uint8(trailingNonstarters), combining),
		Expansions: entries,
	}
}
