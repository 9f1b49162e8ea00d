// Package pairs builds the composition-pair table (spec.md §2 row 4,
// "Composition-pair table builder"): for each starter, the list of
// (second, result, next-combining-ref) entries the engine's compose buffer
// walks during a flush.
//
// Grounded on _examples/original_source/prepare/src/pairs.rs (collecting
// the raw first→second→result map) and
// _examples/original_source/prepare/src/tables/compositions.rs (packing it
// into the flat compositions array with the chained Combining reference).
package pairs

import (
	"sort"

	"github.com/boxesandglue/unorm/internal/format"
	"github.com/boxesandglue/unorm/internal/ucd"
)

// Map is the per-starter composition map: Map[first][second] == result.
// Composition exclusions are already subtracted (spec.md §3, "Composition
// pair" invariant).
type Map map[rune]map[rune]rune

// Build scans records for every two-element canonical decomposition not
// listed in exclusions and inserts (first, second) -> result.
func Build(records map[rune]*ucd.Record, exclusions map[rune]bool) Map {
	m := make(Map)

	for code, rec := range records {
		if len(rec.Decomposition) != 2 || rec.Tag != ucd.TagNone {
			continue
		}

		if exclusions[code] {
			continue
		}

		first, second := rec.Decomposition[0], rec.Decomposition[1]

		seconds, ok := m[first]
		if !ok {
			seconds = make(map[rune]rune)
			m[first] = seconds
		}

		seconds[second] = code
	}

	return m
}

// ComposesWithLeft lists every codepoint that appears as the second element
// of some two-element canonical decomposition, exclusions or not. Grounded
// on _examples/original_source/prepare/src/encode/composition.rs's
// composes_with_left, which — unlike Build — does not subtract exclusions:
// a codepoint still needs the CombinesBackwards encoding (and must skip
// precomposition of its own decomposition) purely because some other
// codepoint's canonical decomposition ends in it, whether or not that
// particular composition is excluded from recomposition.
func ComposesWithLeft(records map[rune]*ucd.Record) map[rune]bool {
	set := make(map[rune]bool)

	for _, rec := range records {
		if len(rec.Decomposition) != 2 || rec.Tag != ucd.TagNone {
			continue
		}

		set[rec.Decomposition[1]] = true
	}

	return set
}

// Lookup returns the composition of (first, second), if any.
func (m Map) Lookup(first, second rune) (rune, bool) {
	seconds, ok := m[first]
	if !ok {
		return 0, false
	}

	result, ok := seconds[second]

	return result, ok
}

// Table is the packed runtime form: a flat compositions array (spec.md §3,
// "Composition pair" / §6 "compositions: [u64]") plus the per-starter
// Combining word that indexes into it.
type Table struct {
	Data      []uint64
	Combining map[rune]format.Combining
}

// Pack builds the flat compositions array and the per-starter Combining
// index, and resolves the chained Combining reference each entry carries
// for its own result (so a result that is itself a composable starter can
// be combined again without a second table lookup by code point).
func Pack(m Map) Table {
	starters := make([]rune, 0, len(m))
	for first := range m {
		starters = append(starters, first)
	}

	sort.Slice(starters, func(i, j int) bool { return starters[i] < starters[j] })

	data := make([]uint64, 0)
	combining := make(map[rune]format.Combining, len(starters))

	for _, first := range starters {
		seconds := m[first]

		keys := make([]rune, 0, len(seconds))
		for second := range seconds {
			keys = append(keys, second)
		}

		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		index := len(data)

		for _, second := range keys {
			result := seconds[second]
			// Combining of the result is patched in below, once every
			// starter's index/count is known.
			value := uint64(second)&0x3FFFF | (uint64(result)&0x3FFFF)<<18
			data = append(data, value)
		}

		combining[first] = format.NewCombining(uint16(index), uint16(len(keys)))
	}

	patchChain(data, combining)

	return Table{Data: data, Combining: combining}
}

// patchChain fills in bits[48:64) of every entry with forward's Combining
// of the entry's own result, so a result that is itself a composable
// starter can be combined again without a second lookup by code point.
func patchChain(data []uint64, forward map[rune]format.Combining) {
	const chainMask = 0xFFFFFFFFFFFF // bits [0:48)

	for i, value := range data {
		result := rune((value >> 18) & 0x3FFFF)
		base := value & chainMask

		if c, ok := forward[result]; ok {
			data[i] = base | uint64(c)<<48
		} else {
			data[i] = base
		}
	}
}

// Invert builds the "combines backward" view of m: Invert(m)[second][first]
// == result, for every (first, second) -> result entry in m. It grounds
// spec.md §3's CombinesBackwards variant — a bare starter that is the
// right-hand operand of some other starter's composition, encoded so the
// engine can look up "what does the preceding scalar combine with me into"
// without knowing the preceding scalar's own data word.
func Invert(m Map) Map {
	inverted := make(Map)

	for first, seconds := range m {
		for second, result := range seconds {
			firsts, ok := inverted[second]
			if !ok {
				firsts = make(map[rune]rune)
				inverted[second] = firsts
			}

			firsts[first] = result
		}
	}

	return inverted
}

// PackBackward packs the inverted (combines-backward) view of m, keyed by
// the codepoint that combines backward rather than by the leading starter.
// Chained results are still patched against forwardCombining — once a
// backward combination produces a result, any further combination continues
// through the normal forward path, never through another backward lookup.
func PackBackward(m Map, forwardCombining map[rune]format.Combining) Table {
	table := Pack(Invert(m))
	patchChain(table.Data, forwardCombining)

	return table
}
