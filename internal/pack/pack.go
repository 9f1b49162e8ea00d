// Package pack builds the runtime table layout (spec.md §2 row 6, "Table
// packer"; §6, "Runtime table layout"): 128-word blocks, a block index
// pointing at each 128-word slot's home in the flat data array, and the
// shared flat expansions and compositions arrays.
//
// Grounded on _examples/original_source/prepare/src/tables/mod.rs, whose
// `prepare` function this follows almost line for line — the Go port keeps
// its block-bits constant and its "codepoints below a fixed cutoff are
// always written contiguously" rule. It departs from the original's
// "an unreferenced block collapses onto block 0" trick: the original only
// ever applies that to decompose-only tables, where block 0 (Basic Latin)
// genuinely is all zero words. A composing table's block 0 is not — 'A'
// and 'e' carry real forward-Combining data — so collapsing onto it would
// hand an unrelated, unreferenced codepoint somebody else's composition
// behavior. Every unreferenced block here instead points at its own
// dedicated all-zero sentinel block, appended once after the real data.
package pack

import (
	"github.com/boxesandglue/unorm/internal/encode"
	"github.com/boxesandglue/unorm/internal/format"
	"github.com/boxesandglue/unorm/internal/tables"
	"github.com/boxesandglue/unorm/internal/ucd"
)

// BlockBits sets the block size at 1<<BlockBits = 128 words.
const BlockBits = 7

// BlockSize is the number of data words per block.
const BlockSize = 1 << BlockBits

// ContinuousThrough is the codepoint below which every block is written to
// the data array even if every word in it is the zero (plain ASCII
// starter) word — spec.md §6's "STARTING_CODEPOINTS_BLOCK" cutoff, chosen
// so the Basic Latin and Latin-1 Supplement blocks never need the shared
// zero-block indirection.
const ContinuousThrough = 0xFFF

// Build packs every codepoint from U+0000 through lastCode (inclusive) into
// a tables.Data. Past ContinuousThrough, blocks with identical words share
// one stored copy. canonical selects NFD-shaped decomposition (NFC reuses the
// same data word layout; only the compose buffer on top of it differs at
// runtime).
func Build(records map[rune]*ucd.Record, canonical bool, t encode.Tables, lastCode rune) tables.Data {
	maxBlock := int(lastCode) >> BlockBits

	index := make([]uint32, maxBlock+1)
	written := make([]bool, maxBlock+1)
	words := make([]uint64, 0, BlockSize)
	expansions := make([]uint32, 0)

	lastBlock := 0
	stored := make(map[[BlockSize]uint64]uint32)

	for block := 0; block <= maxBlock; block++ {
		blockWords := make([]uint64, BlockSize)
		hasContents := rune(block<<BlockBits) <= ContinuousThrough

		for offset := 0; offset < BlockSize; offset++ {
			code := rune(block<<BlockBits + offset)
			if code > lastCode {
				break
			}

			if _, ok := records[code]; !ok {
				continue
			}

			result := encode.Codepoint(code, records, canonical, t)

			word := result.Word
			if len(result.Expansions) > 0 {
				word = format.PatchExpansionIndex(word, uint16(len(expansions)))
				expansions = append(expansions, result.Expansions...)
			}

			if word != 0 {
				hasContents = true
			}

			blockWords[offset] = word
		}

		if hasContents {
			var key [BlockSize]uint64
			copy(key[:], blockWords)

			if at, ok := stored[key]; ok && rune(block<<BlockBits) > ContinuousThrough {
				index[block] = at
			} else {
				index[block] = uint32(len(words) / BlockSize)
				words = append(words, blockWords...)
				stored[key] = index[block]
			}

			written[block] = true
			lastBlock = block
		}
	}

	index = index[:lastBlock+1]
	written = written[:lastBlock+1]

	needsSentinel := false

	for _, ok := range written {
		if !ok {
			needsSentinel = true
			break
		}
	}

	if needsSentinel {
		sentinel := uint32(len(words) / BlockSize)
		words = append(words, make([]uint64, BlockSize)...)

		for block, ok := range written {
			if !ok {
				index[block] = sentinel
			}
		}
	}

	continuousEnd := lastCode
	if continuousEnd > ContinuousThrough {
		continuousEnd = ContinuousThrough
	}

	return tables.Data{
		Index:              index,
		Words:              words,
		Expansions:         expansions,
		Compositions:       t.Compositions(),
		ContinuousBlockEnd: uint32(continuousEnd),
	}
}
