// Package tables is the runtime-facing half of the table format: the
// read-only Data a normalization Form consults (spec.md §6, "Runtime table
// layout"), plus a binary exchange format for shipping a built table
// without regenerating Go source.
//
// The generated-Go-source artifact (one array literal per field, built by
// cmd/gentables) is the primary distribution format, the way
// golang.org/x/text's tables are checked in as generated .go files. WriteTo
// / ReadFrom exist alongside it for the case of shipping or caching a built
// table as data rather than code — grounded on
// _examples/axiomhq-fsst/table.go's WriteTo/ReadFrom pair, including its
// version-word-plus-ErrBadVersion shape.
package tables

import (
	"encoding/binary"
	"errors"
	"io"
)

// version identifies the binary layout WriteTo emits. Bump it whenever a
// field is added, removed, or reordered.
const version uint32 = 1

// ErrBadVersion is returned by ReadFrom when the stream's version word does
// not match the version this package writes.
var ErrBadVersion = errors.New("tables: unsupported table version")

// Data is one normalization form's complete runtime table set.
type Data struct {
	// Index maps a block number (codepoint >> 7) to the block's position
	// (in units of 128-word blocks) within Words. A block past the end of
	// Index reads as the all-zero "plain starter" block; an entry inside
	// Index is always followed as given, whatever its value.
	Index []uint32
	// Words is the flat, block-packed data-word array (spec.md §3, "Data
	// word").
	Words []uint64
	// Expansions is the flat array Expansion data words index into
	// (spec.md §3, "Expansion entry").
	Expansions []uint32
	// Compositions is the flat array Combining words index into, holding
	// both the forward and the combines-backward views (spec.md §3,
	// "Composition pair").
	Compositions []uint64
	// ContinuousBlockEnd is the highest codepoint below which every block
	// is guaranteed to be present in Index contiguously from block 0.
	ContinuousBlockEnd uint32
}

// BlockWord returns the data word for code, or 0 (plain starter, no
// decomposition) if code falls outside every populated block.
func (d Data) BlockWord(code rune) uint64 {
	block := int(code) >> 7

	if block >= len(d.Index) {
		return 0
	}

	slot := d.Index[block]
	offset := int(code) & 0x7F

	i := int(slot)*128 + offset
	if i < 0 || i >= len(d.Words) {
		return 0
	}

	return d.Words[i]
}

// WriteTo serializes d as: a version word, then each slice as a
// little-endian length-prefixed run, then the trailing ContinuousBlockEnd
// word.
func (d Data) WriteTo(w io.Writer) (int64, error) {
	var total int64

	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return total, err
	}

	total += 4

	writers := []func() (int64, error){
		func() (int64, error) { return writeUint32Slice(w, d.Index) },
		func() (int64, error) { return writeUint64Slice(w, d.Words) },
		func() (int64, error) { return writeUint32Slice(w, d.Expansions) },
		func() (int64, error) { return writeUint64Slice(w, d.Compositions) },
	}

	for _, wr := range writers {
		n, err := wr()
		total += n

		if err != nil {
			return total, err
		}
	}

	if err := binary.Write(w, binary.LittleEndian, d.ContinuousBlockEnd); err != nil {
		return total, err
	}

	return total + 4, nil
}

// ReadFrom deserializes a Data previously written by WriteTo.
func (d *Data) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	var v uint32

	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return total, err
	}

	total += 4

	if v != version {
		return total, ErrBadVersion
	}

	n, index, err := readUint32Slice(r)
	total += n

	if err != nil {
		return total, err
	}

	n, words, err := readUint64Slice(r)
	total += n

	if err != nil {
		return total, err
	}

	n, expansions, err := readUint32Slice(r)
	total += n

	if err != nil {
		return total, err
	}

	n, compositions, err := readUint64Slice(r)
	total += n

	if err != nil {
		return total, err
	}

	var end uint32
	if err := binary.Read(r, binary.LittleEndian, &end); err != nil {
		return total, err
	}

	total += 4

	d.Index = index
	d.Words = words
	d.Expansions = expansions
	d.Compositions = compositions
	d.ContinuousBlockEnd = end

	return total, nil
}

func writeUint32Slice(w io.Writer, s []uint32) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return 0, err
	}

	if err := binary.Write(w, binary.LittleEndian, s); err != nil {
		return 4, err
	}

	return int64(4 + 4*len(s)), nil
}

func writeUint64Slice(w io.Writer, s []uint64) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return 0, err
	}

	if err := binary.Write(w, binary.LittleEndian, s); err != nil {
		return 4, err
	}

	return int64(4 + 8*len(s)), nil
}

func readUint32Slice(r io.Reader) (int64, []uint32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, nil, err
	}

	s := make([]uint32, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, s); err != nil {
			return 4, nil, err
		}
	}

	return int64(4 + 4*n), s, nil
}

func readUint64Slice(r io.Reader) (int64, []uint64, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, nil, err
	}

	s := make([]uint64, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, s); err != nil {
			return 4, nil, err
		}
	}

	return int64(4 + 8*n), s, nil
}
