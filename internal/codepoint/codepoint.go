// Package codepoint holds the compose-buffer item type: a scalar value
// paired with its canonical combining class.
//
// Grounded on _examples/original_source/composing/src/codepoint.rs, which
// packs the same pair into a single u32 (code in the high 24 bits, CCC in
// the low 8). The Go port keeps the two fields apart instead: Go has no
// unsafe-free way to reinterpret a packed scalar as a tagged union the way
// the Rust source does, and spec.md §9 explicitly calls for arithmetic
// shifts/masks over pointer-aliased bit extraction — a plain two-field
// struct is the idiomatic equivalent here and costs nothing on a 64-bit
// compare-and-branch architecture.
package codepoint

// Codepoint is one item of the engine's compose buffer: a scalar value and
// its canonical combining class (0 for starters).
type Codepoint struct {
	Code rune
	CCC  uint8
}

// IsStarter reports whether the item has CCC 0.
func (c Codepoint) IsStarter() bool { return c.CCC == 0 }

// IsNonstarter reports whether the item has a nonzero CCC.
func (c Codepoint) IsNonstarter() bool { return c.CCC != 0 }

// FromCode builds a starter item (CCC 0).
func FromCode(code rune) Codepoint { return Codepoint{Code: code} }

// FromCodeAndCCC builds an item with an explicit combining class.
func FromCodeAndCCC(code rune, ccc uint8) Codepoint { return Codepoint{Code: code, CCC: ccc} }

// Packed returns the code and CCC packed into a single uint32 the way an
// expansions-array entry is stored: high 8 bits CCC, low 24 bits code
// (spec.md §3, "Expansion entry").
func (c Codepoint) Packed() uint32 { return uint32(c.CCC)<<24 | uint32(c.Code)&0x00FFFFFF }

// FromPacked unpacks an expansions-array entry back into a Codepoint.
func FromPacked(v uint32) Codepoint {
	return Codepoint{Code: rune(v & 0x00FFFFFF), CCC: uint8(v >> 24)}
}
