// Package hangul implements the algorithmic decomposition and composition
// of Korean Hangul syllables and jamo (spec.md §4.3).
//
// The Hangul syllable block is dense and regular enough that neither the
// data-prep toolchain nor the runtime engine ever materializes a table
// entry for it: both directions are computed from the three jamo bases
// and the syllable base with integer arithmetic.
//
// HarfBuzz equivalent: hb-ot-shaper-hangul.cc (same math, shaper-oriented);
// this package keeps the teacher's range checks and constant names but adds
// the backward-combine-with-previously-emitted-scalar shape the composing
// normalizer needs and the shaper never did.
package hangul

// Jamo and syllable block bases and counts (Unicode 15.1 §3.12).
const (
	LBase  rune = 0x1100
	VBase  rune = 0x1161
	TBase  rune = 0x11A8
	SBase  rune = 0xAC00
	LCount      = 19
	VCount      = 21
	TCount      = 27
	// TBlock is the number of codepoints spanned by one LV syllable and its
	// trailing consonants: the trailing consonant slot plus "no trailing consonant".
	TBlock = TCount + 1
	// NCount is the number of LV syllables per leading consonant.
	NCount = VCount * TBlock
	SCount = LCount * NCount
)

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= SBase && r < SBase+SCount
}

// IsL, IsV, IsT report whether r is a composable leading, vowel or trailing
// jamo — the narrow ranges used by composition, not the full historic jamo
// blocks used for script/feature tagging.
func IsL(r rune) bool { return r >= LBase && r < LBase+LCount }
func IsV(r rune) bool { return r >= VBase && r < VBase+VCount }
func IsT(r rune) bool { return r >= TBase && r < TBase+TCount }

// IsLV reports whether the syllable r has no trailing consonant, i.e. it is
// a bare L+V syllable that may still combine with a following T jamo.
func IsLV(r rune) bool {
	return IsSyllable(r) && (r-SBase)%TBlock == 0
}

// Decompose splits a Hangul syllable into its L, V and (if present) T jamo.
// ok is false if s is not a Hangul syllable. hasT reports whether t is
// meaningful (a syllable with no trailing consonant has t == 0).
func Decompose(s rune) (l, v, t rune, hasT bool, ok bool) {
	if !IsSyllable(s) {
		return 0, 0, 0, false, false
	}

	offset := s - SBase
	lIndex := offset / NCount
	vIndex := (offset % NCount) / TBlock
	tIndex := offset % TBlock

	l = LBase + lIndex
	v = VBase + vIndex

	if tIndex == 0 {
		return l, v, 0, false, true
	}

	return l, v, TBase + tIndex - 1, true, true
}

// ComposeLV composes a leading consonant with a following vowel into an LV
// syllable. ok is false if l is not a composable leading consonant.
func ComposeLV(l, v rune) (rune, bool) {
	lIndex := l - LBase
	if lIndex < 0 || lIndex >= LCount {
		return 0, false
	}

	vIndex := v - VBase

	return SBase + lIndex*NCount + vIndex*TBlock, true
}

// ComposeLVT appends a trailing consonant to an LV syllable. ok is false if
// prev is not an LV syllable (one with no trailing consonant already).
func ComposeLVT(prev, t rune) (rune, bool) {
	if !IsLV(prev) {
		return 0, false
	}

	tIndex := t - TBase

	return prev + tIndex + 1, true
}

// CombineBackward attempts to compose jamo with the scalar prev that the
// engine already emitted to its output. It dispatches on whether jamo is a
// vowel or trailing-consonant jamo, mirroring the two combinable shapes in
// spec.md §4.3: L+V and LV+T. ok is false if no composition applies, in
// which case the caller must emit both scalars unchanged.
func CombineBackward(prev, jamo rune) (rune, bool) {
	if IsV(jamo) {
		return ComposeLV(prev, jamo)
	}

	if IsT(jamo) {
		return ComposeLVT(prev, jamo)
	}

	return 0, false
}
