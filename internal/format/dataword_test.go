package format

import "testing"

func TestNeedsWorkAndMarker(t *testing.T) {
	word := EncodeSingleton(0x00C5, NewCombining(3, 1))

	if !NeedsWork(word) {
		t.Error("Singleton word should set the needs-work bit")
	}

	if got := MarkerOf(word); got != MarkerSingleton {
		t.Errorf("MarkerOf = %v, want MarkerSingleton", got)
	}
}

func TestStarterRoundTrip(t *testing.T) {
	word := EncodeStarter(NewCombining(5, 2), false)

	if NeedsWork(word) {
		t.Error("plain starter must not set needs-work")
	}

	if got := MarkerOf(word); got != MarkerStarter {
		t.Errorf("MarkerOf = %v, want MarkerStarter", got)
	}

	c := DecodeStarter(word)
	if c.Index() != 5 || c.Count() != 2 {
		t.Errorf("DecodeStarter = index %d count %d, want 5 2", c.Index(), c.Count())
	}
}

func TestPairRoundTrip(t *testing.T) {
	word := EncodePair(0x0041, 0x0300, 230, NewCombining(1, 1))

	starter, nonstarter, ccc, combining := DecodePair(word)
	if starter != 0x0041 || nonstarter != 0x0300 || ccc != 230 {
		t.Errorf("DecodePair = %#x %#x ccc=%d, want 0x41 0x300 ccc=230", starter, nonstarter, ccc)
	}
	if combining.Index() != 1 || combining.Count() != 1 {
		t.Errorf("DecodePair combining = index %d count %d, want 1 1", combining.Index(), combining.Count())
	}
}

func TestSingletonRoundTrip(t *testing.T) {
	word := EncodeSingleton(0x00C5, NewCombining(9, 4))

	target, combining := DecodeSingleton(word)
	if target != 0x00C5 {
		t.Errorf("DecodeSingleton target = %#x, want 0xC5", target)
	}
	if combining.Index() != 9 || combining.Count() != 4 {
		t.Errorf("DecodeSingleton combining = index %d count %d, want 9 4", combining.Index(), combining.Count())
	}
}

func TestNonstarterRoundTrip(t *testing.T) {
	word := EncodeNonstarter(220)

	if got := DecodeNonstarter(word); got != 220 {
		t.Errorf("DecodeNonstarter = %d, want 220", got)
	}
	if !NeedsWork(word) {
		t.Error("nonstarter word must set needs-work")
	}
}

func TestExpansionRoundTripAndPatch(t *testing.T) {
	word := EncodeExpansion(0, 2, 0, NewCombining(7, 1))

	index, length, nonstarterLen, combining := DecodeExpansion(word)
	if index != 0 || length != 2 || nonstarterLen != 0 {
		t.Errorf("DecodeExpansion = index %d length %d nonstarterLen %d, want 0 2 0", index, length, nonstarterLen)
	}
	if combining.Index() != 7 || combining.Count() != 1 {
		t.Errorf("DecodeExpansion combining = index %d count %d, want 7 1", combining.Index(), combining.Count())
	}

	patched := PatchExpansionIndex(word, 42)
	index2, length2, nonstarterLen2, combining2 := DecodeExpansion(patched)
	if index2 != 42 {
		t.Errorf("PatchExpansionIndex index = %d, want 42", index2)
	}
	if length2 != length || nonstarterLen2 != nonstarterLen || combining2 != combining {
		t.Error("PatchExpansionIndex must leave every other field untouched")
	}
}

func TestCombinesBackwardsRoundTrip(t *testing.T) {
	word := EncodeCombinesBackwards(NewCombining(2, 1))

	if got := MarkerOf(word); got != MarkerCombinesBackwards {
		t.Errorf("MarkerOf = %v, want MarkerCombinesBackwards", got)
	}

	combining := DecodeCombinesBackwards(word)
	if combining.Index() != 2 || combining.Count() != 1 {
		t.Errorf("DecodeCombinesBackwards = index %d count %d, want 2 1", combining.Index(), combining.Count())
	}
}

func TestCombiningIsNone(t *testing.T) {
	if !NoCombining.IsNone() {
		t.Error("NoCombining.IsNone() should be true")
	}

	c := NewCombining(1, 1)
	if c.IsNone() {
		t.Error("a nonzero Combining must not report IsNone")
	}
}
