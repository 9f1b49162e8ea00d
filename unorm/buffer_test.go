package unorm

import (
	"testing"

	"github.com/boxesandglue/unorm/internal/codepoint"
	"github.com/boxesandglue/unorm/internal/format"
)

func TestComposeBufferFlushSortsByCCC(t *testing.T) {
	buf := composeBuffer{items: []codepoint.Codepoint{
		{Code: 0x0301, CCC: 230},
		{Code: 0x0316, CCC: 220},
	}}

	out := buf.flush(nil)

	want := string([]rune{0x0316, 0x0301})
	if got := string(out); got != want {
		t.Errorf("flush order = %q, want %q (ascending CCC)", got, want)
	}

	if len(buf.items) != 0 {
		t.Error("flush must reset the buffer")
	}
}

func TestComposeBufferFlushEmptyIsNoop(t *testing.T) {
	buf := composeBuffer{}

	out := buf.flush([]byte("x"))
	if string(out) != "x" {
		t.Errorf("flush on an empty buffer changed out: %q", out)
	}
}

func TestCombineFindsMatchingSecond(t *testing.T) {
	compositions := []uint64{
		uint64(0x0300) | uint64(0x00C0)<<18,
		uint64(0x0301) | uint64(0x00C1)<<18,
	}

	active := format.NewCombining(0, 2)

	result, _, ok := combine(active, 0x0301, compositions)
	if !ok || result != 0x00C1 {
		t.Errorf("combine(active, 0x301) = %#x, %v, want 0xC1, true", result, ok)
	}

	if _, _, ok := combine(active, 0x0302, compositions); ok {
		t.Error("combine must fail when no entry matches the offered second codepoint")
	}
}

func TestCombineNoneIsAlwaysFalse(t *testing.T) {
	if _, _, ok := combine(format.NoCombining, 0x0300, nil); ok {
		t.Error("combine with NoCombining must always fail")
	}
}

func TestComposerOpenStarterThenFeedComposes(t *testing.T) {
	compositions := []uint64{uint64(0x0300) | uint64(0x00C0)<<18}

	c := &composer{compositions: compositions, active: format.NoCombining}
	c.openStarter(0x0041, format.NewCombining(0, 1))
	c.feed(codepoint.FromCodeAndCCC(0x0300, 230))
	c.flush()

	if got, want := string(c.out), string(rune(0x00C0)); got != want {
		t.Errorf("composer output = %q, want %q (A+grave composed)", got, want)
	}
}

func TestComposerFeedWithNoOpenStarterPassesThrough(t *testing.T) {
	c := &composer{active: format.NoCombining}
	c.feed(codepoint.FromCodeAndCCC(0x0300, 230))

	if got, want := string(c.out), string(rune(0x0300)); got != want {
		t.Errorf("composer output = %q, want unchanged mark %q", got, want)
	}
}

func TestComposerDefersCompositionUntilFlushSorts(t *testing.T) {
	// 'a' composes with U+0328 (ogonek, ccc 220) into U+0105 ("ą"), and
	// separately with U+0300 (grave, ccc 230) into U+00E0 ("à") — but not
	// both into one precomposed scalar. Fed grave-before-ogonek (the
	// non-canonical order), feed must not act on the grave until the
	// whole run is known: sorting first lets the lower-ccc ogonek claim
	// the still-untouched starter, and the grave — now unable to combine
	// with "ą" — is left as a trailing mark.
	compositions := []uint64{
		uint64(0x0328) | uint64(0x0105)<<18,
		uint64(0x0300) | uint64(0x00E0)<<18,
	}

	c := &composer{compositions: compositions, active: format.NewCombining(0, 2)}
	c.openStarter(0x0061, format.NewCombining(0, 2))
	c.feed(codepoint.FromCodeAndCCC(0x0300, 230)) // grave arrives first
	c.feed(codepoint.FromCodeAndCCC(0x0328, 220)) // ogonek arrives second
	c.flush()

	want := string([]rune{0x0105, 0x0300})
	if got := string(c.out); got != want {
		t.Errorf("composer output = %q, want %q (ogonek composes first by ccc, grave trails)", got, want)
	}
}

func TestComposerWithoutCompositionDataKeepsEqualCCCOrder(t *testing.T) {
	// No composition data at all: both marks must end up in the reorder
	// buffer, in their original relative order (same CCC, stable sort).
	c := &composer{active: format.NoCombining}
	c.openStarter(0x0041, format.NoCombining)
	c.feed(codepoint.FromCodeAndCCC(0x0301, 230))
	c.feed(codepoint.FromCodeAndCCC(0x0302, 230))
	c.flush()

	want := string([]rune{0x0041, 0x0301, 0x0302})
	if got := string(c.out); got != want {
		t.Errorf("composer output = %q, want %q", got, want)
	}
}
