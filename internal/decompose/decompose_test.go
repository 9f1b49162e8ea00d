package decompose

import (
	"reflect"
	"testing"

	"github.com/boxesandglue/unorm/internal/ucd"
)

func records() map[rune]*ucd.Record {
	return map[rune]*ucd.Record{
		0x00C0: {Decomposition: []rune{0x0041, 0x0300}, Tag: ucd.TagNone},
		0x0300: {CCC: 230},
		0x00B9: {Decomposition: []rune{0x0031}, Tag: ucd.TagSuper},
		0x2460: {Decomposition: []rune{0x0031}, Tag: ucd.TagCompat},
	}
}

func TestFullCanonicalStopsAtCompat(t *testing.T) {
	recs := records()

	got := Full(0x00C0, recs, true)
	want := []rune{0x0041, 0x0300}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Full(canonical) = %v, want %v", got, want)
	}

	if got := Full(0x00B9, recs, true); !reflect.DeepEqual(got, []rune{0x00B9}) {
		t.Errorf("Full(SUPERSCRIPT ONE, canonical) = %v, want unchanged [0xB9]", got)
	}
}

func TestFullCompatibilityExpandsThrough(t *testing.T) {
	recs := records()

	got := Full(0x00B9, recs, false)
	want := []rune{0x0031}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Full(SUPERSCRIPT ONE, compatibility) = %v, want %v", got, want)
	}
}

func TestFullNoRecordIsIdentity(t *testing.T) {
	recs := records()

	if got := Full(0x0041, recs, true); !reflect.DeepEqual(got, []rune{0x0041}) {
		t.Errorf("Full('A') = %v, want unchanged ['A']", got)
	}
}

func TestCCCDefaultsToZero(t *testing.T) {
	recs := records()

	if got := CCC(0x0300, recs); got != 230 {
		t.Errorf("CCC(0x300) = %d, want 230", got)
	}

	if got := CCC(0x0041, recs); got != 0 {
		t.Errorf("CCC('A') = %d, want 0 for an absent record", got)
	}
}
