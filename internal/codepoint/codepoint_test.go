package codepoint

import "testing"

func TestStarterAndNonstarter(t *testing.T) {
	s := FromCode('A')
	if !s.IsStarter() || s.IsNonstarter() {
		t.Errorf("FromCode('A') = %+v, want a starter", s)
	}

	n := FromCodeAndCCC(0x0301, 230)
	if n.IsStarter() || !n.IsNonstarter() {
		t.Errorf("FromCodeAndCCC(0x301, 230) = %+v, want a nonstarter", n)
	}
}

func TestPackedRoundTrip(t *testing.T) {
	cases := []Codepoint{
		FromCode('A'),
		FromCodeAndCCC(0x0301, 230),
		FromCodeAndCCC(0x0316, 220),
		FromCode(0x1F600),
	}

	for _, c := range cases {
		got := FromPacked(c.Packed())
		if got != c {
			t.Errorf("FromPacked(%+v.Packed()) = %+v, want %+v", c, got, c)
		}
	}
}
