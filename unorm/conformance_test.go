package unorm_test

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/boxesandglue/unorm/unorm"
)

// conformanceCase mirrors one NormalizationTest.txt record (fields
// c1..c5): source, NFC, NFD, NFKC, NFKD.
type conformanceCase struct {
	c1, c2, c3, c4, c5 string
}

// loadConformanceSubset parses testdata/normalizationtest_subset.txt, a
// hand-curated excerpt in the same five-field shape as the real UCD
// NormalizationTest.txt, restricted to the code points
// internal/seeddata describes.
func loadConformanceSubset(t *testing.T) []conformanceCase {
	t.Helper()

	f, err := os.Open("../testdata/normalizationtest_subset.txt")
	if err != nil {
		t.Fatalf("open conformance subset: %v", err)
	}
	defer f.Close()

	var cases []conformanceCase

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 5 {
			t.Fatalf("malformed conformance line %q: want 5 fields, got %d", line, len(fields))
		}

		cases = append(cases, conformanceCase{
			c1: decodeCodepoints(t, fields[0]),
			c2: decodeCodepoints(t, fields[1]),
			c3: decodeCodepoints(t, fields[2]),
			c4: decodeCodepoints(t, fields[3]),
			c5: decodeCodepoints(t, fields[4]),
		})
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("scan conformance subset: %v", err)
	}

	return cases
}

func decodeCodepoints(t *testing.T, field string) string {
	t.Helper()

	var b strings.Builder

	for _, hex := range strings.Fields(field) {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			t.Fatalf("bad code point %q: %v", hex, err)
		}

		b.WriteRune(rune(v))
	}

	return b.String()
}

// TestConformanceSubset checks the UCD conformance equations (spec.md §8
// property 2) against a small subset restricted to code points
// internal/seeddata actually encodes.
func TestConformanceSubset(t *testing.T) {
	for _, c := range loadConformanceSubset(t) {
		for _, ci := range []string{c.c1, c.c2, c.c3} {
			if got := unorm.NFC.String(ci); got != c.c2 {
				t.Errorf("NFC(%q) = %q, want %q (c2)", ci, got, c.c2)
			}
		}

		for _, ci := range []string{c.c1, c.c2, c.c3, c.c4, c.c5} {
			if got := unorm.NFKC.String(ci); got != c.c4 {
				t.Errorf("NFKC(%q) = %q, want %q (c4)", ci, got, c.c4)
			}
		}

		if got := unorm.NFC.String(c.c4); got != c.c4 {
			t.Errorf("NFC(c4=%q) = %q, want unchanged", c.c4, got)
		}

		if got := unorm.NFC.String(c.c5); got != c.c4 {
			t.Errorf("NFC(c5=%q) = %q, want %q (c4)", c.c5, got, c.c4)
		}

		for _, ci := range []string{c.c1, c.c2, c.c3} {
			if got := unorm.NFD.String(ci); got != c.c3 {
				t.Errorf("NFD(%q) = %q, want %q (c3)", ci, got, c.c3)
			}
		}

		for _, ci := range []string{c.c1, c.c2, c.c3, c.c4, c.c5} {
			if got := unorm.NFKD.String(ci); got != c.c5 {
				t.Errorf("NFKD(%q) = %q, want %q (c5)", ci, got, c.c5)
			}
		}
	}
}
