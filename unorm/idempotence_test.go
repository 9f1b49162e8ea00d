package unorm_test

import (
	"testing"

	"github.com/boxesandglue/unorm/unorm"
)

// TestIdempotence checks F(F(s)) == F(s) for each form, across inputs that
// span every data-word shape internal/seeddata describes: plain ASCII, a
// precomposed and a decomposed accented Latin letter, a composition-
// excluded singleton, a compatibility singleton and ligature, a Hangul
// syllable, and the CCC-zero Bengali combine-backward pair.
func TestIdempotence(t *testing.T) {
	inputs := []string{
		"hello, world",
		string([]rune{0x0041, 0x0300}), // A + grave, decomposed
		string(rune(0x00C0)),           // A with grave, precomposed
		string(rune(0x212B)),           // ANGSTROM SIGN
		string(rune(0x00B9)),           // SUPERSCRIPT ONE
		string(rune(0xFB01)),           // LATIN SMALL LIGATURE FI
		string(rune(0xAC01)),           // Hangul LVT syllable
		string([]rune{0x09C7, 0x09BE}), // Bengali vowel sign pair
		string([]rune{0x0041, 0x0315, 0x0300, 0x05AE, 0x0062}), // mixed-CCC run
	}

	forms := map[string]unorm.Form{
		"NFC":  unorm.NFC,
		"NFD":  unorm.NFD,
		"NFKC": unorm.NFKC,
		"NFKD": unorm.NFKD,
	}

	for name, f := range forms {
		for _, in := range inputs {
			once := f.String(in)
			twice := f.String(once)
			if once != twice {
				t.Errorf("%s: F(F(%U)) = %U, want %U (F(s))", name, []rune(in), []rune(twice), []rune(once))
			}
		}
	}
}
