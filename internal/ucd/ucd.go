// Package ucd parses the Unicode Character Database files consumed by the
// offline data-prep toolchain (spec.md §6: "UCD inputs to the data-prep
// toolchain"). Nothing in this package runs at normalization time: the
// runtime only uses its Record type (through internal/seeddata), and the
// parsers are called from cmd/gentables and cmd/unormcat.
//
// Grounded on _examples/original_source/source/src/unicode.rs and
// properties/*.rs, which parse the same three files for the implementation
// this spec was distilled from.
package ucd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// QuickCheck is a per-form, per-codepoint NFC_QC/NFKC_QC/NFD_QC/NFKD_QC
// value: definitely Yes, definitely No, or Maybe (spec.md glossary).
type QuickCheck uint8

const (
	QCYes QuickCheck = iota
	QCNo
	QCMaybe
)

// DecompositionTag is the UnicodeData.txt field 5 compatibility tag. A
// record with no tag has a canonical decomposition; any tag marks a
// compatibility-only decomposition.
type DecompositionTag uint8

const (
	TagNone DecompositionTag = iota
	TagFont
	TagNoBreak
	TagInitial
	TagMedial
	TagFinal
	TagIsolated
	TagCircle
	TagSuper
	TagSub
	TagVertical
	TagWide
	TagNarrow
	TagSmall
	TagSquare
	TagFraction
	TagCompat
)

var tagNames = map[string]DecompositionTag{
	"<font>":     TagFont,
	"<noBreak>":  TagNoBreak,
	"<initial>":  TagInitial,
	"<medial>":   TagMedial,
	"<final>":    TagFinal,
	"<isolated>": TagIsolated,
	"<circle>":   TagCircle,
	"<super>":    TagSuper,
	"<sub>":      TagSub,
	"<vertical>": TagVertical,
	"<wide>":     TagWide,
	"<narrow>":   TagNarrow,
	"<small>":    TagSmall,
	"<square>":   TagSquare,
	"<fraction>": TagFraction,
	"<compat>":   TagCompat,
}

// Record is one UnicodeData.txt entry, enriched with the exclusion and
// quick-check properties the encoder needs.
type Record struct {
	Code rune
	Name string
	// CCC is the canonical combining class, UnicodeData.txt field 3.
	CCC uint8
	// Decomposition is the raw (non-recursive) decomposition mapping,
	// field 5, empty when the codepoint has none.
	Decomposition []rune
	// Tag is TagNone for a canonical decomposition, otherwise the
	// compatibility tag.
	Tag DecompositionTag
	// Excluded is true when Code appears in CompositionExclusions.txt —
	// NFC must not reconstitute it even though it has a two-element
	// canonical decomposition.
	Excluded bool
	// NFCQuickCheck / NFKCQuickCheck come from DerivedNormalizationProps.txt.
	NFCQuickCheck  QuickCheck
	NFKCQuickCheck QuickCheck

	// BidiMirrored and SimpleUppercase are supplemented fields not used
	// by the engine itself, threaded through for cmd/unormcat's
	// inspection subcommand (SPEC_FULL.md §5.1).
	BidiMirrored    bool
	SimpleUppercase rune
}

func (r Record) IsStarter() bool    { return r.CCC == 0 }
func (r Record) IsNonstarter() bool { return r.CCC != 0 }

// Canonical reports whether Decomposition is a canonical (untagged)
// decomposition.
func (r Record) Canonical() bool { return len(r.Decomposition) > 0 && r.Tag == TagNone }

// ParseUnicodeData parses the semicolon-delimited UnicodeData.txt format.
// It does not attempt the "First>/Last>" range-record convention used by
// large unassigned blocks (CJK, private use) since none of those blocks
// carry decompositions or nonzero CCC.
func ParseUnicodeData(r io.Reader) (map[rune]*Record, error) {
	records := make(map[rune]*Record)

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 15 {
			return nil, fmt.Errorf("ucd: line %d: expected 15 fields, got %d", lineNo, len(fields))
		}

		code, err := strconv.ParseUint(fields[0], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("ucd: line %d: bad code point %q: %w", lineNo, fields[0], err)
		}

		ccc, err := strconv.ParseUint(fields[3], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("ucd: line %d: bad CCC %q: %w", lineNo, fields[3], err)
		}

		tag, decomposition, err := parseDecomposition(fields[5])
		if err != nil {
			return nil, fmt.Errorf("ucd: line %d: %w", lineNo, err)
		}

		upper, err := parseOptionalCode(fields[12])
		if err != nil {
			return nil, fmt.Errorf("ucd: line %d: bad uppercase mapping: %w", lineNo, err)
		}

		records[rune(code)] = &Record{
			Code:            rune(code),
			Name:            fields[1],
			CCC:             uint8(ccc),
			Decomposition:   decomposition,
			Tag:             tag,
			SimpleUppercase: upper,
			BidiMirrored:    fields[9] == "Y",
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ucd: %w", err)
	}

	return records, nil
}

func parseDecomposition(field string) (DecompositionTag, []rune, error) {
	if field == "" {
		return TagNone, nil, nil
	}

	tag := TagNone
	rest := field

	if strings.HasPrefix(field, "<") {
		parts := strings.SplitN(field, " ", 2)
		if len(parts) != 2 {
			return TagNone, nil, fmt.Errorf("malformed tagged decomposition %q", field)
		}

		t, ok := tagNames[parts[0]]
		if !ok {
			return TagNone, nil, fmt.Errorf("unknown decomposition tag %q", parts[0])
		}

		tag = t
		rest = parts[1]
	}

	var codes []rune

	for _, tok := range strings.Fields(rest) {
		v, err := strconv.ParseUint(tok, 16, 32)
		if err != nil {
			return TagNone, nil, fmt.Errorf("bad decomposition codepoint %q: %w", tok, err)
		}

		codes = append(codes, rune(v))
	}

	return tag, codes, nil
}

func parseOptionalCode(field string) (rune, error) {
	if field == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(field, 16, 32)
	if err != nil {
		return 0, err
	}

	return rune(v), nil
}

// ParseCompositionExclusions parses CompositionExclusions.txt: one code
// point per line, optional "#" comments, blank lines ignored.
func ParseCompositionExclusions(r io.Reader) (map[rune]bool, error) {
	exclusions := make(map[rune]bool)

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		field := strings.Fields(line)[0]

		v, err := strconv.ParseUint(field, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("ucd: composition exclusions: bad code point %q: %w", field, err)
		}

		exclusions[rune(v)] = true
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ucd: %w", err)
	}

	return exclusions, nil
}

// ParseDerivedNormalizationProps extracts NFC_QC and NFKC_QC ranges from
// DerivedNormalizationProps.txt and applies them to records.
func ParseDerivedNormalizationProps(r io.Reader, records map[rune]*Record) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			continue
		}

		prop := strings.TrimSpace(fields[1])
		if prop != "NFC_QC" && prop != "NFKC_QC" {
			continue
		}

		lo, hi, err := parseCodeRange(strings.TrimSpace(fields[0]))
		if err != nil {
			return fmt.Errorf("ucd: derived normalization props: %w", err)
		}

		qc := QCMaybe
		if len(fields) >= 3 {
			switch strings.TrimSpace(fields[2]) {
			case "N":
				qc = QCNo
			case "M":
				qc = QCMaybe
			}
		}

		for code := lo; code <= hi; code++ {
			rec, ok := records[code]
			if !ok {
				continue
			}

			if prop == "NFC_QC" {
				rec.NFCQuickCheck = qc
			} else {
				rec.NFKCQuickCheck = qc
			}
		}
	}

	return scanner.Err()
}

func parseCodeRange(field string) (lo, hi rune, err error) {
	parts := strings.SplitN(field, "..", 2)

	lov, err := strconv.ParseUint(parts[0], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad code point %q: %w", parts[0], err)
	}

	if len(parts) == 1 {
		return rune(lov), rune(lov), nil
	}

	hiv, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad code point %q: %w", parts[1], err)
	}

	return rune(lov), rune(hiv), nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	return strings.TrimSpace(line)
}
