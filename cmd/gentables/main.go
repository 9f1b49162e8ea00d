// Command gentables reads the Unicode Character Database files a real
// release of unorm ships from and emits generated Go source: one file per
// normalization form, each a literal internal/tables.Data value ready to
// compile straight into a binary (spec.md §6, "UCD inputs to the data-prep
// toolchain" / "Table packer").
//
// internal/seeddata plays this role for the small, hand-curated subset the
// unorm package ships with; gentables is the complete toolchain a
// downstream consumer runs against the full UCD release files to refresh
// those tables.
//
// Grounded on _examples/oisee-z80-optimizer/cmd/z80opt/main.go's cobra
// command layout (one root command, flag-configured subcommands, RunE
// returning wrapped errors).
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boxesandglue/unorm/internal/encode"
	"github.com/boxesandglue/unorm/internal/pack"
	"github.com/boxesandglue/unorm/internal/pairs"
	"github.com/boxesandglue/unorm/internal/ucd"
)

func main() {
	var unicodeDataPath string
	var exclusionsPath string
	var derivedPropsPath string
	var outDir string
	var pkgName string

	root := &cobra.Command{
		Use:   "gentables",
		Short: "Generate Go source normalization tables from UCD files",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, exclusions, err := loadUCD(unicodeDataPath, exclusionsPath, derivedPropsPath)
			if err != nil {
				return err
			}

			return generate(records, exclusions, outDir, pkgName)
		},
	}

	root.Flags().StringVar(&unicodeDataPath, "unicodedata", "UnicodeData.txt", "path to UnicodeData.txt")
	root.Flags().StringVar(&exclusionsPath, "exclusions", "CompositionExclusions.txt", "path to CompositionExclusions.txt")
	root.Flags().StringVar(&derivedPropsPath, "derived-props", "DerivedNormalizationProps.txt", "path to DerivedNormalizationProps.txt")
	root.Flags().StringVar(&outDir, "out", ".", "output directory for generated Go source")
	root.Flags().StringVar(&pkgName, "package", "tables", "package name for generated source")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadUCD(unicodeDataPath, exclusionsPath, derivedPropsPath string) (map[rune]*ucd.Record, map[rune]bool, error) {
	records, err := parseUnicodeData(unicodeDataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("unicodedata: %w", err)
	}

	exclusions, err := parseExclusions(exclusionsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("exclusions: %w", err)
	}

	if err := applyDerivedProps(derivedPropsPath, records); err != nil {
		return nil, nil, fmt.Errorf("derived-props: %w", err)
	}

	for code := range exclusions {
		if rec, ok := records[code]; ok {
			rec.Excluded = true
		}
	}

	return records, exclusions, nil
}

func parseUnicodeData(path string) (map[rune]*ucd.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ucd.ParseUnicodeData(bufio.NewReader(f))
}

func parseExclusions(path string) (map[rune]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ucd.ParseCompositionExclusions(bufio.NewReader(f))
}

func applyDerivedProps(path string, records map[rune]*ucd.Record) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return ucd.ParseDerivedNormalizationProps(bufio.NewReader(f), records)
}

// maxCode returns the highest code point records describes.
func maxCode(records map[rune]*ucd.Record) rune {
	var max rune
	for code := range records {
		if code > max {
			max = code
		}
	}

	return max
}

// generate writes one Go source file per form under outDir.
func generate(records map[rune]*ucd.Record, exclusions map[rune]bool, outDir, pkgName string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	last := maxCode(records)

	composing := encode.BuildTables(records, exclusions)
	decomposingOnly := encode.Tables{Pairs: pairs.Map{}, ComposesWithLeft: map[rune]bool{}}

	forms := []struct {
		name      string
		canonical bool
		tables    encode.Tables
	}{
		{"NFC", true, composing},
		{"NFD", true, decomposingOnly},
		{"NFKC", false, composing},
		{"NFKD", false, decomposingOnly},
	}

	for _, form := range forms {
		data := pack.Build(records, form.canonical, form.tables, last)

		path := filepath.Join(outDir, fmt.Sprintf("%s.go", toLowerASCII(form.name)))

		f, err := os.Create(path)
		if err != nil {
			return err
		}

		err = writeSource(f, pkgName, form.name, data)
		closeErr := f.Close()

		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if closeErr != nil {
			return fmt.Errorf("%s: %w", path, closeErr)
		}

		log.Printf("wrote %s (%d words, %d expansions, %d compositions)",
			path, len(data.Words), len(data.Expansions), len(data.Compositions))
	}

	return nil
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}

	return string(b)
}
