// Command unormcat is a small terminal harness for exercising the four
// normalization forms and inspecting a code point's raw UCD record — the
// "benchmarking scaffolding" outer surface spec.md's Non-goals exclude
// from the engine itself but which a shipped module still needs some way
// to poke from a terminal (SPEC_FULL.md §2).
//
// Grounded on _examples/oisee-z80-optimizer/cmd/z80opt/main.go's cobra
// layout; diagnostics go through the standard library log package, the
// only logger anywhere in the pack.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boxesandglue/unorm/internal/seeddata"
	"github.com/boxesandglue/unorm/internal/ucd"
	"github.com/boxesandglue/unorm/unorm"
)

func main() {
	root := &cobra.Command{
		Use:   "unormcat",
		Short: "Exercise unorm's normalization forms and inspect UCD records",
	}

	root.AddCommand(normalizeCmd("nfc", unorm.NFC))
	root.AddCommand(normalizeCmd("nfd", unorm.NFD))
	root.AddCommand(normalizeCmd("nfkc", unorm.NFKC))
	root.AddCommand(normalizeCmd("nfkd", unorm.NFKD))
	root.AddCommand(inspectCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

// normalizeCmd builds the subcommand for one form: with args, normalizes
// each argument and prints it; with no args, normalizes stdin line by
// line, the way a Unix filter does.
func normalizeCmd(use string, form unorm.Form) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [text...]",
		Short: fmt.Sprintf("Normalize text to %s", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				for _, s := range args {
					fmt.Println(form.String(s))
				}

				return nil
			}

			return normalizeStream(cmd.InOrStdin(), cmd.OutOrStdout(), form)
		},
	}
}

func normalizeStream(r io.Reader, w io.Writer, form unorm.Form) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		fmt.Fprintln(w, form.String(scanner.Text()))
	}

	return scanner.Err()
}

// inspectCmd prints the raw UCD record for one or more code points, given
// either as "U+00C5" or a bare hex number. It looks the code
// point up in the embedded seed data set unless --unicodedata points at
// a real UnicodeData.txt, in which case that file is parsed instead.
func inspectCmd() *cobra.Command {
	var unicodeDataPath string

	cmd := &cobra.Command{
		Use:   "inspect [U+XXXX...]",
		Short: "Print a code point's raw UCD record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records := seeddata.Records

			if unicodeDataPath != "" {
				loaded, err := loadUnicodeData(unicodeDataPath)
				if err != nil {
					return fmt.Errorf("inspect: %w", err)
				}

				records = loaded
			}

			for _, arg := range args {
				code, err := parseCodePoint(arg)
				if err != nil {
					return fmt.Errorf("inspect: %w", err)
				}

				printRecord(cmd.OutOrStdout(), code, records[code])
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&unicodeDataPath, "unicodedata", "", "parse a real UnicodeData.txt instead of the embedded seed data")

	return cmd
}

func loadUnicodeData(path string) (map[rune]*ucd.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ucd.ParseUnicodeData(bufio.NewReader(f))
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimPrefix(strings.ToUpper(s), "U+")

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad code point %q: %w", s, err)
	}

	return rune(v), nil
}

func printRecord(w io.Writer, code rune, rec *ucd.Record) {
	if rec == nil {
		fmt.Fprintf(w, "U+%04X: no record (default starter, CCC 0, no decomposition)\n", code)
		return
	}

	fmt.Fprintf(w, "U+%04X %s\n", code, rec.Name)
	fmt.Fprintf(w, "  CCC:             %d\n", rec.CCC)
	fmt.Fprintf(w, "  Decomposition:   %s\n", formatDecomposition(rec))
	fmt.Fprintf(w, "  Excluded:        %t\n", rec.Excluded)
	fmt.Fprintf(w, "  BidiMirrored:    %t\n", rec.BidiMirrored)

	if rec.SimpleUppercase != 0 {
		fmt.Fprintf(w, "  SimpleUppercase: U+%04X\n", rec.SimpleUppercase)
	}
}

func formatDecomposition(rec *ucd.Record) string {
	if len(rec.Decomposition) == 0 {
		return "(none)"
	}

	parts := make([]string, len(rec.Decomposition))
	for i, c := range rec.Decomposition {
		parts[i] = fmt.Sprintf("U+%04X", c)
	}

	if rec.Tag != ucd.TagNone {
		return "<compat> " + strings.Join(parts, " ")
	}

	return strings.Join(parts, " ")
}
