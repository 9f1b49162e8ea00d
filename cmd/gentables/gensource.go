package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/boxesandglue/unorm/internal/tables"
)

// writeSource emits a generated Go source file declaring formName's table
// data as a package-level tables.Data literal, e.g. var NFC = tables.Data{...}.
func writeSource(w io.Writer, pkgName, formName string, data tables.Data) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// Code generated by gentables. DO NOT EDIT.\n\n")
	fmt.Fprintf(bw, "package %s\n\n", pkgName)
	fmt.Fprintf(bw, "import \"github.com/boxesandglue/unorm/internal/tables\"\n\n")
	fmt.Fprintf(bw, "var %s = tables.Data{\n", formName)

	fmt.Fprintf(bw, "\tIndex: []uint32{")
	writeUint32s(bw, data.Index)
	fmt.Fprintf(bw, "},\n")

	fmt.Fprintf(bw, "\tWords: []uint64{")
	writeUint64s(bw, data.Words)
	fmt.Fprintf(bw, "},\n")

	fmt.Fprintf(bw, "\tExpansions: []uint32{")
	writeUint32s(bw, data.Expansions)
	fmt.Fprintf(bw, "},\n")

	fmt.Fprintf(bw, "\tCompositions: []uint64{")
	writeUint64s(bw, data.Compositions)
	fmt.Fprintf(bw, "},\n")

	fmt.Fprintf(bw, "\tContinuousBlockEnd: %d,\n", data.ContinuousBlockEnd)
	fmt.Fprintf(bw, "}\n")

	return bw.Flush()
}

func writeUint32s(w *bufio.Writer, s []uint32) {
	for i, v := range s {
		if i%12 == 0 {
			fmt.Fprintf(w, "\n\t\t")
		}

		fmt.Fprintf(w, "0x%x, ", v)
	}

	if len(s) > 0 {
		fmt.Fprint(w, "\n\t")
	}
}

func writeUint64s(w *bufio.Writer, s []uint64) {
	for i, v := range s {
		if i%8 == 0 {
			fmt.Fprintf(w, "\n\t\t")
		}

		fmt.Fprintf(w, "0x%x, ", v)
	}

	if len(s) > 0 {
		fmt.Fprint(w, "\n\t")
	}
}
