package diagfmt

import (
	"fmt"
	"io"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

// Short печатает одну строку на диагностику: "<sev> <CODE> <path>:<line>:<col> <msg>".
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	out := diag.FormatLines(bag.Items(), fs, false)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
