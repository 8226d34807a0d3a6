package diag

import (
	"testing"

	"cfmtlint/internal/source"
)

func TestFormatLines(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.c", []byte("a\nb\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     FmtArgs,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     FmtTypeMismatch,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "error FMT2006 testdata/golden/sample.c:1:1 first line second\n" +
		"note FMT2006 testdata/golden/sample.c:2:1 note line\n" +
		"warning FMT2003 testdata/golden/sample.c:2:1 another"

	if got := FormatLines(diags, fs, true); got != expected {
		t.Fatalf("unexpected lines:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatLinesSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []*Diagnostic{{Severity: SevError, Code: FmtArgs, Primary: source.Span{File: 9}}}
	if got := FormatLines(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
