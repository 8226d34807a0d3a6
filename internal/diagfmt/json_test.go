package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

func newDiag(sev diag.Severity, code diag.Code, span source.Span, msg string) *diag.Diagnostic {
	return &diag.Diagnostic{Severity: sev, Code: code, Primary: span, Message: msg}
}

func decodeJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	return output
}

// TestJSONBasic проверяет базовый JSON вывод
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int main(void) {\n  printf(\"%d\\n\", name);\n}\n")
	fileID := fs.AddVirtual("main.c", content)

	bag := diag.NewBag(10)
	bag.Add(newDiag(diag.SevWarning, diag.FmtTypeMismatch,
		source.Span{File: fileID, Start: 27, End: 29},
		"%d expects int, but argument 1 has type char *"))

	output := decodeJSON(t, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", output.Count)
	}
	d := output.Diagnostics[0]
	if d.Severity != "WARNING" {
		t.Errorf("Expected severity WARNING, got %s", d.Severity)
	}
	if d.Code != "FMT2003" {
		t.Errorf("Expected code FMT2003, got %s", d.Code)
	}
	if d.Location.File != "main.c" {
		t.Errorf("Expected file main.c, got %s", d.Location.File)
	}
	if d.Location.StartByte != 27 || d.Location.EndByte != 29 {
		t.Errorf("Unexpected bytes %d-%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 11 {
		t.Errorf("Expected 2:11, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte(`printf("%ld", 1);`))
	span := source.Span{File: fileID, Start: 8, End: 11}

	d := newDiag(diag.SevWarning, diag.FmtLength, span, "length modifier l is not valid here")
	d.Notes = append(d.Notes, diag.Note{Span: span, Msg: "argument 1 has type int"})
	d.Fixes = append(d.Fixes, &diag.Fix{
		ID:            "fix-1",
		Title:         "use %d",
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TextEdit{{Span: span, NewText: "%d", OldText: "%ld"}},
	})
	bag := diag.NewBag(10)
	bag.Add(d)

	output := decodeJSON(t, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	got := output.Diagnostics[0]
	if len(got.Notes) != 1 || got.Notes[0].Message != "argument 1 has type int" {
		t.Fatalf("Unexpected notes: %+v", got.Notes)
	}
	if len(got.Fixes) != 1 {
		t.Fatalf("Expected 1 fix, got %d", len(got.Fixes))
	}
	f := got.Fixes[0]
	if f.ID != "fix-1" || f.Title != "use %d" {
		t.Errorf("Unexpected fix: %+v", f)
	}
	if f.Kind != "quickfix" || f.Applicability != "always-safe" {
		t.Errorf("Unexpected kind/applicability %s/%s", f.Kind, f.Applicability)
	}
	if len(f.Edits) != 1 || f.Edits[0].NewText != "%d" || f.Edits[0].OldText != "%ld" {
		t.Errorf("Unexpected edits: %+v", f.Edits)
	}
}

// TestJSONWithoutPositions проверяет JSON без позиций строк/колонок
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("int x = 42;"))
	bag := diag.NewBag(10)
	bag.Add(newDiag(diag.SevInfo, diag.FmtInfo, source.Span{File: fileID, Start: 4, End: 5}, "info"))

	d := decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename}).Diagnostics[0]
	if d.Location.StartLine != 0 {
		t.Errorf("Expected start_line to be omitted (0), got %d", d.Location.StartLine)
	}
	if d.Location.StartByte != 4 {
		t.Errorf("Expected start_byte=4, got %d", d.Location.StartByte)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("test content"))
	bag := diag.NewBag(10)
	for i := range 5 {
		bag.Add(newDiag(diag.SevError, diag.FmtArgs,
			source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)}, "args"))
	}

	output := decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3})
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Errorf("Expected 3 diagnostics (limited), got %d", output.Count)
	}
	if output.Truncated != 2 {
		t.Errorf("Expected truncated=2, got %d", output.Truncated)
	}
}

// TestJSONPathModes проверяет различные режимы путей
func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.c", []byte("test"))
	bag := diag.NewBag(10)
	bag.Add(newDiag(diag.SevError, diag.FmtArgs, source.Span{File: fileID, Start: 0, End: 1}, "Error"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.c"},
		{"Relative", PathModeRelative, "src/main.c"},
		{"Basename", PathModeBasename, "main.c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := decodeJSON(t, bag, fs, JSONOpts{PathMode: tt.pathMode})
			if output.Diagnostics[0].Location.File != tt.expected {
				t.Errorf("Expected file=%s, got %s", tt.expected, output.Diagnostics[0].Location.File)
			}
		})
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("example.c", []byte(`printf("%#d\n", n); // count`))
	span := source.Span{File: fileID, Start: 8, End: 11}
	d := newDiag(diag.SevWarning, diag.FmtFlag, span, "flag # is not valid for d")
	d.Fixes = []*diag.Fix{{Title: "drop #", Edits: []diag.TextEdit{{Span: span, NewText: "%d"}}}}
	bag := diag.NewBag(2)
	bag.Add(d)

	output := decodeJSON(t, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	edit := output.Diagnostics[0].Fixes[0].Edits[0]
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != `printf("%#d\n", n); // count` {
		t.Errorf("Unexpected before lines: %q", edit.BeforeLines)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != `printf("%d\n", n); // count` {
		t.Errorf("Unexpected after lines: %q", edit.AfterLines)
	}
}

func TestJSONErrorKindAndFileSummary(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("b.c", []byte(`printf("%d %d", 1);`))
	b := fs.AddVirtual("a.c", []byte(`printf("%q", 1);`))
	bag := diag.NewBag(10)
	bag.Add(newDiag(diag.SevError, diag.FmtArgs, source.Span{File: a, Start: 7, End: 14}, "args"))
	bag.Add(newDiag(diag.SevError, diag.FmtTypeNotExist, source.Span{File: b, Start: 8, End: 10}, "unknown"))
	bag.Add(newDiag(diag.SevInfo, diag.ObsTimings, source.Span{File: b}, "timings"))

	output := decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename})
	if got := output.Diagnostics[0].ErrorKind; got != "args" {
		t.Errorf("error_kind = %q, want args", got)
	}
	if got := output.Diagnostics[2].ErrorKind; got != "" {
		t.Errorf("non-format code got error_kind %q", got)
	}
	want := []FileSummaryJSON{
		{File: "a.c", Errors: 1, Infos: 1},
		{File: "b.c", Errors: 1},
	}
	if len(output.Files) != len(want) {
		t.Fatalf("files = %+v", output.Files)
	}
	for i := range want {
		if output.Files[i] != want[i] {
			t.Errorf("files[%d] = %+v, want %+v", i, output.Files[i], want[i])
		}
	}
}
