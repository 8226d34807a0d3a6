package diag

import (
	"cmp"
	"fmt"
	"path"
	"slices"
	"strings"

	"cfmtlint/internal/source"
)

// Line - одна диагностика или заметка в построчном виде:
// "<severity> <CODE> <path>:<line>:<col> <message>".
type Line struct {
	Severity string
	Code     string
	Path     string
	Pos      source.LineCol
	Message  string
}

func (l Line) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.Severity, l.Code, l.Path, l.Pos.Line, l.Pos.Col, l.Message)
}

func compareLines(a, b Line) int {
	return cmp.Or(
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.Pos.Line, b.Pos.Line),
		cmp.Compare(a.Pos.Col, b.Pos.Col),
		cmp.Compare(a.Severity, b.Severity),
		cmp.Compare(a.Code, b.Code),
		cmp.Compare(a.Message, b.Message),
	)
}

// Lines раскладывает диагностики (и, по желанию, их заметки) в отсортированные
// строки. Пути относительны BaseDir, span'ы неизвестных файлов пропускаются.
func Lines(diags []*Diagnostic, fs *source.FileSet, withNotes bool) []Line {
	if fs == nil {
		return nil
	}
	var out []Line
	add := func(sev string, code Code, sp source.Span, msg string) {
		f := fs.Get(sp.File)
		if f == nil {
			return
		}
		start, _ := fs.Resolve(sp)
		out = append(out, Line{
			Severity: sev,
			Code:     code.ID(),
			Path:     path.Clean(f.FormatPath("relative", fs.BaseDir())),
			Pos:      start,
			Message:  oneLine(msg),
		})
	}
	for _, d := range diags {
		if d == nil {
			continue
		}
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if !withNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(out, compareLines)
	return out
}

// FormatLines склеивает Lines через '\n' без завершающего перевода строки.
func FormatLines(diags []*Diagnostic, fs *source.FileSet, withNotes bool) string {
	lines := Lines(diags, fs, withNotes)
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(msg, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " "))
}
