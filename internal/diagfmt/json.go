package diagfmt

import (
	"cmp"
	"encoding/json"
	"io"
	"slices"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

// LocationJSON - span в байтах и, по запросу, в строках/колонках.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	BuildError    string        `json:"build_error,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON - одна диагностика. ErrorKind заполняется только для FMT-кодов
// и совпадает с ключом секции [severity] конфигурации.
type DiagnosticJSON struct {
	Severity  string       `json:"severity"`
	Code      string       `json:"code"`
	ErrorKind string       `json:"error_kind,omitempty"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Location  LocationJSON `json:"location"`
	Notes     []NoteJSON   `json:"notes,omitempty"`
	Fixes     []FixJSON    `json:"fixes,omitempty"`
}

// FileSummaryJSON считает выведенные диагностики одного файла.
type FileSummaryJSON struct {
	File     string `json:"file"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	Infos    int    `json:"infos,omitempty"`
}

type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON  `json:"diagnostics"`
	Files       []FileSummaryJSON `json:"files,omitempty"`
	Count       int               `json:"count"`
	// Truncated - сколько диагностик отброшено ограничением Max.
	Truncated int `json:"truncated,omitempty"`
}

var fmtErrorKinds = map[diag.Code]string{
	diag.FmtFlag:         "flag",
	diag.FmtLength:       "length",
	diag.FmtTypeMismatch: "type_mismatch",
	diag.FmtTypeWildcard: "type_wildcard",
	diag.FmtTypeNotExist: "type_notexist",
	diag.FmtArgs:         "args",
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(span source.Span) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(b.fs, span.File, b.opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if !b.opts.IncludePositions {
		return loc
	}
	start, end := b.fs.Resolve(span)
	loc.StartLine, loc.StartCol = start.Line, start.Col
	loc.EndLine, loc.EndCol = end.Line, end.Col
	return loc
}

func (b jsonBuilder) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity:  d.Severity.String(),
		Code:      d.Code.ID(),
		ErrorKind: fmtErrorKinds[d.Code],
		Title:     d.Code.Title(),
		Message:   d.Message,
		Location:  b.location(d.Primary),
	}
	// таймингам без заметок выводить нечего
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		out.Notes = b.notes(d.Notes)
	}
	if b.opts.IncludeFixes {
		out.Fixes = b.fixes(d.Fixes)
	}
	return out
}

func (b jsonBuilder) notes(notes []diag.Note) []NoteJSON {
	if len(notes) == 0 {
		return nil
	}
	out := make([]NoteJSON, len(notes))
	for i, n := range notes {
		out[i] = NoteJSON{Message: n.Msg, Location: b.location(n.Span)}
	}
	return out
}

func (b jsonBuilder) fixes(fixes []*diag.Fix) []FixJSON {
	if len(fixes) == 0 {
		return nil
	}
	ordered := slices.Clone(fixes)
	slices.SortStableFunc(ordered, compareFixes)

	ctx := diag.FixBuildContext{FileSet: b.fs}
	out := make([]FixJSON, 0, len(ordered))
	for _, f := range ordered {
		resolved, err := f.Resolve(ctx)
		fj := FixJSON{
			ID:            resolved.ID,
			Title:         resolved.Title,
			Kind:          resolved.Kind.String(),
			Applicability: resolved.Applicability.String(),
			IsPreferred:   resolved.IsPreferred,
		}
		if err != nil {
			fj.BuildError = err.Error()
		} else {
			fj.Edits = b.edits(resolved.Edits)
		}
		out = append(out, fj)
	}
	return out
}

func (b jsonBuilder) edits(edits []diag.TextEdit) []FixEditJSON {
	if len(edits) == 0 {
		return nil
	}
	out := make([]FixEditJSON, len(edits))
	for i, e := range edits {
		out[i] = FixEditJSON{
			Location: b.location(e.Span),
			NewText:  e.NewText,
			OldText:  e.OldText,
		}
		if !b.opts.IncludePreviews {
			continue
		}
		if pv, err := buildFixEditPreview(b.fs, e); err == nil {
			out[i].BeforeLines = pv.before
			out[i].AfterLines = pv.after
		}
	}
	return out
}

// compareFixes: сначала preferred, затем по надёжности, виду, заголовку и ID.
func compareFixes(a, b *diag.Fix) int {
	if a.IsPreferred != b.IsPreferred {
		if a.IsPreferred {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(a.Applicability, b.Applicability),
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Title, b.Title),
		cmp.Compare(a.ID, b.ID),
	)
}

func summarizeFiles(items []DiagnosticJSON) []FileSummaryJSON {
	var out []FileSummaryJSON
	index := make(map[string]int)
	for _, d := range items {
		i, ok := index[d.Location.File]
		if !ok {
			i = len(out)
			index[d.Location.File] = i
			out = append(out, FileSummaryJSON{File: d.Location.File})
		}
		switch d.Severity {
		case diag.SevError.String():
			out[i].Errors++
		case diag.SevWarning.String():
			out[i].Warnings++
		default:
			out[i].Infos++
		}
	}
	slices.SortFunc(out, func(a, b FileSummaryJSON) int { return cmp.Compare(a.File, b.File) })
	return out
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	items := bag.Items()
	shown := items
	if opts.Max > 0 && opts.Max < len(items) {
		shown = items[:opts.Max]
	}

	b := jsonBuilder{fs: fs, opts: opts}
	diagnostics := make([]DiagnosticJSON, 0, len(shown))
	for _, d := range shown {
		diagnostics = append(diagnostics, b.diagnostic(d))
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Files:       summarizeFiles(diagnostics),
		Count:       len(diagnostics),
		Truncated:   len(items) - len(shown),
	}, nil
}

// JSON пишет диагностики одним документом с отступами.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
