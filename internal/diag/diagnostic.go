package diag

import (
	"slices"

	"cfmtlint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []*Fix
}

// WithNote returns a copy of the diagnostic with an additional note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(slices.Clone(d.Notes), Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy of the diagnostic with an always-safe quick fix.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(slices.Clone(d.Fixes), &Fix{
		Title:         title,
		Kind:          FixKindQuickFix,
		Applicability: FixApplicabilityAlwaysSafe,
		Edits:         slices.Clone(edits),
	})
	return d
}
