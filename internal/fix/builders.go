package fix

import (
	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// Heuristic marks a fix whose replacement is a best guess, e.g. a conversion
// picked from the argument type. Apply skips it unless heuristics are enabled.
func Heuristic() Option {
	return WithApplicability(diag.FixApplicabilitySafeWithHeuristics)
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

// ReplaceSpan replaces the text covered by span with newText. A non-empty
// expect guards the edit against stale buffers.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) *diag.Fix {
	f := &diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits: []diag.TextEdit{{
			Span:    span,
			NewText: newText,
			OldText: expect,
		}},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}
