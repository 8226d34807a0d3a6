package diag

import (
	"errors"
	"fmt"

	"cfmtlint/internal/source"
)

// FixKind classifies a fix suggestion.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
	FixKindRefactorRewrite
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	}
	return "unknown"
}

// FixApplicability describes how safe it is to apply a fix without review.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe means the edit never changes program meaning beyond the finding.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	// FixApplicabilitySafeWithHeuristics means the edit is a best guess.
	FixApplicabilitySafeWithHeuristics
	// FixApplicabilityManualReview means the edit must be reviewed by a human.
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// TextEdit replaces Span with NewText. A non-empty OldText guards the edit:
// the fix engine refuses to apply it when the current text differs.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixBuildContext passes read-only state to lazy fix builders.
type FixBuildContext struct {
	FileSet *source.FileSet
}

// FixThunk builds a fix on demand.
type FixThunk interface {
	ID() string
	Build(ctx FixBuildContext) (Fix, error)
}

// Fix is a suggested change attached to a diagnostic.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	// RequiresAll marks fixes that only make sense applied together with the rest of the batch.
	RequiresAll bool
	Edits       []TextEdit
	Thunk       FixThunk `msgpack:"-"`
}

var errNilFix = errors.New("nil fix")

// Resolve materialises a lazy fix; ready fixes are returned as is.
func (f *Fix) Resolve(ctx FixBuildContext) (Fix, error) {
	if f == nil {
		return Fix{}, errNilFix
	}
	if f.Thunk == nil || len(f.Edits) > 0 {
		return *f, nil
	}
	built, err := f.Thunk.Build(ctx)
	if err != nil {
		return Fix{}, fmt.Errorf("fix %s: %w", f.Thunk.ID(), err)
	}
	if built.ID == "" {
		built.ID = f.ID
	}
	if built.Title == "" {
		built.Title = f.Title
	}
	return built, nil
}

// MaterializeFixes resolves every fix of a diagnostic. The first failing thunk aborts.
func MaterializeFixes(ctx FixBuildContext, fixes []*Fix) ([]Fix, error) {
	out := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}
