package fix

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without touching the files.
	DryRun bool
	// Heuristics lets ApplyModeAll take SafeWithHeuristics fixes too.
	Heuristics bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	// Content is the rewritten file.
	Content []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  *diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts, and applies them.
func Apply(fs *source.FileSet, diagnostics []*diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}

	ctx := diag.FixBuildContext{FileSet: fs}
	candidates, skips := gatherCandidates(ctx, diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)
	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skips, changes, err := applyCandidates(fs, selected, opts.DryRun)
	result.Applied = applied
	result.Skipped = append(result.Skipped, skips...)
	result.FileChanges = changes
	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates materialises the fixes of every diagnostic. Fixes without
// edits and repeated IDs are skipped; missing IDs are synthesised from the
// diagnostic code and position.
func gatherCandidates(ctx diag.FixBuildContext, diagnostics []*diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
	)
	seen := make(map[string]struct{})
	order := 0
	for _, d := range diagnostics {
		if d == nil || len(d.Fixes) == 0 {
			continue
		}
		resolved, err := diag.MaterializeFixes(ctx, d.Fixes)
		if err != nil {
			skips = append(skips, SkippedFix{
				Title:  d.Message,
				Reason: fmt.Sprintf("failed to build fixes: %v", err),
			})
			continue
		}
		for idx, f := range resolved {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders by file, span, insertion order, code, preference, ID and title.
func sortCandidates(candidates []candidate) {
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		return cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.order, b.order),
			cmp.Compare(a.diag.Code, b.diag.Code),
			preferredFirst(a.fix, b.fix),
			cmp.Compare(a.fix.ID, b.fix.ID),
			cmp.Compare(a.fix.Title, b.fix.Title),
		)
	})
}

func preferredFirst(a, b diag.Fix) int {
	switch {
	case a.IsPreferred == b.IsPreferred:
		return 0
	case a.IsPreferred:
		return -1
	}
	return 1
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID != opts.TargetID {
				continue
			}
			if cand.fix.RequiresAll {
				return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix requires all fixes to be applied"}}
			}
			return []candidate{cand}, nil
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}

	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		var skipped []SkippedFix
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe ||
				(opts.Heuristics && cand.fix.Applicability == diag.FixApplicabilitySafeWithHeuristics) {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: "applicability is " + cand.fix.Applicability.String(),
			})
		}
		return selected, skipped

	case ApplyModeOnce:
		// первый безопасный fix; иначе первый подходящий
		var (
			fallback *candidate
			skipped  []SkippedFix
		)
		for i := range candidates {
			cand := candidates[i]
			if cand.fix.RequiresAll {
				skipped = append(skipped, SkippedFix{
					ID:     cand.fix.ID,
					Title:  cand.fix.Title,
					Reason: "fix requires all fixes to be applied",
				})
				continue
			}
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{cand}, skipped
			}
			if fallback == nil {
				fallback = &candidates[i]
			}
		}
		if fallback != nil {
			return []candidate{*fallback}, skipped
		}
		return nil, skipped
	}
	return nil, nil
}

// fileState tracks the working buffer of one file across applied fixes.
type fileState struct {
	buf     []byte
	applied []diag.TextEdit // в исходных координатах, по возрастанию Start
	edits   int
}

func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	states := make(map[source.FileID]*fileState)
	var (
		applied []AppliedFix
		skipped []SkippedFix
	)
	baseDir := fs.BaseDir()

	for _, cand := range selected {
		staged := make(map[source.FileID]*fileState)
		reason := ""
		for fileID, edits := range groupEditsByFile(cand.fix.Edits) {
			file := fs.Get(fileID)
			if file == nil {
				reason = "target file is unknown"
				break
			}
			if file.Flags&source.FileVirtual != 0 && !dryRun {
				reason = "target file is virtual"
				break
			}
			st := states[fileID]
			if st == nil {
				st = &fileState{buf: slices.Clone(file.Content)}
			}
			if conflictsWithExisting(st.applied, edits) {
				reason = "conflicts with previously applied edits in " + file.FormatPath("auto", baseDir)
				break
			}
			next, err := st.apply(edits)
			if err != nil {
				reason = err.Error()
				break
			}
			staged[fileID] = next
		}
		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.fix.ID, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for fileID, st := range staged {
			states[fileID] = st
		}
		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   formatFilePath(fs, cand.diag.Primary.File),
			EditCount:     len(cand.fix.Edits),
		})
	}
	if len(applied) == 0 {
		return nil, skipped, nil, nil
	}

	changes := make([]FileChange, 0, len(states))
	for fileID, st := range states {
		file := fs.Get(fileID)
		if !dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, st.buf, mode); err != nil {
				return applied, skipped, changes, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		changes = append(changes, FileChange{
			Path:      file.FormatPath("relative", baseDir),
			EditCount: st.edits,
			Content:   st.buf,
		})
	}
	slices.SortFunc(changes, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })
	return applied, skipped, changes, nil
}

var (
	errSpanRange   = errors.New("edit span out of range")
	errTextChanged = errors.New("existing text does not match expected content")
)

// apply returns a copy of st with edits applied; st itself is untouched.
func (st *fileState) apply(edits []diag.TextEdit) (*fileState, error) {
	next := &fileState{
		buf:     slices.Clone(st.buf),
		applied: slices.Clone(st.applied),
		edits:   st.edits,
	}
	// с конца, чтобы ранние смещения не сдвигались
	slices.SortStableFunc(edits, func(a, b diag.TextEdit) int { return compareEdits(b, a) })
	for _, e := range edits {
		start := int(e.Span.Start) + cumulativeDelta(st.applied, int(e.Span.Start))
		end := int(e.Span.End) + cumulativeDelta(st.applied, int(e.Span.End))
		if start < 0 || end < start || end > len(next.buf) {
			return nil, errSpanRange
		}
		if e.OldText != "" && string(next.buf[start:end]) != e.OldText {
			return nil, errTextChanged
		}
		next.buf = slices.Replace(next.buf, start, end, []byte(e.NewText)...)
		next.applied = insertEditSorted(next.applied, e)
		next.edits++
	}
	return next, nil
}

func conflictsWithExisting(existing, edits []diag.TextEdit) bool {
	for _, prev := range existing {
		for _, e := range edits {
			if spansConflict(prev, e) {
				return true
			}
		}
	}
	return false
}

// spansConflict treats spans as half-open. Two insertions never conflict;
// an insertion conflicts with a span that strictly contains its position.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End
	switch {
	case aStart == aEnd && bStart == bEnd:
		return false
	case aStart == aEnd:
		return bStart <= aStart && aStart < bEnd
	case bStart == bEnd:
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func groupEditsByFile(edits []diag.TextEdit) map[source.FileID][]diag.TextEdit {
	buckets := make(map[source.FileID][]diag.TextEdit)
	for _, e := range edits {
		buckets[e.Span.File] = append(buckets[e.Span.File], e)
	}
	return buckets
}

// cumulativeDelta is the byte shift at pos caused by edits that end before it.
func cumulativeDelta(edits []diag.TextEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		if int(e.Span.Start) > pos {
			break
		}
		if int(e.Span.End) <= pos {
			delta += len(e.NewText) - int(e.Span.End-e.Span.Start)
		}
	}
	return delta
}

func compareEdits(a, b diag.TextEdit) int {
	return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
}

func insertEditSorted(edits []diag.TextEdit, edit diag.TextEdit) []diag.TextEdit {
	i, _ := slices.BinarySearchFunc(edits, edit, compareEdits)
	return slices.Insert(edits, i, edit)
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
