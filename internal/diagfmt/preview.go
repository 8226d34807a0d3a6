package diagfmt

import (
	"errors"
	"fmt"
	"strings"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

// fixEditPreview - строки, затронутые правкой, до и после её применения.
type fixEditPreview struct {
	before []string
	after  []string
}

var errNoFileSet = errors.New("preview: nil FileSet")

// buildFixEditPreview склеивает строки [start.Line, end.Line] и подставляет NewText.
// Колонки байтовые, поэтому начало блока считается прямо из span.Start.
func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, errNoFileSet
	}
	f := fs.Get(edit.Span.File)
	if f == nil {
		return fixEditPreview{}, fmt.Errorf("preview: unknown file %d", edit.Span.File)
	}
	if edit.Span.End < edit.Span.Start {
		return fixEditPreview{}, fmt.Errorf("preview: inverted span %s", edit.Span)
	}

	start, end := fs.Resolve(edit.Span)
	lastLine := max(end.Line, start.Line)

	before := make([]string, 0, lastLine-start.Line+1)
	for ln := start.Line; ln <= lastLine; ln++ {
		before = append(before, f.GetLine(ln))
	}
	block := strings.Join(before, "\n")

	blockStart := edit.Span.Start - (start.Col - 1)
	lo := int(start.Col - 1)
	hi := int(edit.Span.End - blockStart)
	if lo > len(block) || hi > len(block) {
		return fixEditPreview{}, fmt.Errorf("preview: span %s past line %d", edit.Span, lastLine)
	}

	var b strings.Builder
	b.Grow(len(block) - (hi - lo) + len(edit.NewText))
	b.WriteString(block[:lo])
	b.WriteString(edit.NewText)
	b.WriteString(block[hi:])

	return fixEditPreview{
		before: before,
		after:  strings.Split(b.String(), "\n"),
	}, nil
}
