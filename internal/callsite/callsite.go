package callsite

import (
	"fmt"

	"fortio.org/safecast"

	"cfmtlint/internal/ctype"
	"cfmtlint/internal/source"
	"cfmtlint/internal/token"
)

// CallSite is one extracted printf-family call.
type CallSite struct {
	Func Func
	// Name covers the function identifier, Span the whole call through ')'.
	Name source.Span
	Span source.Span
	// FormatStart is the source offset of the first format literal token.
	FormatStart uint32
	// Format is the concatenated raw literal text, escapes as written.
	Format string
	Chunks []Chunk
	Params []Parameter
}

// Parameter is one variadic argument.
type Parameter struct {
	Text   string
	Span   source.Span
	Tokens []token.Token
	// Resolvable is false when a constituent identifier is a macro.
	Resolvable bool
	// Type is filled by the caller's resolver; zero means untyped.
	Type ctype.Type
}

// Chunk maps one literal piece of the format text to the source.
type Chunk struct {
	TextStart   int
	SourceStart uint32
	Len         int
}

// Offset maps a format text index to a source offset.
func (c *CallSite) Offset(i int) uint32 {
	k := c.chunkAt(i)
	if k < 0 {
		return c.FormatStart
	}
	ch := c.Chunks[k]
	return ch.SourceStart + off32(i-ch.TextStart)
}

// SourceSpan maps format text [start, end) to source. contiguous is false
// when the range crosses a literal boundary, in which case the span covers
// the whole stretch including the quotes between pieces.
func (c *CallSite) SourceSpan(start, end int) (sp source.Span, contiguous bool) {
	sp = source.Span{File: c.Span.File, Start: c.Offset(start)}
	if end <= start {
		sp.End = sp.Start
		return sp, true
	}
	last := c.Offset(end - 1)
	sp.End = last + 1
	return sp, c.chunkAt(start) == c.chunkAt(end-1)
}

func (c *CallSite) chunkAt(i int) int {
	for k := len(c.Chunks) - 1; k >= 0; k-- {
		if c.Chunks[k].TextStart <= i {
			return k
		}
	}
	return -1
}

func off32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("callsite: offset overflow: %w", err))
	}
	return v
}
