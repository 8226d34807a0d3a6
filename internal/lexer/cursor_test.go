package lexer

import (
	"testing"

	"cfmtlint/internal/source"
)

func newTestCursor(content string) Cursor {
	fs := source.NewFileSet()
	id := fs.AddVirtual("cursor.c", []byte(content))
	return NewCursor(fs.Get(id))
}

func TestCursorPeekBump(t *testing.T) {
	c := newTestCursor("ab")
	if c.Peek() != 'a' {
		t.Fatalf("Peek: expected 'a', got %q", c.Peek())
	}
	if !c.HasPrefix("ab") || c.HasPrefix("abc") {
		t.Fatalf("HasPrefix mismatch on %q", c.Rest())
	}
	if c.Bump() != 'a' || c.Bump() != 'b' {
		t.Fatalf("Bump sequence broken")
	}
	if !c.EOF() || c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("expected EOF state")
	}
}

func TestCursorMarkReset(t *testing.T) {
	c := newTestCursor("hello")
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom: got %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset: expected 0, got %d", c.Off)
	}
	if !c.Eat('h') || c.Eat('x') {
		t.Fatalf("Eat mismatch")
	}
	if c.PeekAt(1) != 'l' || c.PeekAt(10) != 0 {
		t.Fatalf("PeekAt mismatch")
	}
}

func TestCursorRuneAndAdvance(t *testing.T) {
	c := newTestCursor("éx")
	r, sz := c.PeekRune()
	if r != 'é' || sz != 2 {
		t.Fatalf("PeekRune: got %q/%d", r, sz)
	}
	c.Advance(sz)
	if c.Peek() != 'x' {
		t.Fatalf("Advance: expected 'x', got %q", c.Peek())
	}
	c.Advance(10)
	if !c.EOF() || c.Off != c.Limit {
		t.Fatalf("Advance must clamp to Limit, off=%d", c.Off)
	}
	if _, sz := c.PeekRune(); sz != 0 {
		t.Fatalf("PeekRune at EOF: size %d", sz)
	}
}
