package lexer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"cfmtlint/internal/source"
)

// Cursor - байтовая позиция в файле, ограниченная Limit (исключительно).
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("cursor: content length overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Rest - непрочитанный хвост до Limit.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.File.Content[c.Off:c.Limit]
}

// Peek возвращает текущий байт или 0 на EOF.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt смотрит на n байт вперёд; за пределами Limit - 0.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// HasPrefix сообщает, начинается ли хвост с s.
func (c *Cursor) HasPrefix(s string) bool {
	return bytes.HasPrefix(c.Rest(), []byte(s))
}

// PeekRune декодирует UTF-8 руну в позиции; size 0 на EOF.
func (c *Cursor) PeekRune() (rune, int) {
	rest := c.Rest()
	if len(rest) == 0 {
		return utf8.RuneError, 0
	}
	if rest[0] < utf8.RuneSelf {
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Advance сдвигает курсор на n байт, не выходя за Limit.
func (c *Cursor) Advance(n int) {
	un, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("cursor: advance overflow: %w", err))
	}
	c.Off = min(c.Off+un, c.Limit)
}

// Eat съедает байт b, если он следующий.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() != b || c.EOF() {
		return false
	}
	c.Off++
	return true
}

// Mark - сохранённая позиция для SpanFrom и Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
