package lexer

import (
	"unicode/utf8"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
	"cfmtlint/internal/token"
)

// maxTokenLength ограничивает длину одного токена; после превышения лексер
// репортит ошибку и перематывает на EOF.
const maxTokenLength = 1 << 16

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	// lineStart: с начала строки встречались только пробелы, значит '#' открывает директиву
	lineStart bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		lineStart: true,
	}
}

// Next возвращает следующий токен потока, включая trivia.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	tok := lx.scan()
	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds maximum length")
		lx.cursor.Off = lx.cursor.Limit
		tok.Kind = token.Invalid
		tok.Text = ""
		return tok
	}

	switch tok.Kind {
	case token.Newline, token.Directive:
		lx.lineStart = true
	case token.Space, token.BlockComment:
		// не меняет признак начала строки
	default:
		lx.lineStart = false
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scan() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f' || ch == '\r':
		return lx.scanSpace()
	case ch == '\\' && lx.isLineSplice():
		return lx.scanSpace()
	case ch == '\n':
		return lx.scanNewlines()
	case ch == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
		return lx.scanComment()
	case ch == '#' && lx.lineStart:
		return lx.scanDirective()
	case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
		return lx.scanIdentOrLiteral()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"':
		return lx.scanQuoted(lx.cursor.Mark(), '"')
	case ch == '\'':
		return lx.scanQuoted(lx.cursor.Mark(), '\'')
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
