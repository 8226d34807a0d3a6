package lexer

import (
	"cfmtlint/internal/diag"
	"cfmtlint/internal/token"
)

// scanQuoted читает "..." или '...' начиная с текущей кавычки; start может включать
// префикс кодировки. Escape-последовательности не декодируются: Text - исходный срез.
func (lx *Lexer) scanQuoted(start Mark, quote byte) token.Token {
	kind, code, what := token.StringLit, diag.LexUnterminatedString, "string literal"
	if quote == '\'' {
		kind, code, what = token.CharLit, diag.LexUnterminatedChar, "character constant"
	}
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			return lx.make(kind, start)
		}
		if b == '\\' {
			if lx.isLineSplice() {
				lx.skipLineSplice()
				continue
			}
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			tok := lx.make(token.Invalid, start)
			lx.errLex(code, tok.Span, "newline in "+what)
			return tok
		}
		lx.cursor.Bump()
	}
	tok := lx.make(token.Invalid, start)
	lx.errLex(code, tok.Span, "unterminated "+what)
	return tok
}
