package lexer

import (
	"unicode/utf8"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/token"
)

// scanIdentOrLiteral сканирует идентификатор. Если идентификатор - префикс
// кодировки (L, u, U, u8) и за ним сразу кавычка, это строковый или символьный литерал.
// Ключевые слова C остаются Ident: их распознаёт резолвер типов.
func (lx *Lexer) scanIdentOrLiteral() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if sz == 0 {
		return lx.make(token.Invalid, start)
	}
	if r < utf8.RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			lx.cursor.Advance(sz)
			tok := lx.make(token.Invalid, start)
			lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+tok.Text)
			return tok
		}
		lx.cursor.Advance(sz)
		for {
			b := lx.cursor.Peek()
			if b < utf8.RuneSelf {
				if !isIdentContinueByte(b) {
					break
				}
				lx.cursor.Bump()
				continue
			}
			r2, sz2 := lx.cursor.PeekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.cursor.Advance(sz2)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && isEncodingPrefix(text) {
		return lx.scanQuoted(start, q)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func isEncodingPrefix(s string) bool {
	switch s {
	case "L", "u", "U", "u8":
		return true
	}
	return false
}
