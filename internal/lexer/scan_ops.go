package lexer

import (
	"cfmtlint/internal/diag"
	"cfmtlint/internal/token"
)

// scanOperatorOrPunct: сначала многосимвольные пунктуаторы, затем одиночные байты.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	if lx.eatMultiPunct() {
		return lx.make(token.Punct, start)
	}

	b := lx.cursor.Bump()
	switch b {
	case '(':
		return lx.make(token.LParen, start)
	case ')':
		return lx.make(token.RParen, start)
	case '[':
		return lx.make(token.LBracket, start)
	case ']':
		return lx.make(token.RBracket, start)
	case '{':
		return lx.make(token.LBrace, start)
	case '}':
		return lx.make(token.RBrace, start)
	case ',':
		return lx.make(token.Comma, start)
	case '.', '&', '*', '+', '-', '~', '!', '/', '%', '<', '>', '^', '|', '?', ':', ';', '=', '#', '\\':
		return lx.make(token.Punct, start)
	}

	tok := lx.make(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteByte(b))
	return tok
}

func quoteByte(b byte) string {
	const hex = "0123456789abcdef"
	if b >= 0x20 && b < 0x7f {
		return "'" + string(rune(b)) + "'"
	}
	return "'\\x" + string(hex[b>>4]) + string(hex[b&0xf]) + "'"
}
