package lexer

import (
	"cfmtlint/internal/token"
)

// scanNumber читает preprocessing number:
//
//	pp-number: digit | . digit | pp-number (digit | ident-char | . | e± | E± | p± | P± | 'digit)
//
// Суффиксы (u, l, f, ...) остаются в Token.Text; классификацию делает резолвер.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // первая цифра или '.'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case (b == 'e' || b == 'E' || b == 'p' || b == 'P') && isSign(lx.cursor.PeekAt(1)):
			lx.cursor.Bump()
			lx.cursor.Bump()
		case b == '\'' && isDigitSeparatorTarget(lx.cursor.PeekAt(1)):
			lx.cursor.Bump()
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
		default:
			return lx.make(token.Number, start)
		}
	}
	return lx.make(token.Number, start)
}

func isSign(b byte) bool { return b == '+' || b == '-' }

// C23/C++14 разделитель цифр: 1'000'000
func isDigitSeparatorTarget(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
