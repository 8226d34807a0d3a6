package lexer

import (
	"unicode"
	"unicode/utf8"
)

const (
	classIdentStart uint8 = 1 << iota
	classDigit
)

// byteClass классифицирует ASCII; '$' в идентификаторах допускают GCC и Clang.
var byteClass = func() (t [utf8.RuneSelf]uint8) {
	for b := 'a'; b <= 'z'; b++ {
		t[b] |= classIdentStart
		t[b-'a'+'A'] |= classIdentStart
	}
	t['_'] |= classIdentStart
	t['$'] |= classIdentStart
	for b := '0'; b <= '9'; b++ {
		t[b] |= classDigit
	}
	return t
}()

func isIdentStartByte(b byte) bool {
	return b < utf8.RuneSelf && byteClass[b]&classIdentStart != 0
}

func isIdentContinueByte(b byte) bool {
	return b < utf8.RuneSelf && byteClass[b]&(classIdentStart|classDigit) != 0
}

func isDec(b byte) bool {
	return b < utf8.RuneSelf && byteClass[b]&classDigit != 0
}

func isIdentStartRune(r rune) bool    { return r == '_' || unicode.IsLetter(r) }
func isIdentContinueRune(r rune) bool { return isIdentStartRune(r) || unicode.IsDigit(r) }

// ".5" - число, "." - пунктуатор.
func (lx *Lexer) isNumberAfterDot() bool {
	return lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1))
}

// multiPuncts - многосимвольные пунктуаторы C, длинные раньше коротких.
var multiPuncts = []string{
	"...", "<<=", ">>=",
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"*=", "/=", "%=", "+=", "-=", "&=", "^=", "|=", "##", "::",
}

// eatMultiPunct жадно съедает самый длинный многосимвольный пунктуатор.
func (lx *Lexer) eatMultiPunct() bool {
	for _, p := range multiPuncts {
		if lx.cursor.HasPrefix(p) {
			lx.cursor.Advance(len(p))
			return true
		}
	}
	return false
}
