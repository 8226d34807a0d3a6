package lexer

import (
	"cfmtlint/internal/diag"
	"cfmtlint/internal/token"
)

// scanSpace коалесцирует пробелы, табы, '\r' и склейки строк "\\\n" в один Space.
func (lx *Lexer) scanSpace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r' {
			lx.cursor.Bump()
			continue
		}
		if b == '\\' && lx.isLineSplice() {
			lx.skipLineSplice()
			continue
		}
		break
	}
	return lx.make(token.Space, start)
}

// последовательные '\n' коалесцируем
func (lx *Lexer) scanNewlines() token.Token {
	start := lx.cursor.Mark()
	for lx.cursor.Peek() == '\n' {
		lx.cursor.Bump()
	}
	return lx.make(token.Newline, start)
}

// //... до \n и /* ... */ (без вложенности, как в C)
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Eat('/') {
		lx.skipToLineEnd()
		return lx.make(token.LineComment, start)
	}
	lx.cursor.Bump() // '*'
	if !lx.skipBlockCommentBody() {
		tok := lx.make(token.BlockComment, start)
		lx.errLex(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment")
		return tok
	}
	return lx.make(token.BlockComment, start)
}

// skipBlockCommentBody съедает всё до "*/" включительно; false - дошли до EOF.
func (lx *Lexer) skipBlockCommentBody() bool {
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("*/") {
			lx.cursor.Advance(2)
			return true
		}
		lx.cursor.Bump()
	}
	return false
}

// skipToLineEnd съедает до '\n' (не включая), уважая склейки строк.
func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			return
		}
		if b == '\\' && lx.isLineSplice() {
			lx.skipLineSplice()
			continue
		}
		lx.cursor.Bump()
	}
}

// scanDirective читает всю строку препроцессора: '#' ... до неэкранированного '\n'.
// Комментарии внутри директивы входят в её текст; /* */ может переходить на следующие строки.
func (lx *Lexer) scanDirective() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\n':
			return lx.make(token.Directive, start)
		case b == '\\' && lx.isLineSplice():
			lx.skipLineSplice()
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.skipBlockCommentBody() {
				tok := lx.make(token.Directive, start)
				lx.errLex(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment")
				return tok
			}
		case b == '"' || b == '\'':
			lx.skipQuotedInDirective(b)
		default:
			lx.cursor.Bump()
		}
	}
	return lx.make(token.Directive, start)
}

func (lx *Lexer) skipQuotedInDirective(quote byte) {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			return
		}
		lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			return
		}
	}
}

// isLineSplice: "\\\n" или "\\\r\n"
func (lx *Lexer) isLineSplice() bool {
	if lx.cursor.Peek() != '\\' {
		return false
	}
	next := lx.cursor.PeekAt(1)
	return next == '\n' || (next == '\r' && lx.cursor.PeekAt(2) == '\n')
}

func (lx *Lexer) skipLineSplice() {
	lx.cursor.Bump() // '\\'
	lx.cursor.Eat('\r')
	lx.cursor.Eat('\n')
}
