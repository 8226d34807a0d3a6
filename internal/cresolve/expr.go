package cresolve

import (
	"cfmtlint/internal/ctype"
	"cfmtlint/internal/token"
)

// exprParser разбирает унарные выражения C. ok - структурный разбор удался;
// нулевой Type означает "тип неизвестен".
type exprParser struct {
	scope *Scope
	toks  []token.Token
	pos   int
}

func (p *exprParser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *exprParser) peekAt(i int) token.Token {
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func isPunct(tok token.Token, ops ...string) bool {
	if tok.Kind != token.Punct {
		return false
	}
	for _, op := range ops {
		if tok.Text == op {
			return true
		}
	}
	return false
}

func (p *exprParser) unary() (ctype.Type, bool) {
	tok := p.peek()
	switch {
	case isPunct(tok, "&"):
		p.pos++
		t, ok := p.unary()
		if t.IsZero() {
			return ctype.Type{}, ok
		}
		return t.Pointer(), ok
	case isPunct(tok, "*"):
		p.pos++
		t, ok := p.unary()
		v, _ := t.Deref()
		return v, ok
	case isPunct(tok, "-", "+", "~"):
		p.pos++
		t, ok := p.unary()
		if !t.IsArithmetic() || (tok.Text == "~" && t.Kind == ctype.Floating) {
			return ctype.Type{}, ok
		}
		return promote(t), ok
	case isPunct(tok, "!"):
		p.pos++
		_, ok := p.unary()
		return ctype.Int, ok
	case isPunct(tok, "++", "--"):
		p.pos++
		return p.unary()
	case tok.Kind == token.Ident && (tok.Text == "sizeof" || tok.Text == "_Alignof" || tok.Text == "alignof"):
		p.pos++
		if p.peek().Kind == token.LParen && p.isTypeStart(p.pos+1) {
			p.pos = p.matching(p.pos) + 1
			return ctype.SizeT, p.pos <= len(p.toks)
		}
		_, ok := p.unary()
		return ctype.SizeT, ok
	case tok.Kind == token.LParen && p.isTypeStart(p.pos+1):
		closeIdx := p.matching(p.pos)
		if closeIdx >= len(p.toks) {
			return ctype.Type{}, false
		}
		cast, castOK := p.typeName(p.pos+1, closeIdx)
		p.pos = closeIdx + 1
		if p.peek().Kind == token.LBrace {
			// compound literal (T){...}
			p.pos = p.matching(p.pos) + 1
			return p.postfixFrom(cast, castOK, false)
		}
		_, ok := p.unary()
		if !castOK {
			return ctype.Type{}, ok
		}
		return cast, ok
	}
	return p.postfix()
}

func (p *exprParser) postfix() (ctype.Type, bool) {
	t, fn, ok := p.primary()
	if !ok {
		return ctype.Type{}, false
	}
	return p.postfixFrom(t, true, fn)
}

func (p *exprParser) postfixFrom(t ctype.Type, known, fn bool) (ctype.Type, bool) {
	if !known {
		t = ctype.Type{}
	}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.LBracket:
			closeIdx := p.matching(p.pos)
			if closeIdx >= len(p.toks) {
				return ctype.Type{}, false
			}
			p.pos = closeIdx + 1
			t, _ = t.Deref()
			fn = false
		case tok.Kind == token.LParen:
			closeIdx := p.matching(p.pos)
			if closeIdx >= len(p.toks) {
				return ctype.Type{}, false
			}
			p.pos = closeIdx + 1
			if !fn {
				t = ctype.Type{}
			}
			fn = false
		case isPunct(tok, ".", "->"):
			if p.peekAt(p.pos+1).Kind != token.Ident {
				return ctype.Type{}, false
			}
			p.pos += 2
			t = ctype.Type{}
			fn = false
		case isPunct(tok, "++", "--"):
			p.pos++
		default:
			if fn {
				// имя функции без вызова - указатель на функцию
				return ctype.Type{Base: "void", Kind: ctype.Void, Pointers: 1}, true
			}
			return t, true
		}
	}
}

// primary: идентификатор, литерал или выражение в скобках.
func (p *exprParser) primary() (t ctype.Type, fn bool, ok bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.pos++
		e, found := p.scope.Lookup(tok.Text, tok.Span.Start)
		if !found {
			return ctype.Type{}, false, true
		}
		switch e.Kind {
		case EntVariable:
			return e.Type, false, true
		case EntFunction:
			return e.Type, true, true
		}
		return ctype.Type{}, false, true
	case token.Number:
		p.pos++
		return NumberType(tok.Text), false, true
	case token.CharLit:
		p.pos++
		return CharType(tok.LiteralPrefix()), false, true
	case token.StringLit:
		// смежные литералы склеиваются; префикс берём у первого непустого
		prefix := ""
		for p.peek().Kind == token.StringLit {
			if pr := p.peek().LiteralPrefix(); pr != "" {
				prefix = pr
			}
			p.pos++
		}
		return StringType(prefix), false, true
	case token.LParen:
		closeIdx := p.matching(p.pos)
		if closeIdx >= len(p.toks) {
			return ctype.Type{}, false, false
		}
		inner := &exprParser{scope: p.scope, toks: p.toks[p.pos+1 : closeIdx]}
		it, iok := inner.unary()
		p.pos = closeIdx + 1
		if !iok || inner.pos != len(inner.toks) {
			return ctype.Type{}, false, true
		}
		return it, false, true
	}
	return ctype.Type{}, false, false
}

// matching возвращает индекс парной закрывающей скобки или len(toks).
func (p *exprParser) matching(open int) int {
	depth := 0
	for i := open; i < len(p.toks); i++ {
		switch k := p.toks[i].Kind; {
		case k.IsOpenBracket():
			depth++
		case k.IsCloseBracket():
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(p.toks)
}

// isTypeStart: токен i начинает имя типа (для приведений и sizeof).
func (p *exprParser) isTypeStart(i int) bool {
	tok := p.peekAt(i)
	if tok.Kind != token.Ident {
		return false
	}
	if ctype.IsTypeKeyword(tok.Text) || ctype.IsQualifier(tok.Text) {
		return true
	}
	if _, ok := p.scope.Typedef(tok.Text, tok.Span.Start); ok {
		return true
	}
	return ctype.Named(tok.Text).Kind == ctype.Std
}

// typeName разбирает имя типа в токенах [from, to).
func (p *exprParser) typeName(from, to int) (ctype.Type, bool) {
	var words []string
	ptrs := 0
	for i := from; i < to; i++ {
		tok := p.toks[i]
		switch {
		case isPunct(tok, "*"):
			ptrs++
		case tok.Kind == token.LBracket:
			ptrs++
			i = p.matching(i)
		case tok.Kind == token.Ident:
			if ptrs > 0 && !ctype.IsQualifier(tok.Text) {
				return ctype.Type{}, false
			}
			words = append(words, tok.Text)
		default:
			return ctype.Type{}, false
		}
	}
	var base ctype.Type
	if len(words) == 1 {
		if t, ok := p.scope.Typedef(words[0], p.toks[from].Span.Start); ok {
			base = t
		}
	}
	if base.IsZero() {
		t, ok := ctype.FromWords(words)
		if !ok {
			return ctype.Type{}, false
		}
		base = t
	}
	for ; ptrs > 0; ptrs-- {
		base = base.Pointer()
	}
	return base, true
}

// promote применяет integer promotions для унарных операторов.
func promote(t ctype.Type) ctype.Type {
	if t.PromotesToInt() {
		return ctype.Int
	}
	return t
}
