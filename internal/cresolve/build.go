package cresolve

import (
	"strings"

	"cfmtlint/internal/ctype"
	"cfmtlint/internal/lexer"
	"cfmtlint/internal/token"
)

// Options configure scope construction.
type Options struct {
	// Typedefs are project aliases known before the first line of the file.
	Typedefs map[string]ctype.Type
}

// statement keywords never start a declaration
var stmtKeywords = map[string]struct{}{
	"return": {}, "if": {}, "else": {}, "while": {}, "for": {}, "do": {}, "switch": {},
	"case": {}, "default": {}, "goto": {}, "break": {}, "continue": {}, "sizeof": {},
	"_Alignof": {}, "alignof": {}, "typeof": {}, "__typeof__": {}, "asm": {}, "__asm__": {},
}

type builder struct {
	toks  []token.Token
	scope *Scope
	// open[d] - сущности, объявленные на глубине d; закрываются на '}'
	open    [][]*Entity
	pending []Entity // параметры определения функции до её '{'
}

// Build collects the entities of a tokenized file.
func Build(st *lexer.Stream, opts Options) *Scope {
	scope := NewScope()
	for name, t := range opts.Typedefs {
		scope.Add(Entity{Name: name, Kind: EntTypedef, Type: t})
	}
	b := &builder{scope: scope, open: make([][]*Entity, 1)}
	for _, tok := range st.Tokens {
		switch {
		case tok.Kind == token.Directive:
			b.directive(tok)
		case tok.Kind.IsTrivia(), tok.Kind == token.EOF:
		default:
			b.toks = append(b.toks, tok)
		}
	}
	b.walk()
	return scope
}

func (b *builder) directive(tok token.Token) {
	text := strings.TrimSpace(strings.TrimPrefix(tok.Text, "#"))
	word, rest := cutWord(text)
	var kind EntityKind
	switch word {
	case "define":
		kind = EntMacro
	case "undef":
		kind = EntUndef
	default:
		return
	}
	name, _ := cutWord(strings.TrimLeft(rest, " \t"))
	if name == "" {
		return
	}
	b.scope.Add(Entity{Name: name, Kind: kind, Offset: tok.Span.Start})
}

// cutWord отделяет ведущий идентификатор.
func cutWord(s string) (word, rest string) {
	i := 0
	for i < len(s) && (s[i] == '_' || s[i] == '$' || s[i] >= 0x80 ||
		(s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	return s[:i], s[i:]
}

func (b *builder) at(i int) token.Token {
	if i < 0 || i >= len(b.toks) {
		return token.Token{Kind: token.EOF}
	}
	return b.toks[i]
}

func (b *builder) walk() {
	for i := 0; i < len(b.toks); {
		tok := b.toks[i]
		switch {
		case tok.Kind == token.LBrace:
			b.open = append(b.open, nil)
			for _, p := range b.pending {
				b.add(p.Name, p.Kind, p.Type, p.Offset, len(b.open)-1)
			}
			b.pending = nil
			i++
		case tok.Kind == token.RBrace:
			b.closeBlock(tok.Span.Start)
			i++
		case b.stmtStart(i):
			if next, ok := b.declaration(i, len(b.open)-1); ok {
				i = next
				continue
			}
			i++
		default:
			i++
		}
	}
}

func (b *builder) closeBlock(end uint32) {
	if len(b.open) <= 1 {
		return
	}
	for _, e := range b.open[len(b.open)-1] {
		e.End = end
	}
	b.open = b.open[:len(b.open)-1]
}

func (b *builder) stmtStart(i int) bool {
	if i == 0 {
		return true
	}
	prev := b.toks[i-1]
	switch {
	case prev.Kind == token.LBrace, prev.Kind == token.RBrace, prev.Is(token.Punct, ";"):
		return true
	case prev.Kind == token.LParen:
		// for (int i = 0; ...)
		return b.at(i-2).Is(token.Ident, "for")
	}
	return false
}

func (b *builder) add(name string, kind EntityKind, t ctype.Type, off uint32, depth int) *Entity {
	e := b.scope.Add(Entity{Name: name, Kind: kind, Type: t, Offset: off})
	if depth > 0 && depth < len(b.open) {
		b.open[depth] = append(b.open[depth], e)
	}
	return e
}

// isTypeName: идентификатор - известный typedef или стандартный тип.
func (b *builder) isTypeName(name string, at uint32) bool {
	if _, ok := b.scope.Typedef(name, at); ok {
		return true
	}
	return ctype.Named(name).Kind == ctype.Std
}

// specifiers разбирает спецификаторы объявления начиная с i.
// Возвращает базовый тип, признак typedef и индекс первого токена декларатора.
func (b *builder) specifiers(i int) (base ctype.Type, isTypedef bool, next int, ok bool) {
	var words []string
	named := false
	builtin := false
loop:
	for {
		tok := b.at(i)
		if tok.Kind != token.Ident {
			break
		}
		w := tok.Text
		if _, stop := stmtKeywords[w]; stop {
			return ctype.Type{}, false, i, false
		}
		switch {
		case w == "typedef":
			isTypedef = true
			i++
		case ctype.IsQualifier(w):
			i++
		case w == "__attribute__" || w == "__declspec":
			i = b.skipGroup(i + 1)
		case w == "struct" || w == "union" || w == "enum":
			if named || builtin {
				return ctype.Type{}, false, i, false
			}
			tag := "<anonymous>"
			i++
			for b.at(i).Is(token.Ident, "__attribute__") {
				i = b.skipGroup(i + 1)
			}
			if b.at(i).Kind == token.Ident {
				tag = b.at(i).Text
				i++
			}
			if b.at(i).Kind == token.LBrace {
				if w == "enum" {
					b.enumerators(i, len(b.open)-1)
				}
				i = b.skipGroup(i)
			}
			words = append(words, w, tag)
			named = true
		case ctype.IsTypeKeyword(w):
			if named {
				return ctype.Type{}, false, i, false
			}
			builtin = true
			words = append(words, w)
			i++
		case !named && !builtin:
			if !b.isTypeName(w, tok.Span.Start) && !b.unknownTypeAhead(i) {
				return ctype.Type{}, false, i, false
			}
			words = append(words, w)
			named = true
			i++
		default:
			break loop
		}
	}
	if len(words) == 0 {
		return ctype.Type{}, false, i, false
	}
	if named && len(words) == 1 {
		if t, ok := b.scope.Typedef(words[0], b.at(i).Span.Start); ok {
			return t, isTypedef, i, true
		}
	}
	t, ok := ctype.FromWords(words)
	return t, isTypedef, i, ok
}

// unknownTypeAhead: идентификатор i не известен как тип (например, пришёл из
// непрочитанного заголовка), но за ним "T x", "T const x" или "T *x;".
func (b *builder) unknownTypeAhead(i int) bool {
	n := b.at(i + 1)
	switch {
	case n.Kind == token.Ident:
		_, stop := stmtKeywords[n.Text]
		return !stop
	case n.Is(token.Punct, "*"):
		return b.pointerDeclarator(i + 1)
	}
	return false
}

// pointerDeclarator: после '*'... идёт имя и затем ; , = [ ) - это объявление, а не умножение.
func (b *builder) pointerDeclarator(i int) bool {
	for b.at(i).Is(token.Punct, "*") || (b.at(i).Kind == token.Ident && ctype.IsQualifier(b.at(i).Text)) {
		i++
	}
	if b.at(i).Kind != token.Ident {
		return false
	}
	n := b.at(i + 1)
	return n.Is(token.Punct, ";") || n.Is(token.Punct, "=") || n.Kind == token.Comma ||
		n.Kind == token.LBracket || n.Kind == token.RParen
}

// declaration разбирает объявление на глубине depth. ok=false - это не объявление.
func (b *builder) declaration(i, depth int) (int, bool) {
	base, isTypedef, j, ok := b.specifiers(i)
	if !ok {
		return i, false
	}
	if b.at(j).Is(token.Punct, ";") {
		return j + 1, true // "struct s { ... };"
	}
	for {
		d, ok := b.declarator(j, base)
		if !ok {
			return j, j > i
		}
		j = d.next
		switch {
		case isTypedef:
			b.add(d.name, EntTypedef, d.typ, d.off, depth)
		case d.isFunc:
			b.add(d.name, EntFunction, d.typ, d.off, depth)
		default:
			b.add(d.name, EntVariable, d.typ, d.off, depth)
		}

		if d.isFunc && b.at(j).Kind == token.LBrace {
			// определение функции: параметры видны в теле
			b.pending = d.params
			return j, true
		}
		if b.at(j).Is(token.Punct, "=") {
			j = b.skipInitializer(j + 1)
		}
		switch {
		case b.at(j).Kind == token.Comma:
			j++
		case b.at(j).Is(token.Punct, ";"):
			return j + 1, true
		default:
			return j, true
		}
	}
}

type declarator struct {
	name   string
	off    uint32
	typ    ctype.Type
	isFunc bool
	params []Entity
	next   int
}

func (b *builder) declarator(j int, base ctype.Type) (declarator, bool) {
	t := base
	for {
		tok := b.at(j)
		if tok.Is(token.Punct, "*") {
			t = t.Pointer()
			j++
			continue
		}
		if tok.Kind == token.Ident && (ctype.IsQualifier(tok.Text) || tok.Text == "__restrict") {
			j++
			continue
		}
		break
	}

	// указатель на функцию или массив: (*name)(...) / (*name)[N]
	if b.at(j).Kind == token.LParen && b.at(j+1).Is(token.Punct, "*") {
		end := b.skipGroup(j)
		k := j + 1
		for b.at(k).Is(token.Punct, "*") {
			k++
		}
		name := b.at(k)
		if name.Kind != token.Ident {
			return declarator{}, false
		}
		j = end
		for b.at(j).Kind == token.LParen || b.at(j).Kind == token.LBracket {
			j = b.skipGroup(j)
		}
		return declarator{name: name.Text, off: name.Span.Start, typ: ctype.Type{Base: "void", Kind: ctype.Void, Pointers: 1}, next: j}, true
	}

	name := b.at(j)
	if name.Kind != token.Ident {
		return declarator{}, false
	}
	if _, stop := stmtKeywords[name.Text]; stop {
		return declarator{}, false
	}
	j++
	d := declarator{name: name.Text, off: name.Span.Start}

	for b.at(j).Kind == token.LBracket {
		t = t.Pointer()
		j = b.skipGroup(j)
	}
	if b.at(j).Kind == token.LParen {
		d.isFunc = true
		d.params = b.parameters(j)
		j = b.skipGroup(j)
	}
	for b.at(j).Kind == token.Ident && (b.at(j).Text == "__attribute__" || b.at(j).Text == "__asm__" || b.at(j).Text == "asm") {
		j = b.skipGroup(j + 1)
	}
	d.typ = t
	d.next = j
	return d, true
}

// parameters разбирает список параметров; в scope они попадают только
// при входе в тело определения функции.
func (b *builder) parameters(open int) []Entity {
	var params []Entity
	end := b.skipGroup(open) - 1
	i := open + 1
	for i < end {
		if base, _, j, ok := b.specifiers(i); ok {
			if d, ok := b.declarator(j, base); ok && !d.isFunc {
				params = append(params, Entity{Name: d.name, Kind: EntVariable, Type: d.typ, Offset: d.off})
			}
		}
		// до следующей запятой верхнего уровня
		for i < end && b.at(i).Kind != token.Comma {
			if b.at(i).Kind.IsOpenBracket() {
				i = b.skipGroup(i)
				continue
			}
			i++
		}
		i++
	}
	return params
}

// enumerators регистрирует константы перечисления как int.
func (b *builder) enumerators(open, depth int) {
	end := b.skipGroup(open) - 1
	expectName := true
	for i := open + 1; i < end; i++ {
		tok := b.at(i)
		switch {
		case tok.Kind.IsOpenBracket():
			i = b.skipGroup(i) - 1
		case tok.Kind == token.Comma:
			expectName = true
		case expectName && tok.Kind == token.Ident:
			b.add(tok.Text, EntVariable, ctype.Int, tok.Span.Start, depth)
			expectName = false
		}
	}
}

// skipGroup перепрыгивает сбалансированную группу, начиная с открывающей скобки;
// возвращает индекс после закрывающей.
func (b *builder) skipGroup(i int) int {
	if !b.at(i).Kind.IsOpenBracket() {
		return i
	}
	depth := 0
	for ; i < len(b.toks); i++ {
		switch k := b.toks[i].Kind; {
		case k.IsOpenBracket():
			depth++
		case k.IsCloseBracket():
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(b.toks)
}

func (b *builder) skipInitializer(i int) int {
	for i < len(b.toks) {
		tok := b.toks[i]
		switch {
		case tok.Kind.IsOpenBracket():
			i = b.skipGroup(i)
			continue
		case tok.Kind == token.Comma, tok.Is(token.Punct, ";"), tok.Kind.IsCloseBracket():
			return i
		}
		i++
	}
	return i
}
