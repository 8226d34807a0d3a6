package cresolve

import (
	"cfmtlint/internal/ctype"
	"cfmtlint/internal/lexer"
	"cfmtlint/internal/token"
)

// Result is the outcome of typing one expression.
type Result struct {
	// Type is zero when the expression has no statically known type.
	Type ctype.Type
	// Resolvable is false when a macro takes part in the expression.
	Resolvable bool
}

// Resolver types expressions against a Scope.
type Resolver struct {
	scope *Scope
}

// New builds the scope of st and returns a resolver over it.
func New(st *lexer.Stream, opts Options) *Resolver {
	return &Resolver{scope: Build(st, opts)}
}

// NewWithScope returns a resolver over an existing scope.
func NewWithScope(scope *Scope) *Resolver {
	return &Resolver{scope: scope}
}

// Scope exposes the underlying scope.
func (r *Resolver) Scope() *Scope { return r.scope }

// IsMacro reports whether name is a macro at offset at.
func (r *Resolver) IsMacro(name string, at uint32) bool {
	return r.scope.IsMacro(name, at)
}

// Resolve types the expression formed by toks. Trivia are ignored.
func (r *Resolver) Resolve(toks []token.Token) Result {
	sig := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind.IsTrivia() || t.Kind == token.Directive {
			continue
		}
		if t.Kind == token.Ident && r.scope.IsMacro(t.Text, t.Span.Start) {
			return Result{Resolvable: false}
		}
		sig = append(sig, t)
	}
	if len(sig) == 0 {
		return Result{Resolvable: true}
	}
	p := &exprParser{scope: r.scope, toks: sig}
	t, ok := p.unary()
	if !ok || p.pos != len(sig) {
		return Result{Resolvable: true}
	}
	return Result{Type: t, Resolvable: true}
}
