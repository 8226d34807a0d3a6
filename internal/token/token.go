package token

import (
	"strings"

	"cfmtlint/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Category returns the stream category of the token.
func (t Token) Category() Category { return t.Kind.Category() }

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}

// LiteralPrefix returns the encoding prefix of a string or char literal ("", "L", "u", "U", "u8").
func (t Token) LiteralPrefix() string {
	if t.Kind != StringLit && t.Kind != CharLit {
		return ""
	}
	i := strings.IndexAny(t.Text, "\"'")
	if i <= 0 {
		return ""
	}
	return t.Text[:i]
}

// LiteralBody returns the raw text between the quotes of a string or char literal.
// Escape sequences are left as written.
func (t Token) LiteralBody() string {
	if t.Kind != StringLit && t.Kind != CharLit {
		return ""
	}
	i := strings.IndexAny(t.Text, "\"'")
	if i < 0 || len(t.Text) < i+2 {
		return ""
	}
	return t.Text[i+1 : len(t.Text)-1]
}
