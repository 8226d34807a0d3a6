package token_test

import (
	"testing"

	"cfmtlint/internal/token"
)

func TestCategory(t *testing.T) {
	cases := map[token.Kind]token.Category{
		token.LParen:       token.CatLeftParen,
		token.RParen:       token.CatRightParen,
		token.Comma:        token.CatComma,
		token.StringLit:    token.CatStringLiteral,
		token.Space:        token.CatWhitespace,
		token.Newline:      token.CatWhitespace,
		token.LineComment:  token.CatComment,
		token.BlockComment: token.CatComment,
		token.Directive:    token.CatComment,
		token.Ident:        token.CatOther,
		token.CharLit:      token.CatOther,
		token.LBracket:     token.CatOther,
	}
	for k, want := range cases {
		if got := k.Category(); got != want {
			t.Errorf("%v.Category() = %v, want %v", k, got, want)
		}
	}
}

func TestIsTrivia(t *testing.T) {
	for _, k := range []token.Kind{token.Space, token.Newline, token.LineComment, token.BlockComment} {
		if !k.IsTrivia() {
			t.Errorf("%v should be trivia", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Comma, token.StringLit, token.Directive} {
		if k.IsTrivia() {
			t.Errorf("%v must NOT be trivia", k)
		}
	}
}

func TestLiteralParts(t *testing.T) {
	cases := []struct {
		tok          token.Token
		prefix, body string
	}{
		{token.Token{Kind: token.StringLit, Text: `"a%d\n"`}, "", `a%d\n`},
		{token.Token{Kind: token.StringLit, Text: `L"wide"`}, "L", "wide"},
		{token.Token{Kind: token.StringLit, Text: `u8""`}, "u8", ""},
		{token.Token{Kind: token.CharLit, Text: `'x'`}, "", "x"},
		{token.Token{Kind: token.Ident, Text: `x`}, "", ""},
	}
	for _, tc := range cases {
		if got := tc.tok.LiteralPrefix(); got != tc.prefix {
			t.Errorf("LiteralPrefix(%s) = %q, want %q", tc.tok.Text, got, tc.prefix)
		}
		if got := tc.tok.LiteralBody(); got != tc.body {
			t.Errorf("LiteralBody(%s) = %q, want %q", tc.tok.Text, got, tc.body)
		}
	}
}
