package lexer

import (
	"strings"
	"testing"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
	"cfmtlint/internal/token"
)

func TestTokenLengthLimit(t *testing.T) {
	cases := []struct {
		name    string
		content string
		kind    token.Kind
		tooLong bool
	}{
		{"ident at limit", strings.Repeat("b", maxTokenLength), token.Ident, false},
		{"ident over limit", strings.Repeat("a", maxTokenLength+1), token.Invalid, true},
		{"string over limit", `"` + strings.Repeat("x", maxTokenLength) + `"; printf("%d", 1);`, token.Invalid, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("limit.c", []byte(tc.content)))
			bag := diag.NewBag(4)
			lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

			if tok := lx.Next(); tok.Kind != tc.kind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tc.kind)
			}
			if !tc.tooLong {
				if bag.Len() != 0 {
					t.Fatalf("unexpected diagnostics: %v", bag.Items())
				}
				return
			}
			if bag.Len() != 1 || bag.Items()[0].Code != diag.LexTokenTooLong {
				t.Fatalf("want one LexTokenTooLong, got %v", bag.Items())
			}
			// остаток файла пропускается
			if next := lx.Next(); next.Kind != token.EOF {
				t.Fatalf("expected EOF after oversized token, got %v", next.Kind)
			}
		})
	}
}
