package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/lexer"
	"cfmtlint/internal/source"
	"cfmtlint/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d *diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, *d)
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func tokenize(input string) (*lexer.Stream, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte(input))
	rep := &testReporter{}
	return lexer.Tokenize(fs.Get(fileID), lexer.Options{Reporter: rep}), rep
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected []token.Kind) []token.Token {
	t.Helper()
	st, rep := tokenize(input)
	toks := st.Tokens[:len(st.Tokens)-1]
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\ndiags: %v",
			len(expected), len(toks), input, tokensToString(toks), rep.codes())
	}
	for i, tok := range toks {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return toks
}

func TestPrintfCall(t *testing.T) {
	toks := expectTokens(t, `printf("%d\n", x);`, []token.Kind{
		token.Ident, token.LParen, token.StringLit, token.Comma, token.Space,
		token.Ident, token.RParen, token.Punct,
	})
	if toks[2].Text != `"%d\n"` {
		t.Fatalf("string literal text must be raw, got %q", toks[2].Text)
	}
}

func TestTextMatchesSpan(t *testing.T) {
	input := "int main(void) {\n  /* c */ printf(L\"%ls\", w); // tail\n}\n"
	st, _ := tokenize(input)
	for _, tok := range st.Tokens {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("token %v text %q != source %q", tok.Kind, tok.Text, got)
		}
	}
}

func TestEncodingPrefixes(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{`L"wide"`, token.StringLit},
		{`u8"utf"`, token.StringLit},
		{`u"x"`, token.StringLit},
		{`U"x"`, token.StringLit},
		{`L'x'`, token.CharLit},
		{`'\''`, token.CharLit},
	}
	for _, tc := range cases {
		toks := expectTokens(t, tc.in, []token.Kind{tc.kind})
		if toks[0].Text != tc.in {
			t.Errorf("%s: got text %q", tc.in, toks[0].Text)
		}
	}
	// идентификатор, не являющийся префиксом, остаётся отдельным токеном
	expectTokens(t, `Lx"s"`, []token.Kind{token.Ident, token.StringLit})
}

func TestNumbers(t *testing.T) {
	for _, in := range []string{"0", "123", "0x1fUL", "1.5e-3f", ".5", "0x1p+3", "10LL", "1'000"} {
		toks := expectTokens(t, in, []token.Kind{token.Number})
		if toks[0].Text != in {
			t.Errorf("number %q scanned as %q", in, toks[0].Text)
		}
	}
}

func TestPunctuators(t *testing.T) {
	toks := expectTokens(t, "a->b...<<=&&", []token.Kind{
		token.Ident, token.Punct, token.Ident, token.Punct, token.Punct, token.Punct,
	})
	want := []string{"a", "->", "b", "...", "<<=", "&&"}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d: want %q got %q", i, w, toks[i].Text)
		}
	}
}

func TestCommentsAndWhitespace(t *testing.T) {
	expectTokens(t, "a /* x */ // y\n\n\tb", []token.Kind{
		token.Ident, token.Space, token.BlockComment, token.Space, token.LineComment,
		token.Newline, token.Space, token.Ident,
	})
}

func TestDirectives(t *testing.T) {
	input := "#include <stdio.h>\n  # define X(a) \\\n   (a)\nX(1)\n"
	toks := expectTokens(t, input, []token.Kind{
		token.Directive, token.Newline,
		token.Space, token.Directive, token.Newline,
		token.Ident, token.LParen, token.Number, token.RParen, token.Newline,
	})
	if toks[0].Text != "#include <stdio.h>" {
		t.Errorf("unexpected include text %q", toks[0].Text)
	}
	if !strings.Contains(toks[3].Text, "(a)") {
		t.Errorf("continuation line must be part of the directive: %q", toks[3].Text)
	}
	// '#' не в начале строки - обычная пунктуация
	expectTokens(t, "a # b", []token.Kind{token.Ident, token.Space, token.Punct, token.Space, token.Ident})
}

func TestUnterminatedLiterals(t *testing.T) {
	cases := []struct {
		in   string
		code diag.Code
	}{
		{`"abc`, diag.LexUnterminatedString},
		{"\"abc\nx", diag.LexUnterminatedString},
		{`'a`, diag.LexUnterminatedChar},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"@", diag.LexUnknownChar},
	}
	for _, tc := range cases {
		_, rep := tokenize(tc.in)
		codes := rep.codes()
		if len(codes) != 1 || codes[0] != tc.code {
			t.Errorf("%q: expected %v, got %v", tc.in, tc.code.ID(), codes)
		}
	}
}

func TestStreamNavigation(t *testing.T) {
	st, _ := tokenize("f  ( /*c*/ x )")
	// токены: f, sp, (, sp, /*c*/, sp, x, sp, ), EOF
	if got := st.NextSignificant(1); st.At(got).Kind != token.LParen {
		t.Fatalf("NextSignificant: got %v", st.At(got).Kind)
	}
	if got := st.PrevSignificant(6); st.At(got).Kind != token.LParen {
		t.Fatalf("PrevSignificant: got %v", st.At(got).Kind)
	}
	if st.PrevSignificant(0) != -1 {
		t.Fatalf("PrevSignificant(0) must be -1")
	}
	if idx := st.IndexAt(11); st.At(idx).Text != "x" {
		t.Fatalf("IndexAt(11): got %q", st.At(idx).Text)
	}
	if st.At(100).Kind != token.EOF {
		t.Fatalf("At out of range must return EOF")
	}
}
