package callsite_test

import (
	"testing"

	"cfmtlint/internal/callsite"
	"cfmtlint/internal/lexer"
	"cfmtlint/internal/printf"
	"cfmtlint/internal/source"
	"cfmtlint/internal/token"
)

func stream(t *testing.T, src string) *lexer.Stream {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(src))
	return lexer.Tokenize(fs.Get(id), lexer.Options{})
}

type macroSet map[string]bool

func (m macroSet) IsMacro(name string, _ uint32) bool { return m[name] }

func extractAll(t *testing.T, src string, macros callsite.MacroLookup) []*callsite.CallSite {
	t.Helper()
	st := stream(t, src)
	var out []*callsite.CallSite
	for _, c := range callsite.Locate(st, callsite.LocateOptions{}) {
		if cs, ok := callsite.Extract(st, c, macros); ok {
			out = append(out, cs)
		}
	}
	return out
}

func extractOne(t *testing.T, src string, macros callsite.MacroLookup) *callsite.CallSite {
	t.Helper()
	sites := extractAll(t, src, macros)
	if len(sites) != 1 {
		t.Fatalf("expected 1 call site, got %d", len(sites))
	}
	return sites[0]
}

func paramTexts(cs *callsite.CallSite) []string {
	out := make([]string, 0, len(cs.Params))
	for _, p := range cs.Params {
		out = append(out, p.Text)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		ok    bool
		index int
		va    bool
	}{
		{"printf", true, 0, false},
		{"vprintf", true, 0, true},
		{"fprintf", true, 1, false},
		{"sprintf", true, 1, false},
		{"snprintf", true, 2, false},
		{"vsnprintf", true, 2, true},
		{"vfprintf", true, 1, true},
		{"my_printf", true, 1, false},
		{"print", false, 0, false},
		{"printf_s", false, 0, false},
	}
	for _, tc := range cases {
		f, ok := callsite.Classify(tc.name)
		if ok != tc.ok {
			t.Errorf("Classify(%q) ok = %v, want %v", tc.name, ok, tc.ok)
			continue
		}
		if ok && (f.FormatIndex != tc.index || f.VaList != tc.va) {
			t.Errorf("Classify(%q) = index %d va %v, want %d %v", tc.name, f.FormatIndex, f.VaList, tc.index, tc.va)
		}
	}
}

func TestConcatenatedFormat(t *testing.T) {
	src := `void g(int x) { printf("a" "b" "%d", x); }`
	cs := extractOne(t, src, nil)
	if cs.Format != "ab%d" {
		t.Fatalf("format = %q, want %q", cs.Format, "ab%d")
	}
	f := printf.Scan(cs.Format)
	if len(f.Directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(f.Directives))
	}
	if got := paramTexts(cs); !equal(got, []string{"x"}) {
		t.Fatalf("params = %v", got)
	}
}

func TestFormatOffsets(t *testing.T) {
	src := `f() { printf("a" "b%d", 1); }`
	cs := extractOne(t, src, nil)
	d := printf.Scan(cs.Format).Directives[0]
	sp, contiguous := cs.SourceSpan(d.Start, d.End)
	if !contiguous {
		t.Fatal("directive inside one literal must be contiguous")
	}
	if got := src[sp.Start:sp.End]; got != "%d" {
		t.Fatalf("source text = %q, want %%d", got)
	}
	if got := src[cs.Span.Start:cs.Span.End]; got != `printf("a" "b%d", 1)` {
		t.Fatalf("call span = %q", got)
	}
}

func TestSplitDirectiveIsNotContiguous(t *testing.T) {
	src := `f() { printf("%l" "d", 1L); }`
	cs := extractOne(t, src, nil)
	d := printf.Scan(cs.Format).Directives[0]
	if _, contiguous := cs.SourceSpan(d.Start, d.End); contiguous {
		t.Fatal("directive split across literals must not be contiguous")
	}
}

func TestNestedArguments(t *testing.T) {
	src := `f() { fprintf(stderr, "%d %s %c\n", max(a, b), names[i + 1], (c)); }`
	cs := extractOne(t, src, nil)
	want := []string{"max(a, b)", "names[i + 1]", "(c)"}
	if got := paramTexts(cs); !equal(got, want) {
		t.Fatalf("params = %q, want %q", got, want)
	}
	if cs.Format != `%d %s %c\n` {
		t.Fatalf("format = %q", cs.Format)
	}
}

func TestCommentsSkipped(t *testing.T) {
	src := "f() { printf(/* fmt */ \"%d\" // x\n , /* v */ v); }"
	cs := extractOne(t, src, nil)
	if got := paramTexts(cs); !equal(got, []string{"v"}) {
		t.Fatalf("params = %q", got)
	}
}

func TestSnprintfFormatIndex(t *testing.T) {
	src := `f() { snprintf(buf, sizeof(buf), "%s", name); }`
	cs := extractOne(t, src, nil)
	if cs.Format != "%s" {
		t.Fatalf("format = %q", cs.Format)
	}
	if got := paramTexts(cs); !equal(got, []string{"name"}) {
		t.Fatalf("params = %q", got)
	}
}

func TestNoArguments(t *testing.T) {
	cs := extractOne(t, `f() { printf("hello\n"); }`, nil)
	if len(cs.Params) != 0 {
		t.Fatalf("expected no params, got %q", paramTexts(cs))
	}
}

func TestAbortOnNonLiteralFormat(t *testing.T) {
	cases := []string{
		`f() { printf(fmt, x); }`,
		`f() { printf("%d" SUFFIX, x); }`,
		`f() { fprintf(stderr); }`,
		`int printf(const char *fmt, ...);`,
		`f() { printf("%d", x`,
	}
	for _, src := range cases {
		if sites := extractAll(t, src, nil); len(sites) != 0 {
			t.Errorf("%q: expected extraction to abort, got %d sites", src, len(sites))
		}
	}
}

func TestMacroParameterUnresolvable(t *testing.T) {
	src := `f() { printf("%d %d", COUNT + 1, n); }`
	cs := extractOne(t, src, macroSet{"COUNT": true})
	if cs.Params[0].Resolvable {
		t.Fatal("macro parameter must be unresolvable")
	}
	if !cs.Params[1].Resolvable {
		t.Fatal("plain parameter must stay resolvable")
	}
}

func TestLocateSkipsMembers(t *testing.T) {
	st := stream(t, `f() { log.printf("%d", 1); p->printf("x"); printf("y"); }`)
	cands := callsite.Locate(st, callsite.LocateOptions{})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
}

func TestLocateStdioFilter(t *testing.T) {
	without := stream(t, "f() { printf(\"%d\", 1); log_printf(\"%d\", 2); }")
	opts := callsite.LocateOptions{RequireStdio: true, Functions: map[string]int{"log_printf": 0}}
	cands := callsite.Locate(without, opts)
	if len(cands) != 1 || cands[0].Func.Name != "log_printf" {
		t.Fatalf("only configured functions pass without stdio, got %+v", cands)
	}

	with := stream(t, "#include <stdio.h>\nf() { printf(\"%d\", 1); }")
	if got := callsite.Locate(with, callsite.LocateOptions{RequireStdio: true}); len(got) != 1 {
		t.Fatalf("expected printf with stdio included, got %d", len(got))
	}
	if !callsite.HasStdio(stream(t, "#  include   <cstdio>\n")) {
		t.Fatal("<cstdio> must satisfy the include filter")
	}
}

func TestLocateIgnoresDirectives(t *testing.T) {
	st := stream(t, "#define LOG(x) printf(\"%d\", x)\n")
	if got := callsite.Locate(st, callsite.LocateOptions{}); len(got) != 0 {
		t.Fatalf("calls inside directives must be ignored, got %d", len(got))
	}
}

func TestLocateOpenParen(t *testing.T) {
	st := stream(t, "f() { printf /* c */ (\"%d\", 1); g(printf); }")
	cands := callsite.Locate(st, callsite.LocateOptions{})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if st.At(c.Ident).Text != "printf" {
		t.Fatalf("ident = %q", st.At(c.Ident).Text)
	}
	if c.Open <= c.Ident || st.At(c.Open).Kind != token.LParen {
		t.Fatalf("open = %d (%v), ident = %d", c.Open, st.At(c.Open).Kind, c.Ident)
	}
}
