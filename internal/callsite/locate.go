package callsite

import (
	"strings"

	"cfmtlint/internal/lexer"
	"cfmtlint/internal/token"
)

// Func describes a printf-like function.
type Func struct {
	Name string
	// FormatIndex is the zero-based position of the format parameter.
	FormatIndex int
	// VaList marks v*printf: arguments come as one va_list.
	VaList bool
	// Configured functions come from the project config and bypass the include filter.
	Configured bool
}

// vaListFuncs take a va_list instead of variadic arguments.
var vaListFuncs = map[string]struct{}{
	"vprintf": {}, "vfprintf": {}, "vsprintf": {}, "vsnprintf": {}, "vdprintf": {},
	"vasprintf": {}, "vwprintf": {}, "vfwprintf": {}, "vswprintf": {},
}

// Classify reports whether name belongs to the printf family and where its format is.
func Classify(name string) (Func, bool) {
	if !strings.HasSuffix(name, "printf") {
		return Func{}, false
	}
	f := Func{Name: name, FormatIndex: 1}
	switch name {
	case "printf", "vprintf":
		f.FormatIndex = 0
	case "snprintf", "vsnprintf":
		f.FormatIndex = 2
	}
	_, f.VaList = vaListFuncs[name]
	return f, true
}

// LocateOptions control candidate filtering.
type LocateOptions struct {
	// RequireStdio skips built-in functions unless the file includes <stdio.h>.
	RequireStdio bool
	// Functions maps extra function names to their format index.
	Functions map[string]int
}

// Candidate is a located call: Ident is the token index of the function
// name and Open the index of its '('.
type Candidate struct {
	Func  Func
	Ident int
	Open  int
}

// HasStdio reports whether the stream includes the standard I/O header.
func HasStdio(st *lexer.Stream) bool {
	for _, tok := range st.Tokens {
		if tok.Kind != token.Directive {
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(tok.Text, "#"))
		rest, ok := strings.CutPrefix(text, "include")
		if !ok {
			continue
		}
		switch strings.TrimSpace(rest) {
		case "<stdio.h>", "<cstdio>":
			return true
		}
	}
	return false
}

// Locate returns the printf-family calls of st in source order.
func Locate(st *lexer.Stream, opts LocateOptions) []Candidate {
	stdio := !opts.RequireStdio || HasStdio(st)
	var out []Candidate
	for i, tok := range st.Tokens {
		if tok.Kind != token.Ident {
			continue
		}
		f, ok := lookupFunc(tok.Text, opts.Functions)
		if !ok || (!f.Configured && !stdio) {
			continue
		}
		open := st.NextSignificant(i + 1)
		if st.At(open).Kind != token.LParen {
			continue
		}
		if prev := st.PrevSignificant(i); prev >= 0 {
			if p := st.At(prev); p.Is(token.Punct, ".") || p.Is(token.Punct, "->") {
				continue
			}
		}
		out = append(out, Candidate{Func: f, Ident: i, Open: open})
	}
	return out
}

func lookupFunc(name string, extra map[string]int) (Func, bool) {
	if idx, ok := extra[name]; ok {
		f := Func{Name: name, FormatIndex: idx, Configured: true}
		_, f.VaList = vaListFuncs[name]
		return f, true
	}
	return Classify(name)
}
