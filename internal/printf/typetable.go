package printf

import (
	"strings"

	"cfmtlint/internal/ctype"
)

// typeFormats maps a normalized C type to the specifiers (length + conversion)
// that accept it. The first entry is the one suggested by fixes.
var typeFormats = map[string][]string{
	"char":               split("c d i hhd hhi"),
	"signed char":        split("hhd hhi c d i"),
	"unsigned char":      split("c hhu hho hhx hhX u o x X"),
	"short":              split("hd hi d i"),
	"unsigned short":     split("hu ho hx hX u o x X"),
	"int":                split("d i c"),
	"unsigned int":       split("u o x X c"),
	"long":               split("ld li"),
	"unsigned long":      split("lu lo lx lX"),
	"long long":          split("lld lli"),
	"unsigned long long": split("llu llo llx llX"),
	"_Bool":              split("d i"),
	"bool":               split("d i"),
	"intmax_t":           split("jd ji"),
	"uintmax_t":          split("ju jo jx jX"),
	"size_t":             split("zu zo zx zX"),
	"ssize_t":            split("zd zi"),
	"ptrdiff_t":          split("td ti"),
	"wchar_t":            split("lc C"),
	"wint_t":             split("lc C"),
	"float":              split("f F e E g G a A lf lF le lE lg lG la lA"),
	"double":             split("f F e E g G a A lf lF le lE lg lG la lA"),
	"long double":        split("Lf LF Le LE Lg LG La LA"),

	"char *":          split("s p hhn"),
	"signed char *":   split("hhn p"),
	"unsigned char *": split("s p"),
	"wchar_t *":       split("s p ls S"),
	"short *":         split("hn p"),
	"int *":           split("n p"),
	"long *":          split("ln p"),
	"long long *":     split("lln p"),
	"intmax_t *":      split("jn p"),
	"size_t *":        split("zn p"),
	"ptrdiff_t *":     split("tn p"),
	"void *":          split("p"),
}

var anyPointer = []string{"p"}

func split(s string) []string { return strings.Fields(s) }

// Formats returns the specifiers accepted for an argument of type t.
// known is false when nothing can be said about t (unresolved typedef, void):
// the type check must be skipped. Struct and union values are known but
// accept nothing.
func Formats(t ctype.Type) (specs []string, known bool) {
	if t.IsZero() {
		return nil, false
	}
	if t.IsPointer() {
		if specs, ok := typeFormats[t.String()]; ok {
			return specs, true
		}
		return anyPointer, true
	}
	switch t.Kind {
	case ctype.Enum:
		return typeFormats["int"], true
	case ctype.Struct, ctype.Union:
		return nil, true
	}
	specs, ok := typeFormats[t.Base]
	return specs, ok
}

// Accepts reports whether specifier (e.g. "ld") accepts type t. known follows Formats.
func Accepts(t ctype.Type, specifier string) (ok, known bool) {
	specs, known := Formats(t)
	if !known {
		return false, false
	}
	for _, s := range specs {
		if s == specifier {
			return true, true
		}
	}
	return false, true
}

// Preferred returns the specifier a fix should substitute for type t, falling back to "p".
func Preferred(t ctype.Type) string {
	if specs, known := Formats(t); known && len(specs) > 0 {
		return specs[0]
	}
	return "p"
}
