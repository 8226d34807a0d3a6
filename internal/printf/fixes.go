package printf

import (
	"fmt"
	"strings"

	"cfmtlint/internal/ctype"
)

// SuggestFix returns the replacement text for the directive an error points at.
// ok is false for kinds without an automatic repair.
func SuggestFix(e FormatError, d Directive) (replacement string, ok bool) {
	switch e.Kind {
	case ErrFlag:
		rule, _ := Lookup(d.Conv)
		return d.rebuild(keepFlags(d.Flags, rule), d.Specifier()), true
	case ErrLength:
		return d.rebuild(d.Flags, string(d.Conv)), true
	case ErrTypeMismatch:
		spec := "p"
		if t, parsed := ctype.Parse(e.TypeText); parsed {
			spec = Preferred(t)
		}
		rule, _ := Lookup(spec[len(spec)-1])
		return d.rebuild(keepFlags(d.Flags, rule), spec), true
	case ErrTypeWildcard, ErrTypeNotExist, ErrArgs:
		return "", false
	}
	panic(fmt.Sprintf("printf: SuggestFix: unhandled error kind %v", e.Kind))
}

func keepFlags(flags string, rule Rule) string {
	var b strings.Builder
	for i := 0; i < len(flags); i++ {
		if rule.AllowsFlag(flags[i]) {
			b.WriteByte(flags[i])
		}
	}
	return b.String()
}
