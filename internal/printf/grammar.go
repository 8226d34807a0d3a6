package printf

import "strings"

// LengthSet is a bitset of allowed length modifiers.
type LengthSet uint16

func lengths(ls ...Length) LengthSet {
	var s LengthSet
	for _, l := range ls {
		s |= 1 << l
	}
	return s
}

// Has reports whether l is in the set. LenNone is always allowed.
func (s LengthSet) Has(l Length) bool {
	return l == LenNone || s&(1<<l) != 0
}

// Rule describes one conversion character.
type Rule struct {
	Flags   string
	Lengths LengthSet
	// Consumes is false only for '%' written with flags or width ("%5%").
	Consumes bool
}

// AllowsFlag reports whether flag may be used with the conversion.
func (r Rule) AllowsFlag(flag byte) bool {
	return strings.IndexByte(r.Flags, flag) >= 0
}

const flagChars = "-+ 0#"

var (
	intLengths   = lengths(LenHH, LenH, LenL, LenLL, LenJ, LenZ, LenT)
	floatLengths = lengths(LenL, LenBigL)
)

var grammar = map[byte]Rule{
	'd': {Flags: "-+ 0", Lengths: intLengths, Consumes: true},
	'i': {Flags: "-+ 0", Lengths: intLengths, Consumes: true},
	'u': {Flags: "-0", Lengths: intLengths, Consumes: true},
	'o': {Flags: "-0#", Lengths: intLengths, Consumes: true},
	'x': {Flags: "-0#", Lengths: intLengths, Consumes: true},
	'X': {Flags: "-0#", Lengths: intLengths, Consumes: true},
	'f': {Flags: "-+ 0#", Lengths: floatLengths, Consumes: true},
	'F': {Flags: "-+ 0#", Lengths: floatLengths, Consumes: true},
	'e': {Flags: "-+ 0#", Lengths: floatLengths, Consumes: true},
	'E': {Flags: "-+ 0#", Lengths: floatLengths, Consumes: true},
	'g': {Flags: "-+ 0#", Lengths: floatLengths, Consumes: true},
	'G': {Flags: "-+ 0#", Lengths: floatLengths, Consumes: true},
	'a': {Flags: "-+ 0#", Lengths: floatLengths, Consumes: true},
	'A': {Flags: "-+ 0#", Lengths: floatLengths, Consumes: true},
	'c': {Flags: "-", Lengths: lengths(LenL), Consumes: true},
	's': {Flags: "-", Lengths: lengths(LenL), Consumes: true},
	'C': {Flags: "-", Consumes: true},
	'S': {Flags: "-", Consumes: true},
	'p': {Flags: "-", Consumes: true},
	'n': {Lengths: intLengths, Consumes: true},
	'%': {},
}

// Lookup returns the rule for a conversion character.
func Lookup(conv byte) (Rule, bool) {
	r, ok := grammar[conv]
	return r, ok
}

// Conversions returns the known conversion characters in stable order.
func Conversions() []byte {
	return []byte("diuoxXfFeEgGaAcsCSpn%")
}
