package printf

import "strings"

// Length is a length modifier.
type Length uint8

const (
	LenNone Length = iota
	LenHH
	LenH
	LenL
	LenLL
	LenBigL
	LenJ
	LenZ
	LenT
)

var lengthText = [...]string{
	LenNone: "",
	LenHH:   "hh",
	LenH:    "h",
	LenL:    "l",
	LenLL:   "ll",
	LenBigL: "L",
	LenJ:    "j",
	LenZ:    "z",
	LenT:    "t",
}

func (l Length) String() string {
	if int(l) < len(lengthText) {
		return lengthText[l]
	}
	return "?"
}

// lengthOrder: длинные модификаторы раньше своих префиксов.
var lengthOrder = []Length{LenHH, LenH, LenLL, LenL, LenBigL, LenJ, LenZ, LenT}

// AmountKind says how a width or precision is given.
type AmountKind uint8

const (
	AmountNone AmountKind = iota
	AmountLiteral
	// AmountWildcard is '*': the value is taken from an int argument.
	AmountWildcard
)

// Amount is a width or precision.
type Amount struct {
	Kind  AmountKind
	Value int
	// Text is the raw spelling: "12", "*", ".3", ".*" or "." (precision without digits).
	Text string
}

// Directive is one conversion specification, "%" through the conversion character.
type Directive struct {
	Start, End int
	Text       string
	// Flags in written order, duplicates kept.
	Flags     string
	Width     Amount
	Precision Amount
	Length    Length
	// Conv is 0 when the format ended right after the directive's prefix.
	Conv byte
}

// Specifier returns the length modifier and conversion character, e.g. "ld".
func (d Directive) Specifier() string {
	if d.Conv == 0 {
		return d.Length.String()
	}
	return d.Length.String() + string(d.Conv)
}

// Wildcards returns how many '*' arguments the directive consumes before its own.
func (d Directive) Wildcards() int {
	n := 0
	if d.Width.Kind == AmountWildcard {
		n++
	}
	if d.Precision.Kind == AmountWildcard {
		n++
	}
	return n
}

// rebuild renders the directive with the given flags and specifier.
func (d Directive) rebuild(flags, spec string) string {
	var b strings.Builder
	b.Grow(len(d.Text))
	b.WriteByte('%')
	b.WriteString(flags)
	b.WriteString(d.Width.Text)
	b.WriteString(d.Precision.Text)
	b.WriteString(spec)
	return b.String()
}

// Run is a literal stretch of format text between directives ("%%" included).
type Run struct {
	Start, End int
}

// Format is a scanned format string.
type Format struct {
	Text       string
	Directives []Directive
	Literals   []Run
}
