package printf

import "fmt"

// ErrorKind is the closed set of format problems.
type ErrorKind uint8

const (
	ErrFlag ErrorKind = iota
	ErrLength
	ErrTypeMismatch
	ErrTypeWildcard
	ErrTypeNotExist
	ErrArgs
)

// ErrorKinds lists every kind in declaration order.
var ErrorKinds = []ErrorKind{ErrFlag, ErrLength, ErrTypeMismatch, ErrTypeWildcard, ErrTypeNotExist, ErrArgs}

func (k ErrorKind) String() string {
	switch k {
	case ErrFlag:
		return "FLAG"
	case ErrLength:
		return "LENGTH"
	case ErrTypeMismatch:
		return "TYPE_MISMATCH"
	case ErrTypeWildcard:
		return "TYPE_WILDCARD"
	case ErrTypeNotExist:
		return "TYPE_NOTEXIST"
	case ErrArgs:
		return "ARGS"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Key is the lower-case name used in configuration files.
func (k ErrorKind) Key() string {
	switch k {
	case ErrFlag:
		return "flag"
	case ErrLength:
		return "length"
	case ErrTypeMismatch:
		return "type_mismatch"
	case ErrTypeWildcard:
		return "type_wildcard"
	case ErrTypeNotExist:
		return "type_notexist"
	case ErrArgs:
		return "args"
	}
	return ""
}

// FormatError is one problem found in a call.
type FormatError struct {
	Kind ErrorKind
	// Directive is the index of the offending directive, -1 for ARGS.
	Directive int
	// Start and End cover the directive in the format text; zero for ARGS.
	Start, End int
	// FlagText is the offending flag (FLAG) or length modifier (LENGTH).
	FlagText string
	// SpecifierText is length modifier plus conversion, e.g. "ld".
	SpecifierText string
	// TypeText is the argument type for TYPE_MISMATCH and TYPE_WILDCARD.
	TypeText string
	// Arg is the zero-based index of the argument involved, -1 if none.
	Arg int
	// Expected and Supplied argument counts (ARGS only).
	Expected, Supplied int
	// Incomplete marks a TYPE_NOTEXIST directive cut off by the end of the format.
	Incomplete bool
}

// Message renders a short human readable description.
func (e FormatError) Message() string {
	switch e.Kind {
	case ErrFlag:
		return fmt.Sprintf("flag '%s' is not allowed with conversion '%s'", e.FlagText, e.SpecifierText)
	case ErrLength:
		return fmt.Sprintf("length modifier '%s' is not allowed with conversion '%s'", e.FlagText, e.SpecifierText)
	case ErrTypeMismatch:
		return fmt.Sprintf("conversion '%s' does not match argument %d of type '%s'", e.SpecifierText, e.Arg+1, e.TypeText)
	case ErrTypeWildcard:
		return fmt.Sprintf("'*' argument %d has type '%s', expected 'int'", e.Arg+1, e.TypeText)
	case ErrTypeNotExist:
		if e.Incomplete {
			return "incomplete conversion specification at end of format"
		}
		return fmt.Sprintf("unknown conversion specifier '%s'", e.SpecifierText)
	case ErrArgs:
		return fmt.Sprintf("format expects %d %s, but %d %s supplied",
			e.Expected, plural(e.Expected, "argument", "arguments"),
			e.Supplied, plural(e.Supplied, "was", "were"))
	}
	return e.Kind.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
