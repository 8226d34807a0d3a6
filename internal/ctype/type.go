package ctype

import "strings"

// Kind classifies the base of a Type.
type Kind uint8

const (
	// Unknown is an unrecognised name, typically an unresolved typedef.
	Unknown Kind = iota
	Void
	Integer
	Floating
	// Std is a standard library typedef that the printf table knows by name (size_t, wchar_t, ...).
	Std
	Struct
	Union
	Enum
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Integer:
		return "integer"
	case Floating:
		return "floating"
	case Std:
		return "std"
	case Struct:
		return "struct"
	case Union:
		return "union"
	case Enum:
		return "enum"
	}
	return "unknown"
}

// Type is a normalized C type.
type Type struct {
	Base     string
	Kind     Kind
	Pointers int
}

// String returns the normalized spelling: base, then " " and one '*' per pointer level.
func (t Type) String() string {
	if t.Pointers == 0 {
		return t.Base
	}
	return t.Base + " " + strings.Repeat("*", t.Pointers)
}

// IsZero reports whether t is the zero Type (no information).
func (t Type) IsZero() bool { return t.Base == "" }

// IsPointer reports whether t has at least one level of indirection.
func (t Type) IsPointer() bool { return t.Pointers > 0 }

// Pointer returns a pointer to t.
func (t Type) Pointer() Type {
	t.Pointers++
	return t
}

// Deref removes one pointer level. ok is false for non-pointers.
func (t Type) Deref() (Type, bool) {
	if t.Pointers == 0 {
		return Type{}, false
	}
	t.Pointers--
	return t, true
}

// IsArithmetic reports whether t is an integer, floating, enum or std arithmetic value.
func (t Type) IsArithmetic() bool {
	if t.Pointers > 0 {
		return false
	}
	switch t.Kind {
	case Integer, Floating, Enum, Std:
		return true
	}
	return false
}

// IsAggregate reports whether t is a struct or union value.
func (t Type) IsAggregate() bool {
	return t.Pointers == 0 && (t.Kind == Struct || t.Kind == Union)
}

// PromotesToInt reports whether a value of t is passed to a variadic function as int.
// This is the set accepted for '*' width and precision arguments.
func (t Type) PromotesToInt() bool {
	if t.Pointers > 0 {
		return false
	}
	if t.Kind == Enum {
		return true
	}
	switch t.Base {
	case "int", "char", "signed char", "unsigned char", "short", "unsigned short", "_Bool", "bool":
		return true
	}
	return false
}

// Named returns a Type for a bare name, classifying it as Std or Unknown.
func Named(name string) Type {
	if _, ok := stdTypedefs[name]; ok {
		return Type{Base: name, Kind: Std}
	}
	return Type{Base: name, Kind: Unknown}
}

// Builtin constructors used by the resolver for literals.
var (
	Int        = Type{Base: "int", Kind: Integer}
	UnsignedT  = Type{Base: "unsigned int", Kind: Integer}
	Long       = Type{Base: "long", Kind: Integer}
	ULong      = Type{Base: "unsigned long", Kind: Integer}
	LongLong   = Type{Base: "long long", Kind: Integer}
	ULongLong  = Type{Base: "unsigned long long", Kind: Integer}
	Double     = Type{Base: "double", Kind: Floating}
	Float      = Type{Base: "float", Kind: Floating}
	LongDouble = Type{Base: "long double", Kind: Floating}
	Char       = Type{Base: "char", Kind: Integer}
	SizeT      = Type{Base: "size_t", Kind: Std}
	WCharT     = Type{Base: "wchar_t", Kind: Std}
	CharPtr    = Type{Base: "char", Kind: Integer, Pointers: 1}
	WCharPtr   = Type{Base: "wchar_t", Kind: Std, Pointers: 1}
)

var stdTypedefs = map[string]struct{}{
	"size_t":    {},
	"ssize_t":   {},
	"ptrdiff_t": {},
	"intmax_t":  {},
	"uintmax_t": {},
	"wchar_t":   {},
	"wint_t":    {},
	"char16_t":  {},
	"char32_t":  {},
	"bool":      {},
}
