package ctype

import (
	"strings"
)

var qualifiers = map[string]struct{}{
	"const": {}, "volatile": {}, "restrict": {}, "__restrict": {}, "__restrict__": {},
	"_Atomic": {}, "register": {}, "static": {}, "extern": {}, "auto": {},
	"inline": {}, "__inline": {}, "__inline__": {}, "thread_local": {}, "_Thread_local": {},
	"__const": {}, "__volatile__": {}, "constexpr": {}, "mutable": {},
}

// IsQualifier reports whether word is a qualifier or storage class dropped by Parse.
func IsQualifier(word string) bool {
	_, ok := qualifiers[word]
	return ok
}

var integerWords = map[string]struct{}{
	"signed": {}, "unsigned": {}, "char": {}, "short": {}, "int": {}, "long": {},
	"__signed": {}, "__signed__": {},
}

// IsTypeKeyword reports whether word starts or continues a builtin type spelling.
func IsTypeKeyword(word string) bool {
	if _, ok := integerWords[word]; ok {
		return true
	}
	switch word {
	case "float", "double", "void", "_Bool", "bool", "_Complex", "struct", "union", "enum":
		return true
	}
	return false
}

// Parse normalizes a C type spelling such as "const unsigned long int *" or
// "struct point **". Array suffixes decay to one pointer level. ok is false
// for empty or unparseable input.
func Parse(s string) (Type, bool) {
	words, ptrs := splitType(s)
	if len(words) == 0 {
		return Type{}, false
	}
	t, ok := FromWords(words)
	if !ok {
		return Type{}, false
	}
	t.Pointers += ptrs
	return t, true
}

// splitType разбивает строку на слова и считает '*' и '[]'.
func splitType(s string) (words []string, ptrs int) {
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case depth > 0:
			if c == ']' {
				depth--
			}
		case c == '*':
			flush()
			ptrs++
		case c == '[':
			flush()
			ptrs++
			depth++
		case c == ' ' || c == '\t' || c == '\n' || c == '&':
			flush()
		default:
			b.WriteByte(c)
		}
	}
	flush()
	return words, ptrs
}

// FromWords builds a Type from declaration specifier words (no declarator).
// Qualifiers are skipped; the remaining words must form one type.
func FromWords(words []string) (Type, bool) {
	var (
		signed, unsigned       bool
		chars, shorts, ints    int
		longs                  int
		floats, doubles, voids int
		bools                  int
		tagKind                Kind
		tagName, named         string
		sawSomething           bool
	)
	for i := 0; i < len(words); i++ {
		w := words[i]
		if IsQualifier(w) {
			continue
		}
		sawSomething = true
		switch w {
		case "signed", "__signed", "__signed__":
			signed = true
		case "unsigned":
			unsigned = true
		case "char":
			chars++
		case "short":
			shorts++
		case "int":
			ints++
		case "long":
			longs++
		case "float":
			floats++
		case "double":
			doubles++
		case "void":
			voids++
		case "_Bool":
			bools++
		case "_Complex":
			// complex значения printf не печатает; оставляем флоат-тип
		case "struct", "union", "enum":
			if i+1 >= len(words) {
				return Type{}, false
			}
			switch w {
			case "struct":
				tagKind = Struct
			case "union":
				tagKind = Union
			default:
				tagKind = Enum
			}
			i++
			tagName = words[i]
		default:
			if named != "" {
				return Type{}, false
			}
			named = w
		}
	}
	if !sawSomething {
		return Type{}, false
	}

	if tagKind != Unknown {
		return Type{Base: tagKindWord(tagKind) + " " + tagName, Kind: tagKind}, true
	}

	hasBuiltin := signed || unsigned || chars+shorts+ints+longs+floats+doubles+voids+bools > 0
	if named != "" {
		if hasBuiltin {
			// "unsigned foo": foo - имя переменной, которое сюда попасть не должно
			return Type{}, false
		}
		return Named(named), true
	}

	switch {
	case voids > 0:
		return Type{Base: "void", Kind: Void}, true
	case bools > 0:
		return Type{Base: "_Bool", Kind: Integer}, true
	case floats > 0:
		return Float, true
	case doubles > 0:
		if longs > 0 {
			return LongDouble, true
		}
		return Double, true
	case chars > 0:
		switch {
		case unsigned:
			return Type{Base: "unsigned char", Kind: Integer}, true
		case signed:
			return Type{Base: "signed char", Kind: Integer}, true
		}
		return Char, true
	}

	base := "int"
	switch {
	case shorts > 0:
		base = "short"
	case longs >= 2:
		base = "long long"
	case longs == 1:
		base = "long"
	}
	if unsigned {
		if base == "int" {
			return UnsignedT, true
		}
		base = "unsigned " + base
	}
	return Type{Base: base, Kind: Integer}, true
}

func tagKindWord(k Kind) string {
	switch k {
	case Struct:
		return "struct"
	case Union:
		return "union"
	}
	return "enum"
}
