package cresolve

import (
	"math"
	"strconv"
	"strings"

	"cfmtlint/internal/ctype"
)

// NumberType types a preprocessing number the way an LP64 compiler does.
func NumberType(text string) ctype.Type {
	s := strings.ToLower(strings.ReplaceAll(text, "'", ""))
	isHex := strings.HasPrefix(s, "0x")
	if (isHex && strings.ContainsAny(s, ".p")) || (!isHex && strings.ContainsAny(s, ".e")) {
		return floatType(s)
	}

	digits := strings.TrimRight(s, "ul")
	suffix := s[len(digits):]
	us := strings.Count(suffix, "u")
	ls := strings.Count(suffix, "l")

	base := 10
	switch {
	case isHex:
		base, digits = 16, digits[2:]
	case strings.HasPrefix(digits, "0b"):
		base, digits = 2, digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base, digits = 8, digits[1:]
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		v = math.MaxUint64
	}
	decimal := base == 10

	switch {
	case us > 0 && ls >= 2:
		return ctype.ULongLong
	case us > 0 && ls == 1:
		return ctype.ULong
	case us > 0:
		if v <= math.MaxUint32 {
			return ctype.UnsignedT
		}
		return ctype.ULong
	case ls >= 2:
		if !decimal && v > math.MaxInt64 {
			return ctype.ULongLong
		}
		return ctype.LongLong
	case ls == 1:
		if !decimal && v > math.MaxInt64 {
			return ctype.ULong
		}
		return ctype.Long
	}
	switch {
	case v <= math.MaxInt32:
		return ctype.Int
	case !decimal && v <= math.MaxUint32:
		return ctype.UnsignedT
	case v <= math.MaxInt64:
		return ctype.Long
	case !decimal:
		return ctype.ULong
	}
	return ctype.Long
}

func floatType(s string) ctype.Type {
	switch {
	case strings.HasSuffix(s, "f"):
		return ctype.Float
	case strings.HasSuffix(s, "l"):
		return ctype.LongDouble
	}
	return ctype.Double
}

// CharType types a character constant by its encoding prefix.
func CharType(prefix string) ctype.Type {
	switch prefix {
	case "L":
		return ctype.WCharT
	case "u":
		return ctype.Named("char16_t")
	case "U":
		return ctype.Named("char32_t")
	}
	return ctype.Int
}

// StringType types a string literal by its encoding prefix.
func StringType(prefix string) ctype.Type {
	switch prefix {
	case "L":
		return ctype.WCharPtr
	case "u":
		return ctype.Named("char16_t").Pointer()
	case "U":
		return ctype.Named("char32_t").Pointer()
	}
	return ctype.CharPtr
}
