package cresolve

import "testing"

func TestNumberType(t *testing.T) {
	cases := map[string]string{
		"0":                    "int",
		"42":                   "int",
		"2147483648":           "long",
		"0x7fffffff":           "int",
		"0xffffffff":           "unsigned int",
		"0x100000000":          "long",
		"0xffffffffffffffff":   "unsigned long",
		"10u":                  "unsigned int",
		"10U":                  "unsigned int",
		"10l":                  "long",
		"10ul":                 "unsigned long",
		"10LU":                 "unsigned long",
		"10ll":                 "long long",
		"10ull":                "unsigned long long",
		"1'000":                "int",
		"017":                  "int",
		"1.5":                  "double",
		"1.5f":                 "float",
		"1.5L":                 "long double",
		"1e10":                 "double",
		"0x1p3":                "double",
		"0x1p3f":               "float",
		"99999999999999999999": "long",
	}
	for in, want := range cases {
		if got := NumberType(in).String(); got != want {
			t.Errorf("NumberType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStringType(t *testing.T) {
	cases := map[string]string{
		"":   "char *",
		"u8": "char *",
		"L":  "wchar_t *",
		"u":  "char16_t *",
		"U":  "char32_t *",
	}
	for in, want := range cases {
		if got := StringType(in).String(); got != want {
			t.Errorf("StringType(%q) = %q, want %q", in, got, want)
		}
	}
}
