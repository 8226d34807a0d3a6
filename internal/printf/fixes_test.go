package printf

import (
	"testing"
)

func applyFix(t *testing.T, format string, args ...Arg) (string, []FormatError) {
	t.Helper()
	f := Scan(format)
	errs := Validate(f, args, Options{})
	if len(errs) == 0 {
		t.Fatalf("%q: expected an error", format)
	}
	e := errs[0]
	d := f.Directives[e.Directive]
	repl, ok := SuggestFix(e, d)
	if !ok {
		t.Fatalf("%q: expected a fix for %v", format, e.Kind)
	}
	fixed := format[:d.Start] + repl + format[d.End:]
	return fixed, Validate(Scan(fixed), args, Options{})
}

func TestFixRoundTrip(t *testing.T) {
	cases := []struct {
		format string
		arg    string
		want   string
	}{
		{"%#d", "int", "%d"},
		{"%-#5d", "int", "%-5d"},
		{"%+s", "char *", "%s"},
		{"%0 #p", "void *", "%p"},
		{"%hf", "double", "%f"},
		{"%Ld", "int", "%d"},
		{"%-10.2Lc", "int", "%-10.2c"},
		{"%lp", "int *", "%p"},
	}
	for _, tc := range cases {
		fixed, errs := applyFix(t, tc.format, typed(t, tc.arg))
		if fixed != tc.want {
			t.Errorf("%q: fixed to %q, want %q", tc.format, fixed, tc.want)
		}
		if len(errs) != 0 {
			t.Errorf("%q: re-validation of %q still reports %+v", tc.format, fixed, errs)
		}
	}
}

func TestFixTypeMismatch(t *testing.T) {
	cases := []struct {
		format string
		arg    string
		want   string
	}{
		{"%d", "char *", "%s"},
		{"%ld", "int", "%d"},
		{"%d", "long", "%ld"},
		{"%hd", "size_t", "%zu"},
		{"%+d", "double", "%+f"},
		{"%#x", "char *", "%s"},
		{"%s", "struct point", "%p"},
		{"%c", "wchar_t", "%lc"},
		{"%f", "long double", "%Lf"},
	}
	for _, tc := range cases {
		fixed, errs := applyFix(t, tc.format, typed(t, tc.arg))
		if fixed != tc.want {
			t.Errorf("%q with %s: fixed to %q, want %q", tc.format, tc.arg, fixed, tc.want)
		}
		if tc.arg != "struct point" && len(errs) != 0 {
			t.Errorf("%q: re-validation of %q still reports %+v", tc.format, fixed, errs)
		}
	}
}

func TestNoFixKinds(t *testing.T) {
	for _, k := range []ErrorKind{ErrTypeWildcard, ErrTypeNotExist, ErrArgs} {
		if _, ok := SuggestFix(FormatError{Kind: k}, Directive{}); ok {
			t.Errorf("%v must not offer a fix", k)
		}
	}
}

func TestSuggestFixCoversEveryKind(t *testing.T) {
	d := Scan("%d").Directives[0]
	for _, k := range ErrorKinds {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("SuggestFix panicked for %v: %v", k, r)
				}
			}()
			SuggestFix(FormatError{Kind: k, TypeText: "int"}, d)
		}()
	}
}
