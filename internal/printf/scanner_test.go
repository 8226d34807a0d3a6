package printf

import "testing"

func TestScanDirectiveFields(t *testing.T) {
	f := Scan("x=%-+08.3lld%%y%*.*s%")
	if len(f.Directives) != 3 {
		t.Fatalf("expected 3 directives, got %d: %+v", len(f.Directives), f.Directives)
	}

	d := f.Directives[0]
	if d.Text != "%-+08.3lld" || d.Start != 2 || d.End != 12 {
		t.Fatalf("first directive: %+v", d)
	}
	if d.Flags != "-+0" || d.Width.Kind != AmountLiteral || d.Width.Value != 8 {
		t.Fatalf("flags/width: %+v", d)
	}
	if d.Precision.Kind != AmountLiteral || d.Precision.Value != 3 || d.Precision.Text != ".3" {
		t.Fatalf("precision: %+v", d.Precision)
	}
	if d.Length != LenLL || d.Conv != 'd' || d.Specifier() != "lld" {
		t.Fatalf("length/conv: %+v", d)
	}

	w := f.Directives[1]
	if w.Width.Kind != AmountWildcard || w.Precision.Kind != AmountWildcard || w.Wildcards() != 2 {
		t.Fatalf("wildcards: %+v", w)
	}

	end := f.Directives[2]
	if end.Conv != 0 || end.Start != len(f.Text)-1 || end.End != len(f.Text) {
		t.Fatalf("trailing percent: %+v", end)
	}
}

func TestScanPercentLiteral(t *testing.T) {
	f := Scan("100%% done")
	if len(f.Directives) != 0 {
		t.Fatalf("%%%% must not produce a directive: %+v", f.Directives)
	}
	if len(f.Literals) != 1 || f.Literals[0] != (Run{Start: 0, End: len(f.Text)}) {
		t.Fatalf("unexpected literal runs: %+v", f.Literals)
	}
}

func TestScanLengthLongestMatch(t *testing.T) {
	cases := map[string]Length{
		"%hhd": LenHH,
		"%hd":  LenH,
		"%lld": LenLL,
		"%ld":  LenL,
		"%Lf":  LenBigL,
		"%jd":  LenJ,
		"%zu":  LenZ,
		"%td":  LenT,
		"%d":   LenNone,
	}
	for in, want := range cases {
		f := Scan(in)
		if len(f.Directives) != 1 || f.Directives[0].Length != want {
			t.Errorf("%s: got %+v, want length %v", in, f.Directives, want)
		}
	}
}

func TestScanEmptyPrecision(t *testing.T) {
	d := Scan("%.f").Directives[0]
	if d.Precision.Kind != AmountLiteral || d.Precision.Value != 0 || d.Precision.Text != "." {
		t.Fatalf("empty precision: %+v", d.Precision)
	}
}

func TestScanContinuesAfterUnknown(t *testing.T) {
	f := Scan("%y %d")
	if len(f.Directives) != 2 || f.Directives[0].Conv != 'y' || f.Directives[1].Conv != 'd' {
		t.Fatalf("unexpected directives: %+v", f.Directives)
	}
	for _, d := range f.Directives {
		if d.End <= d.Start {
			t.Fatalf("directive span must be non-empty: %+v", d)
		}
	}
}
