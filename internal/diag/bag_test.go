package diag

import (
	"testing"

	"cfmtlint/internal/source"
)

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	sp := func(s, e uint32) source.Span { return source.Span{File: 1, Start: s, End: e} }

	b.Add(&Diagnostic{Severity: SevWarning, Code: FmtFlag, Primary: sp(5, 6)})
	b.Add(&Diagnostic{Severity: SevError, Code: FmtArgs, Primary: sp(0, 10)})
	b.Add(&Diagnostic{Severity: SevWarning, Code: FmtFlag, Primary: sp(5, 6)})
	if b.Add(&Diagnostic{Severity: SevInfo, Code: FmtInfo, Primary: sp(0, 0)}) {
		t.Fatalf("expected limit to reject the fourth diagnostic")
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}

	b.Sort()
	if b.Items()[0].Code != FmtArgs {
		t.Fatalf("expected FmtArgs first after sort, got %v", b.Items()[0].Code.ID())
	}

	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", b.Len())
	}

	b.Filter(func(d *Diagnostic) bool { return d.Severity == SevError })
	if b.Len() != 1 || b.Items()[0].Code != FmtArgs {
		t.Fatalf("unexpected filter result: %+v", b.Items())
	}
}

func TestReportersAndBuilders(t *testing.T) {
	bag := NewBag(0)
	d := Diagnostic{Severity: SevWarning, Code: FmtFlag, Message: "flag"}.
		WithNote(source.Span{}, "here").
		WithFix("drop", TextEdit{NewText: ""})
	BagReporter{Bag: bag}.Report(&d)
	Errorf(BagReporter{Bag: bag}, FmtTypeNotExist, source.Span{}, "unknown conversion '%c'", 'y')
	Errorf(nil, FmtArgs, source.Span{}, "ignored")
	BagReporter{}.Report(&d)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	got := bag.Items()[0]
	if len(got.Notes) != 1 || len(got.Fixes) != 1 {
		t.Fatalf("expected note and fix, got %+v", got)
	}
	if got.Fixes[0].Applicability != FixApplicabilityAlwaysSafe {
		t.Fatalf("expected always-safe default applicability")
	}
	if e := bag.Items()[1]; e.Severity != SevError || e.Message != "unknown conversion 'y'" {
		t.Fatalf("unexpected Errorf result: %+v", e)
	}

	var seen []Code
	ReporterFunc(func(d *Diagnostic) { seen = append(seen, d.Code) }).Report(&d)
	if len(seen) != 1 || seen[0] != FmtFlag {
		t.Fatalf("ReporterFunc: got %v", seen)
	}
}

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		in      string
		sev     Severity
		enabled bool
		wantErr bool
	}{
		{"error", SevError, true, false},
		{"Warning", SevWarning, true, false},
		{"info", SevInfo, true, false},
		{"off", SevInfo, false, false},
		{"loud", SevInfo, false, true},
	}
	for _, tc := range cases {
		sev, enabled, err := ParseSeverity(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%q: unexpected err %v", tc.in, err)
		}
		if err == nil && (sev != tc.sev || enabled != tc.enabled) {
			t.Fatalf("%q: got (%v,%v)", tc.in, sev, enabled)
		}
	}
}

type failingThunk struct{}

func (failingThunk) ID() string { return "broken" }
func (failingThunk) Build(FixBuildContext) (Fix, error) {
	return Fix{}, errNilFix
}

type okThunk struct{}

func (okThunk) ID() string { return "lazy" }
func (okThunk) Build(FixBuildContext) (Fix, error) {
	return Fix{Edits: []TextEdit{{NewText: "x"}}}, nil
}

func TestMaterializeFixes(t *testing.T) {
	ctx := FixBuildContext{FileSet: source.NewFileSet()}
	got, err := MaterializeFixes(ctx, []*Fix{{ID: "a", Title: "lazy fix", Thunk: okThunk{}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" || got[0].Title != "lazy fix" || len(got[0].Edits) != 1 {
		t.Fatalf("unexpected materialised fix: %+v", got)
	}
	if _, err := MaterializeFixes(ctx, []*Fix{{Thunk: failingThunk{}}}); err == nil {
		t.Fatalf("expected error from failing thunk")
	}
}
