package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Level
	}{
		{"off", LevelOff}, {"error", LevelError}, {"PHASE", LevelPhase},
		{"detail", LevelDetail}, {"debug", LevelDebug},
	} {
		got, err := ParseLevel(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Fatalf("phase must not emit file events")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeCallSite) {
		t.Fatalf("detail emits file but not callsite events")
	}
	if !LevelDebug.ShouldEmit(ScopeCallSite) {
		t.Fatalf("debug emits everything")
	}
	if LevelError.ShouldEmit(ScopeDriver) {
		t.Fatalf("error level emits no spans")
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	sp := Begin(tr, ScopeFile, "analyze", 0)
	sp.Set("calls", "3").End("ok")
	Begin(tr, ScopeCallSite, "call", sp.ID()).End("")

	out := buf.String()
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected begin+end lines only, got:\n%s", out)
	}
	if !strings.Contains(out, "[file]   → analyze") {
		t.Fatalf("missing begin line:\n%s", out)
	}
	if !strings.Contains(out, "← analyze (ok) {calls=3}") {
		t.Fatalf("missing end line:\n%s", out)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)
	sp, _ := StartFile(ctx, "analyze", "src/main.c")
	buf.Reset()
	sp.Point(ScopeCallSite, "skip", "format is not a literal")

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["scope"] != "callsite" || ev["detail"] != "format is not a literal" {
		t.Fatalf("unexpected event: %v", ev)
	}
	if ev["parent_id"] != float64(sp.ID()) || ev["file"] != "src/main.c" {
		t.Fatalf("point not attached to its file span: %v", ev)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer must be disabled")
	}
	if sp := Begin(tr, ScopeDriver, "x", 0); sp.ID() != 0 {
		t.Fatalf("disabled span got id %d", sp.ID())
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}

	dir, ctx := Start(ctx, ScopeDriver, "analyze_dir")
	if SpanFrom(ctx) != dir {
		t.Fatalf("span not carried by context")
	}
	file, fctx := StartFile(ctx, "analyze", "a.c")
	if SpanFrom(fctx) != file {
		t.Fatalf("file span not carried by context")
	}
	// callsite is below LevelDetail: disabled span, context unchanged
	call, cctx := Start(fctx, ScopeCallSite, "call")
	if call.ID() != 0 || cctx != fctx {
		t.Fatalf("disabled span must leave the context as is")
	}
	file.End("")
	dir.End("")

	out := buf.String()
	if !strings.Contains(out, "→ analyze a.c") || !strings.Contains(out, "← analyze_dir") {
		t.Fatalf("unexpected trace:\n%s", out)
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	sp := Begin(Nop, ScopeFile, "x", 0)
	sp.Set("k", "v").Point(ScopeFile, "p", "")
	if d := sp.End("done"); d != 0 {
		t.Fatalf("disabled span measured %v", d)
	}
	if disabledSpan.extra != nil {
		t.Fatalf("disabled span must not record extras")
	}
}
