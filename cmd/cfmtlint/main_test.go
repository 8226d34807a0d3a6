package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"cfmtlint/internal/config"
	"cfmtlint/internal/diag"
	"cfmtlint/internal/diagfmt"
	"cfmtlint/internal/fix"
	"cfmtlint/internal/printf"
)

const stdioHeader = "#include <stdio.h>\n"

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func baseCheckSettings(target, format string) checkSettings {
	return checkSettings{
		Target:    target,
		Format:    format,
		UI:        switchOff,
		WithNotes: true,
	}
}

func TestResolveColor(t *testing.T) {
	if on, err := resolveColor("on", nil); err != nil || !on {
		t.Fatalf("on: %v %v", on, err)
	}
	if on, err := resolveColor("off", nil); err != nil || on {
		t.Fatalf("off: %v %v", on, err)
	}
	if on, err := resolveColor("auto", nil); err != nil || on {
		t.Fatalf("auto without output: %v %v", on, err)
	}
	if _, err := resolveColor("rainbow", nil); err == nil {
		t.Fatalf("expected error for invalid value")
	}
}

func TestParseSwitch(t *testing.T) {
	cases := map[string]autoSwitch{"": switchAuto, "AUTO": switchAuto, "on": switchOn, "always": switchOn, " off ": switchOff}
	for in, want := range cases {
		got, err := parseSwitch("ui", in)
		if err != nil || got != want {
			t.Fatalf("parseSwitch(%q) = %d, %v", in, got, err)
		}
	}
	if _, err := parseSwitch("ui", "sometimes"); err == nil {
		t.Fatalf("expected error")
	}
	if shouldUseTUI(switchOff) || !shouldUseTUI(switchOn) {
		t.Fatalf("explicit modes must be honored")
	}
}

func TestSeverityOverrides(t *testing.T) {
	cfg := config.Default()
	if err := applySeverityOverrides(cfg, []string{"type_mismatch=error", "FLAG=off"}); err != nil {
		t.Fatal(err)
	}
	if lvl := cfg.Level(printf.ErrTypeMismatch); !lvl.Enabled || lvl.Severity != diag.SevError {
		t.Fatalf("type_mismatch level %+v", lvl)
	}
	if cfg.Level(printf.ErrFlag).Enabled {
		t.Fatalf("flag must be disabled")
	}
	for _, bad := range []string{"type_mismatch", "bogus=error", "args=loud"} {
		if err := applySeverityOverrides(config.Default(), []string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSelectApplyMode(t *testing.T) {
	opts, err := selectApplyMode(false, false, "")
	if err != nil || opts.Mode != fix.ApplyModeOnce {
		t.Fatalf("default mode %+v %v", opts, err)
	}
	opts, err = selectApplyMode(true, false, "")
	if err != nil || opts.Mode != fix.ApplyModeAll {
		t.Fatalf("all mode %+v %v", opts, err)
	}
	opts, err = selectApplyMode(false, false, "FMT2003@a.c:10")
	if err != nil || opts.Mode != fix.ApplyModeID || opts.TargetID != "FMT2003@a.c:10" {
		t.Fatalf("id mode %+v %v", opts, err)
	}
	if _, err := selectApplyMode(true, true, ""); err == nil {
		t.Fatalf("--all with --once must fail")
	}
	if _, err := selectApplyMode(true, false, "x"); err == nil {
		t.Fatalf("--id with --all must fail")
	}
}

func TestCheckExitCodeOnError(t *testing.T) {
	path := writeSource(t, "args.c", stdioHeader+"void f(void) { printf(\"%d %d\\n\", 1); }\n")
	var stdout, stderr bytes.Buffer
	code, err := executeCheck(context.Background(), &stdout, &stderr, baseCheckSettings(path, "json"))
	if err != nil {
		t.Fatal(err)
	}
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout.String())
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "FMT2006" {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestCheckWarningsExitZero(t *testing.T) {
	path := writeSource(t, "len.c", stdioHeader+"void f(char *s) { printf(\"%hs\\n\", s); }\n")
	var stdout, stderr bytes.Buffer
	code, err := executeCheck(context.Background(), &stdout, &stderr, baseCheckSettings(path, "short"))
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Fatalf("warnings only must exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "FMT2002") {
		t.Fatalf("short output lacks length diagnostic:\n%s", stdout.String())
	}
}

func TestCheckSeverityFlagPromotes(t *testing.T) {
	path := writeSource(t, "len.c", stdioHeader+"void f(char *s) { printf(\"%hs\\n\", s); }\n")
	s := baseCheckSettings(path, "short")
	s.Severity = []string{"length=error"}
	var stdout, stderr bytes.Buffer
	code, err := executeCheck(context.Background(), &stdout, &stderr, s)
	if err != nil {
		t.Fatal(err)
	}
	if code != 1 {
		t.Fatalf("promoted length must exit 1, got %d", code)
	}
}

func TestCheckRejectsUnknownFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if _, err := executeCheck(context.Background(), &stdout, &stderr, baseCheckSettings("x.c", "xml")); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCheckTimings(t *testing.T) {
	path := writeSource(t, "ok.c", stdioHeader+"void f(int n) { printf(\"%d\\n\", n); }\n")
	s := baseCheckSettings(path, "short")
	s.Timings = true
	var stdout, stderr bytes.Buffer
	if _, err := executeCheck(context.Background(), &stdout, &stderr, s); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stderr.String(), "timings (1 files): ") {
		t.Fatalf("stderr %q", stderr.String())
	}
}

func TestCheckSarif(t *testing.T) {
	path := writeSource(t, "args.c", stdioHeader+"void f(void) { printf(\"%d\\n\"); }\n")
	var stdout, stderr bytes.Buffer
	if _, err := executeCheck(context.Background(), &stdout, &stderr, baseCheckSettings(path, "sarif")); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("sarif is not JSON: %v", err)
	}
	if doc["version"] != "2.1.0" {
		t.Fatalf("sarif version %v", doc["version"])
	}
}

func TestFixAllRewritesFile(t *testing.T) {
	path := writeSource(t, "fix.c", stdioHeader+"void f(long n) { printf(\"%d\\n\", n); }\n")
	var out bytes.Buffer
	err := executeFix(context.Background(), &out, fixSettings{Target: path, Apply: fix.ApplyOptions{Mode: fix.ApplyModeAll, Heuristics: true}})
	if err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), `printf("%ld\n", n)`) {
		t.Fatalf("file not rewritten:\n%s", content)
	}
	if !strings.Contains(out.String(), "Applied 1 fix(es):") || !strings.Contains(out.String(), "Remaining diagnostics: 0") {
		t.Fatalf("unexpected report:\n%s", out.String())
	}
}

func TestFixDryRunKeepsFile(t *testing.T) {
	src := stdioHeader + "void f(long n) { printf(\"%d\\n\", n); }\n"
	path := writeSource(t, "fix.c", src)
	var out bytes.Buffer
	err := executeFix(context.Background(), &out, fixSettings{Target: path, Apply: fix.ApplyOptions{Mode: fix.ApplyModeOnce, DryRun: true}})
	if err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != src {
		t.Fatalf("dry run modified the file:\n%s", content)
	}
	if !strings.Contains(out.String(), "Dry run") {
		t.Fatalf("missing dry-run note:\n%s", out.String())
	}
}

func TestFixNothingToDo(t *testing.T) {
	path := writeSource(t, "clean.c", stdioHeader+"void f(int n) { printf(\"%d\\n\", n); }\n")
	var out bytes.Buffer
	if err := executeFix(context.Background(), &out, fixSettings{Target: path}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "No applicable fixes found." {
		t.Fatalf("unexpected report %q", out.String())
	}
}

func TestHandleApplyResultPassesErrors(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	if err := handleApplyResult(&out, &fix.ApplyResult{}, boom); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	if err := handleApplyResult(&out, nil, boom); !errors.Is(err, boom) {
		t.Fatalf("nil result: got %v", err)
	}
}

func TestResolveInitDirCreates(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "proj")
	dir, err := resolveInitDir([]string{target})
	if err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
	file := writeSource(t, "a.c", "")
	if _, err := resolveInitDir([]string{file}); err == nil {
		t.Fatalf("a file target must be rejected")
	}
}

func TestLoadConfigDiscoversNextToFile(t *testing.T) {
	path := writeSource(t, "a.c", "")
	cfgPath := filepath.Join(filepath.Dir(path), config.FileName)
	if err := os.WriteFile(cfgPath, []byte("[severity]\nargs = \"off\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig("", path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level(printf.ErrArgs).Enabled {
		t.Fatalf("discovered config not applied")
	}
}

func TestRootStrings(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().String("trace", "", "")
	root.PersistentFlags().String("trace-level", "off", "")
	child := &cobra.Command{Use: "child"}
	root.AddCommand(child)
	if err := root.PersistentFlags().Set("trace", "out.ndjson"); err != nil {
		t.Fatal(err)
	}

	v, err := rootStrings(child, "trace", "trace-level")
	if err != nil || v[0] != "out.ndjson" || v[1] != "off" {
		t.Fatalf("rootStrings = %q, %v", v, err)
	}
	if _, err := rootStrings(child, "missing"); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestCheckTestdataMismatches(t *testing.T) {
	path := filepath.Join("..", "..", "testdata", "mismatches.c")
	var stdout, stderr bytes.Buffer
	code, err := executeCheck(context.Background(), &stdout, &stderr, baseCheckSettings(path, "json"))
	if err != nil {
		t.Fatal(err)
	}
	if code != 1 {
		t.Fatalf("exit code %d, want 1\n%s", code, stdout.String())
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout.String())
	}
	codes := make(map[string]bool)
	for _, d := range out.Diagnostics {
		codes[d.Code] = true
	}
	for _, want := range []string{"FMT2003", "FMT2006"} {
		if !codes[want] {
			t.Fatalf("missing %s in %v", want, codes)
		}
	}
}
