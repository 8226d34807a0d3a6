package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = "2026-01-15T10:30:00Z"

	want := "cfmtlint 1.2.3 (commit abc123, built 2026-01-15T10:30:00Z, " + runtime.Version() + ")"
	if got := String(false); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	GitCommit, BuildDate = "", ""
	if got := String(false); got != "cfmtlint 1.2.3 ("+runtime.Version()+")" {
		t.Errorf("String() without optional fields = %q", got)
	}
}

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()

	color.NoColor = true
	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.0.0-rc.1", "weird"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() with colors off = %q, want %q", got, v)
		}
	}

	color.NoColor = false
	Version = "1.2.3"
	if got := Colored(); !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored() with colors on has no escapes: %q", got)
	}
}
