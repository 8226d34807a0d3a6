package driver

import (
	"cfmtlint/internal/config"
	"cfmtlint/internal/diag"
	"cfmtlint/internal/observ"
	"cfmtlint/internal/source"
)

// Options configure analysis of one file or a tree.
type Options struct {
	// Config supplies severities, extra functions and typedefs; nil means defaults.
	Config *config.Config
	// NoStdioCheck disables the <stdio.h> include filter.
	NoStdioCheck bool
	// MaxDiagnostics caps every file's bag; 0 takes the config value.
	MaxDiagnostics int
	// Jobs limits parallel files in AnalyzeDir; 0 takes the config value, then GOMAXPROCS.
	Jobs int
	// Timings attaches an OBS timing diagnostic to each file.
	Timings bool
	// Cache, if set, short-circuits files analyzed before with the same options.
	Cache Cache
	// Progress receives per-file events from AnalyzeDir.
	Progress ProgressSink
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

func (o Options) maxDiagnostics(cfg *config.Config) int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return cfg.Check.MaxDiagnostics
}

func (o Options) requireStdio(cfg *config.Config) bool {
	return cfg.Check.RequireStdio && !o.NoStdioCheck
}

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Calls counts extracted printf-family call sites.
	Calls int
	// Skipped counts located calls the extractor gave up on.
	Skipped int
	// Cached is true when the result came from Options.Cache.
	Cached bool
	Timing observ.Report
	// Err is set when analysis stopped early: a load failure or cancellation.
	Err error
}
