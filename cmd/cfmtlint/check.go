package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cfmtlint/internal/config"
	"cfmtlint/internal/diag"
	"cfmtlint/internal/driver"
	"cfmtlint/internal/observ"
	"cfmtlint/internal/printf"
	"cfmtlint/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|dir>",
	Short: "Check printf-family calls in C sources",
	Long:  "Check printf-family format strings in a C file or in every C source under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0 = from config, then GOMAXPROCS)")
	checkCmd.Flags().Bool("no-stdio-check", false, "check calls even when <stdio.h> is not included")
	checkCmd.Flags().Bool("suggest", false, "show suggested fixes")
	checkCmd.Flags().Bool("preview", false, "show the source after applying each suggested fix")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes")
	checkCmd.Flags().Bool("fullpath", false, "print absolute file paths")
	checkCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	checkCmd.Flags().Bool("timings", false, "report per-file phase timings")
	checkCmd.Flags().StringArray("severity", nil, "override a severity, e.g. --severity type_mismatch=error (repeatable)")
}

// checkSettings is the decoded flag set of `check`.
type checkSettings struct {
	Target         string
	Format         string
	ConfigPath     string
	Jobs           int
	MaxDiagnostics int
	NoStdioCheck   bool
	Suggest        bool
	Preview        bool
	WithNotes      bool
	FullPath       bool
	UI             autoSwitch
	UseCache       bool
	Timings        bool
	Severity       []string
	Color          bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := readCheckSettings(cmd, args[0])
	if err != nil {
		return err
	}
	code, err := executeCheck(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), settings)
	if err != nil {
		return err
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func readCheckSettings(cmd *cobra.Command, target string) (checkSettings, error) {
	s := checkSettings{Target: target}
	var err error
	flags := cmd.Flags()
	if s.Format, err = flags.GetString("format"); err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if s.Jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.NoStdioCheck, err = flags.GetBool("no-stdio-check"); err != nil {
		return s, fmt.Errorf("failed to get no-stdio-check flag: %w", err)
	}
	if s.Suggest, err = flags.GetBool("suggest"); err != nil {
		return s, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if s.Preview, err = flags.GetBool("preview"); err != nil {
		return s, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if s.WithNotes, err = flags.GetBool("with-notes"); err != nil {
		return s, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if s.FullPath, err = flags.GetBool("fullpath"); err != nil {
		return s, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.UI, err = parseSwitch("ui", uiValue); err != nil {
		return s, err
	}
	if s.UseCache, err = flags.GetBool("cache"); err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if s.Timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.Severity, err = flags.GetStringArray("severity"); err != nil {
		return s, fmt.Errorf("failed to get severity flag: %w", err)
	}
	root := cmd.Root().PersistentFlags()
	if s.ConfigPath, err = root.GetString("config"); err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if s.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	s.Color = colorEnabled()
	return s, nil
}

// executeCheck analyzes the target, renders diagnostics to stdout and
// returns exit code 1 when any error-severity diagnostic was reported.
func executeCheck(ctx context.Context, stdout, stderr io.Writer, s checkSettings) (int, error) {
	switch s.Format {
	case "pretty", "short", "json", "sarif":
	default:
		return 0, fmt.Errorf("unknown format: %s", s.Format)
	}

	cfg, err := loadConfig(s.ConfigPath, s.Target)
	if err != nil {
		return 0, err
	}
	if err := applySeverityOverrides(cfg, s.Severity); err != nil {
		return 0, err
	}

	opts := driver.Options{
		Config:         cfg,
		NoStdioCheck:   s.NoStdioCheck,
		MaxDiagnostics: s.MaxDiagnostics,
		Jobs:           s.Jobs,
		Timings:        s.Timings,
	}
	if s.UseCache {
		cache, cacheErr := driver.OpenDiskCache("cfmtlint")
		if cacheErr != nil {
			fmt.Fprintf(stderr, "cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	fs, results, err := analyzeTarget(ctx, s.Target, s.UI, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return 0, err
	}
	if fs == nil {
		return 0, err
	}

	bag := mergeResults(results)
	if err := render(stdout, bag, fs, s); err != nil {
		return 0, err
	}
	if s.Timings {
		writeTimings(stderr, results)
	}
	if ctx.Err() != nil {
		return 130, nil
	}
	if bag.HasErrors() {
		return 1, nil
	}
	return 0, nil
}

// analyzeTarget picks the progress UI for directories when requested.
func analyzeTarget(ctx context.Context, target string, mode autoSwitch, opts driver.Options) (*source.FileSet, []*driver.FileResult, error) {
	info, err := os.Stat(target)
	if err == nil && info.IsDir() && shouldUseTUI(mode) {
		return analyzeDirWithUI(ctx, target, opts)
	}
	return driver.AnalyzeTarget(ctx, target, opts)
}

// loadConfig reads an explicit --config or discovers one next to the target.
func loadConfig(explicit, target string) (*config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}
	start := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		start = filepath.Dir(target)
	}
	return config.Discover(start)
}

// applySeverityOverrides handles repeated --severity kind=level flags.
func applySeverityOverrides(cfg *config.Config, overrides []string) error {
	for _, item := range overrides {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return fmt.Errorf("invalid --severity %q (expected kind=level)", item)
		}
		kind, ok := kindByName(strings.TrimSpace(key))
		if !ok {
			return fmt.Errorf("invalid --severity %q: unknown error kind %q", item, key)
		}
		if err := cfg.SetSeverity(kind, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("invalid --severity %q: %w", item, err)
		}
	}
	return nil
}

// kindByName accepts both "type_mismatch" and "TYPE_MISMATCH".
func kindByName(name string) (printf.ErrorKind, bool) {
	for _, k := range printf.ErrorKinds {
		if strings.EqualFold(name, k.Key()) {
			return k, true
		}
	}
	return 0, false
}

func mergeResults(results []*driver.FileResult) *diag.Bag {
	total := 0
	for _, r := range results {
		total += r.Bag.Len()
	}
	bag := diag.NewBag(total)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	bag.Sort()
	bag.Dedup()
	return bag
}

func writeTimings(w io.Writer, results []*driver.FileResult) {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		reports = append(reports, r.Timing)
	}
	fmt.Fprintf(w, "timings (%d files): %s\n", len(results), observ.Merge(reports...).Summary())
}
