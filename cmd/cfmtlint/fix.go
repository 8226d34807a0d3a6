package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/driver"
	"cfmtlint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|dir>",
	Short: "Apply suggested format fixes to a C file or directory",
	Long:  "Check printf-family calls, then rewrite the offending directives according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all non-conflicting fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report fixes without writing files")
	fixCmd.Flags().Bool("heuristics", false, "let --all apply type fixes chosen by heuristics")
	fixCmd.Flags().Bool("no-stdio-check", false, "check calls even when <stdio.h> is not included")
}

// fixSettings is the decoded flag set of `fix`.
type fixSettings struct {
	Target         string
	ConfigPath     string
	MaxDiagnostics int
	NoStdioCheck   bool
	Apply          fix.ApplyOptions
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	noStdio, err := cmd.Flags().GetBool("no-stdio-check")
	if err != nil {
		return err
	}
	heuristics, err := cmd.Flags().GetBool("heuristics")
	if err != nil {
		return err
	}
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	applyOpts, err := selectApplyMode(applyAll, applyOnceFlag, targetID)
	if err != nil {
		return err
	}
	applyOpts.DryRun = dryRun
	applyOpts.Heuristics = heuristics

	return executeFix(cmd.Context(), cmd.OutOrStdout(), fixSettings{
		Target:         args[0],
		ConfigPath:     configPath,
		MaxDiagnostics: maxDiagnostics,
		NoStdioCheck:   noStdio,
		Apply:          applyOpts,
	})
}

func selectApplyMode(applyAll, applyOnce bool, targetID string) (fix.ApplyOptions, error) {
	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}
	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	return fix.ApplyOptions{Mode: mode, TargetID: targetID}, nil
}

// executeFix analyzes the target, applies the selected fixes and re-checks
// the rewritten files.
func executeFix(ctx context.Context, w io.Writer, s fixSettings) error {
	cfg, err := loadConfig(s.ConfigPath, s.Target)
	if err != nil {
		return err
	}
	// файлы без правок на повторной проверке берутся из памяти
	opts := driver.Options{
		Config:         cfg,
		NoStdioCheck:   s.NoStdioCheck,
		MaxDiagnostics: s.MaxDiagnostics,
		Cache:          driver.NewMemoryCache(16),
	}

	fs, results, err := driver.AnalyzeTarget(ctx, s.Target, opts)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	diagnostics := make([]*diag.Diagnostic, 0)
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		r.Bag.Filter(func(d *diag.Diagnostic) bool { return len(d.Fixes) > 0 })
		r.Bag.Sort()
		diagnostics = append(diagnostics, r.Bag.Items()...)
	}

	res, applyErr := fix.Apply(fs, diagnostics, s.Apply)
	if err := handleApplyResult(w, res, applyErr); err != nil {
		return err
	}
	if res == nil || len(res.Applied) == 0 {
		return nil
	}
	if s.Apply.DryRun {
		_, err = fmt.Fprintln(w, "Dry run: no files were written.")
		return err
	}

	_, after, err := driver.AnalyzeTarget(ctx, s.Target, opts)
	if err != nil {
		return fmt.Errorf("fix: re-check: %w", err)
	}
	remaining := 0
	for _, r := range after {
		remaining += r.Bag.Len()
	}
	_, err = fmt.Fprintf(w, "Remaining diagnostics: %d\n", remaining)
	return err
}

func handleApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}
	var printErr error

	if len(res.Applied) > 0 {
		_, printErr = fmt.Fprintf(w, "Applied %d fix(es):\n", len(res.Applied))
		if printErr != nil {
			return printErr
		}
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			_, printErr = fmt.Fprintf(
				w,
				"  %s [%s] at %s (%d edits, %s)\n",
				item.Title,
				item.ID,
				location,
				item.EditCount,
				item.Applicability.String(),
			)
			if printErr != nil {
				return printErr
			}
		}
	}

	if len(res.FileChanges) > 0 {
		_, printErr = fmt.Fprintln(w, "Updated files:")
		if printErr != nil {
			return printErr
		}
		for _, change := range res.FileChanges {
			_, printErr = fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
			if printErr != nil {
				return printErr
			}
		}
	}

	if len(res.Skipped) > 0 {
		_, printErr = fmt.Fprintln(w, "Skipped fixes:")
		if printErr != nil {
			return printErr
		}
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				_, printErr = fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				_, printErr = fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
			if printErr != nil {
				return printErr
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, printErr = fmt.Fprintln(w, "No applicable fixes found.")
			return printErr
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		_, printErr = fmt.Fprintln(w, "No fixes applied.")
		return printErr
	}
	return nil
}

