package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cfmtlint/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default " + config.FileName,
	Long: `Write a commented default configuration into [dir]. If [dir] is omitted,
the current directory is used; a missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	target, err := resolveInitDir(args)
	if err != nil {
		return err
	}
	path, err := config.WriteDefault(target, force)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("already initialized: %s exists (use --force to overwrite)", path)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

// resolveInitDir returns an existing directory for init, creating it when missing.
func resolveInitDir(args []string) (string, error) {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", target)
	}
	return target, nil
}
