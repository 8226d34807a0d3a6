package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cfmtlint/internal/prof"
)

// setupProfiling starts a prof.Session from --cpu-profile, --mem-profile and
// --runtime-trace; the heap profile is written when the cleanup runs.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	v, err := rootStrings(cmd, "cpu-profile", "mem-profile", "runtime-trace")
	if err != nil {
		return nil, err
	}
	session, err := prof.Start(prof.Options{CPUPath: v[0], MemPath: v[1], TracePath: v[2]})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}, nil
}
