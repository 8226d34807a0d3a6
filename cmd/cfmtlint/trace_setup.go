package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cfmtlint/internal/trace"
)

// setupTracing puts the tracer chosen by --trace, --trace-level and
// --trace-format into the command context. Without a level, --trace
// alone means phase.
func setupTracing(cmd *cobra.Command) (func(), error) {
	v, err := rootStrings(cmd, "trace", "trace-level", "trace-format")
	if err != nil {
		return nil, err
	}
	output := v[0]

	level, err := trace.ParseLevel(v[1])
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	format, err := trace.ParseFormat(v[2])
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{Level: level, Format: format, OutputPath: output})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	return func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
