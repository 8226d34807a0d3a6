package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cfmtlint/internal/driver"
	"cfmtlint/internal/source"
	"cfmtlint/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []*driver.FileResult
	err     error
}

// analyzeDirWithUI runs AnalyzeDir while a Bubble Tea view on stderr shows progress.
func analyzeDirWithUI(ctx context.Context, dir string, opts driver.Options) (*source.FileSet, []*driver.FileResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink(events)
		fs, results, err := driver.AnalyzeFiles(ctx, dir, files, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог закрыться раньше; дочитываем события, чтобы анализ не встал на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
