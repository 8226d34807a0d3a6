package driver

import (
	"time"

	"cfmtlint/internal/diag"
)

// Stage names a step of per-file analysis.
type Stage string

const (
	// StageLoad reads the file into the FileSet.
	StageLoad Stage = "load"
	// StageLex tokenizes the file and builds its declaration scope.
	StageLex Stage = "lex"
	// StageCheck extracts and validates call sites.
	StageCheck Stage = "check"
)

// Status reports where a file is in its lifecycle.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Calls and Findings are set on the final event of a checked file.
	Calls    int
	Findings int
}

// ProgressSink consumes progress events. Implementations must be goroutine-safe.
type ProgressSink interface {
	OnEvent(Event)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

// OnEvent calls f.
func (f SinkFunc) OnEvent(ev Event) { f(ev) }

// ChannelSink forwards events to a channel; the UI reads from it.
type ChannelSink chan<- Event

// OnEvent sends ev, blocking while the reader is busy.
func (c ChannelSink) OnEvent(ev Event) { c <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

// findings считает диагностики без служебных OBS-таймингов.
func findings(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code != diag.ObsTimings {
			n++
		}
	}
	return n
}
