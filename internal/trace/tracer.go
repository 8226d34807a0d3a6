package trace

import (
	"fmt"
	"io"
	"os"
)

// Tracer принимает события. Реализации должны быть goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config describes where trace events go.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer // приоритетнее OutputPath
	OutputPath string    // "" и "-" - stderr
}

// New returns Nop for LevelOff, otherwise a StreamTracer over the configured output.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	w := cfg.Output
	switch {
	case w != nil:
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		w = stderrWriter{}
	default:
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("open trace output %s: %w", cfg.OutputPath, err)
		}
		w = f
	}
	return NewStreamTracer(w, cfg.Level, formatFor(cfg.Format, cfg.OutputPath)), nil
}

// stderrWriter пишет в текущий os.Stderr и не закрывается вместе с трейсером.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) { return os.Stderr.Write(p) }
