package main

import (
	"io"

	"github.com/fatih/color"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/diagfmt"
	"cfmtlint/internal/source"
	"cfmtlint/internal/version"
)

// colorEnabled reflects the --color decision made in PersistentPreRunE.
func colorEnabled() bool {
	return !color.NoColor
}

func render(w io.Writer, bag *diag.Bag, fs *source.FileSet, s checkSettings) error {
	pathMode := diagfmt.PathModeAuto
	if s.FullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := s.Suggest || s.Preview

	switch s.Format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       s.Color,
			Context:     1,
			PathMode:    pathMode,
			ShowNotes:   s.WithNotes,
			ShowFixes:   showFixes,
			ShowPreview: s.Preview,
		})
		return nil
	case "short":
		return diagfmt.Short(w, bag, fs)
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     s.WithNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  s.Preview,
		})
	default:
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "cfmtlint",
			ToolVersion:    version.Version,
			InvocationArgs: []string{"check", s.Target},
		})
	}
}
