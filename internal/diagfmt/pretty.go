package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note, fix       *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой диагностики:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строка исходника с подчёркиванием ^~~~ по Span, заметки и исправления.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	writeSnippet(w, fs, d.Primary, opts, p)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
		}
	}
	if opts.ShowFixes {
		ctx := diag.FixBuildContext{FileSet: fs}
		for _, f := range d.Fixes {
			resolved, err := f.Resolve(ctx)
			if err != nil {
				fmt.Fprintf(w, "  %s %v\n", p.fix.Sprint("fix:"), err)
				continue
			}
			fmt.Fprintf(w, "  %s %s [%s]", p.fix.Sprint("fix:"), resolved.Title, resolved.Applicability)
			if resolved.ID != "" {
				fmt.Fprintf(w, " (id %s)", resolved.ID)
			}
			fmt.Fprintln(w)
			if !opts.ShowPreview {
				continue
			}
			for _, e := range resolved.Edits {
				pv, err := buildFixEditPreview(fs, e)
				if err != nil {
					continue
				}
				for _, l := range pv.before {
					fmt.Fprintf(w, "    %s %s\n", p.err.Sprint("-"), l)
				}
				for _, l := range pv.after {
					fmt.Fprintf(w, "    %s %s\n", p.fix.Sprint("+"), l)
				}
			}
		}
	}
}

// writeSnippet печатает строки span с контекстом и подчёркиванием.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	ctx := uint32(max(opts.Context, 0))
	first := start.Line
	if first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + ctx
	gutterWidth := len(fmt.Sprint(last))
	blank := strings.Repeat(" ", gutterWidth)

	for line := first; line <= last; line++ {
		if line > uint32(len(f.LineIdx))+1 {
			break
		}
		text := strings.ReplaceAll(f.GetLine(line), "\t", "    ")
		fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", gutterWidth, line), p.gutter.Sprint("|"), clip(text, opts.Width))
		if line != start.Line {
			continue
		}
		raw := f.GetLine(line)
		col := int(start.Col) - 1
		col = min(max(col, 0), len(raw))
		endCol := len(raw)
		if end.Line == start.Line {
			endCol = min(max(int(end.Col)-1, col), len(raw))
		}
		pad := runewidth.StringWidth(strings.ReplaceAll(raw[:col], "\t", "    "))
		mark := runewidth.StringWidth(raw[col:endCol])
		underline := "^"
		if mark > 1 {
			underline += strings.Repeat("~", mark-1)
		}
		fmt.Fprintf(w, "%s %s %s%s\n", blank, p.gutter.Sprint("|"), strings.Repeat(" ", pad), p.caret.Sprint(underline))
	}
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, int(width), "")
	}
	return runewidth.Truncate(s, int(width), "...")
}
