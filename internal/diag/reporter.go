package diag

import (
	"fmt"

	"cfmtlint/internal/source"
)

// Reporter принимает готовую диагностику от фазы.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(d *Diagnostic)

func (f ReporterFunc) Report(d *Diagnostic) { f(d) }

// BagReporter складывает диагностики в Bag; nil Bag молча отбрасывает.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d *Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// Errorf reports a SevError diagnostic with a formatted message. A nil
// Reporter is allowed.
func Errorf(r Reporter, code Code, primary source.Span, format string, args ...any) {
	if r == nil {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	r.Report(&Diagnostic{Severity: SevError, Code: code, Message: msg, Primary: primary})
}
