package driver

import (
	"fmt"

	"cfmtlint/internal/callsite"
	"cfmtlint/internal/config"
	"cfmtlint/internal/cresolve"
	"cfmtlint/internal/diag"
	"cfmtlint/internal/fix"
	"cfmtlint/internal/printf"
	"cfmtlint/internal/source"
)

var kindCodes = map[printf.ErrorKind]diag.Code{
	printf.ErrFlag:         diag.FmtFlag,
	printf.ErrLength:       diag.FmtLength,
	printf.ErrTypeMismatch: diag.FmtTypeMismatch,
	printf.ErrTypeWildcard: diag.FmtTypeWildcard,
	printf.ErrTypeNotExist: diag.FmtTypeNotExist,
	printf.ErrArgs:         diag.FmtArgs,
}

// CodeFor maps a format error kind to its diagnostic code.
func CodeFor(kind printf.ErrorKind) diag.Code {
	return kindCodes[kind]
}

// checkCall types the call's arguments, validates the format and reports
// one diagnostic per error whose kind is enabled.
func checkCall(bag *diag.Bag, file *source.File, cs *callsite.CallSite, resolver *cresolve.Resolver, cfg *config.Config) {
	args := make([]printf.Arg, len(cs.Params))
	for i := range cs.Params {
		p := &cs.Params[i]
		r := resolver.Resolve(p.Tokens)
		p.Type = r.Type
		p.Resolvable = p.Resolvable && r.Resolvable
		args[i] = printf.Arg{Text: p.Text, Type: p.Type, Resolvable: p.Resolvable}
	}

	f := printf.Scan(cs.Format)
	for _, e := range printf.Validate(f, args, printf.Options{VaList: cs.Func.VaList}) {
		lvl := cfg.Level(e.Kind)
		if !lvl.Enabled {
			continue
		}
		bag.Add(buildDiagnostic(file, cs, f, e, lvl.Severity))
	}
}

func buildDiagnostic(file *source.File, cs *callsite.CallSite, f printf.Format, e printf.FormatError, sev diag.Severity) *diag.Diagnostic {
	code := CodeFor(e.Kind)
	d := &diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  e.Message(),
	}

	if e.Kind == printf.ErrArgs {
		d.Primary = cs.Span
		if e.Supplied > e.Expected && e.Expected < len(cs.Params) {
			d.Notes = append(d.Notes, diag.Note{Span: cs.Params[e.Expected].Span, Msg: "first unused argument"})
		}
		return d
	}

	primary, contiguous := cs.SourceSpan(e.Start, e.End)
	d.Primary = primary
	if !contiguous {
		d.Notes = append(d.Notes, diag.Note{Span: primary, Msg: "directive is split across string literals"})
	}
	if e.Arg >= 0 && e.Arg < len(cs.Params) && (e.Kind == printf.ErrTypeMismatch || e.Kind == printf.ErrTypeWildcard) {
		p := cs.Params[e.Arg]
		d.Notes = append(d.Notes, diag.Note{Span: p.Span, Msg: fmt.Sprintf("argument has type '%s'", e.TypeText)})
	}

	if !contiguous || e.Directive < 0 || e.Directive >= len(f.Directives) {
		return d
	}
	dir := f.Directives[e.Directive]
	replacement, ok := printf.SuggestFix(e, dir)
	if !ok || replacement == dir.Text {
		return d
	}
	opts := []fix.Option{
		fix.WithID(fmt.Sprintf("%s@%s:%d", code.ID(), file.Path, primary.Start)),
		fix.Preferred(),
	}
	if e.Kind == printf.ErrTypeMismatch {
		opts = append(opts, fix.Heuristic())
	}
	d.Fixes = append(d.Fixes, fix.ReplaceSpan(fixTitle(e, replacement), primary, replacement, dir.Text, opts...))
	return d
}

func fixTitle(e printf.FormatError, replacement string) string {
	switch e.Kind {
	case printf.ErrFlag:
		return fmt.Sprintf("remove flag '%s'", e.FlagText)
	case printf.ErrLength:
		return fmt.Sprintf("remove length modifier '%s'", e.FlagText)
	default:
		return fmt.Sprintf("use '%s'", replacement)
	}
}
