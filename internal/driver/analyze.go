package driver

import (
	"context"
	"errors"
	"fmt"

	"cfmtlint/internal/callsite"
	"cfmtlint/internal/cresolve"
	"cfmtlint/internal/diag"
	"cfmtlint/internal/lexer"
	"cfmtlint/internal/observ"
	"cfmtlint/internal/source"
	"cfmtlint/internal/trace"
)

// AnalyzeFile checks every printf-family call in a loaded file.
// Cancellation is observed between call sites; the partial result is
// returned with Err set to ctx.Err().
func AnalyzeFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *FileResult {
	cfg := opts.config()
	file := fs.Get(id)
	res := &FileResult{
		Path:   file.Path,
		FileID: id,
		Bag:    diag.NewBag(opts.maxDiagnostics(cfg)),
	}

	span, ctx := trace.StartFile(ctx, "analyze", file.Path)
	detail := "ok"
	defer func() { span.End(detail) }()

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file, cfg, opts)
		var cached CachedResult
		ok, err := opts.Cache.Get(key, &cached)
		switch {
		case err != nil:
			reportCacheError(res.Bag, file, err)
		case ok:
			for _, d := range cached.Diagnostics {
				res.Bag.Add(rebind(d, id))
			}
			res.Calls = cached.Calls
			res.Cached = true
			detail = "cached"
			return res
		}
	}

	lexIdx := timer.Begin("lex")
	st := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	timer.End(lexIdx, fmt.Sprintf("tokens=%d", st.Len()))

	scopeIdx := timer.Begin("scope")
	resolver := cresolve.New(st, cresolve.Options{Typedefs: cfg.TypedefTypes()})
	timer.End(scopeIdx, fmt.Sprintf("entities=%d", resolver.Scope().Len()))

	checkIdx := timer.Begin("check")
	candidates := callsite.Locate(st, callsite.LocateOptions{
		RequireStdio: opts.requireStdio(cfg),
		Functions:    cfg.Functions,
	})
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			res.Err = err
			detail = "cancelled"
			break
		}
		cs, ok := callsite.Extract(st, cand, resolver)
		if !ok {
			res.Skipped++
			span.Point(trace.ScopeCallSite, "skip", cand.Func.Name+": call not analyzable")
			continue
		}
		res.Calls++
		checkCall(res.Bag, file, cs, resolver, cfg)
	}
	timer.End(checkIdx, fmt.Sprintf("calls=%d skipped=%d", res.Calls, res.Skipped))
	span.Set("calls", fmt.Sprint(res.Calls))

	if opts.Cache != nil && res.Err == nil {
		if err := opts.Cache.Put(key, toCached(file.Path, Digest(file.Hash), res.Calls, res.Bag.Items())); err != nil {
			reportCacheError(res.Bag, file, err)
		}
	}

	if timer.Enabled() {
		res.Timing = timer.Report()
		addTimings(res.Bag, file.Path, res.Timing)
	}
	return res
}

// AnalyzeSource checks in-memory content; tests and stdin use it.
func AnalyzeSource(ctx context.Context, name string, content []byte, opts Options) (*source.FileSet, *FileResult) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return fs, AnalyzeFile(ctx, fs, id, opts)
}

// AnalyzePath loads and checks a single file.
func AnalyzePath(ctx context.Context, fs *source.FileSet, path string, opts Options) *FileResult {
	id, err := fs.Load(path)
	if err != nil {
		return loadFailure(path, err, opts)
	}
	return AnalyzeFile(ctx, fs, id, opts)
}

func loadFailure(path string, err error, opts Options) *FileResult {
	bag := diag.NewBag(opts.maxDiagnostics(opts.config()))
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
		Primary:  source.Span{}, // Empty span for I/O errors
	})
	return &FileResult{Path: path, Bag: bag, Err: fmt.Errorf("load %s: %w", path, err)}
}

func reportCacheError(bag *diag.Bag, file *source.File, err error) {
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.IOCacheError,
		Message:  fmt.Sprintf("cache: %v", err),
		Primary:  source.Span{File: file.ID},
	})
}

// IsCancelled reports whether the result stopped because of its context.
func (r *FileResult) IsCancelled() bool {
	return r != nil && (errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded))
}
