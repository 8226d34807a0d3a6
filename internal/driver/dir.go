package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cfmtlint/internal/source"
	"cfmtlint/internal/trace"
)

// SourceExtensions are the file suffixes AnalyzeDir picks up.
var SourceExtensions = []string{".c", ".h", ".cc", ".cpp", ".cxx", ".hpp"}

// IsSourceFile reports whether path has one of SourceExtensions.
func IsSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListSourceFiles возвращает отсортированный список C/C++ файлов в директории.
// Hidden directories are skipped.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir checks every source file under dir in parallel. Results are
// sorted by path. On cancellation the results finished so far are returned
// together with ctx.Err().
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return AnalyzeFiles(ctx, dir, files, opts)
}

// AnalyzeFiles checks the given files in parallel; baseDir anchors relative paths.
func AnalyzeFiles(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []*FileResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	span, ctx := trace.Start(ctx, trace.ScopeDriver, "analyze_dir")
	span.Set("files", fmt.Sprint(len(files)))

	// FileSet не потокобезопасен на запись: грузим всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	cfg := opts.config()
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = cfg.Check.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	opts.Config = cfg

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = loadFailure(path, loadErr, opts)
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})
			res := AnalyzeFile(gctx, fileSet, fileIDs[path], opts)
			results[i] = res
			if res.IsCancelled() {
				return res.Err
			}

			status := StatusDone
			switch {
			case res.Cached:
				status = StatusCached
			case res.Bag.HasErrors():
				status = StatusError
			}
			emit(opts.Progress, Event{
				File:     path,
				Stage:    StageCheck,
				Status:   status,
				Elapsed:  time.Since(started),
				Calls:    res.Calls,
				Findings: findings(res.Bag),
			})
			return nil
		})
	}

	waitErr := g.Wait()

	out := make([]*FileResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	detail := fmt.Sprintf("files=%d", len(out))
	if waitErr != nil {
		detail = "cancelled"
	}
	span.End(detail)
	return fileSet, out, waitErr
}

// AnalyzeTarget dispatches on whether target is a file or a directory.
func AnalyzeTarget(ctx context.Context, target string, opts Options) (*source.FileSet, []*FileResult, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return AnalyzeDir(ctx, target, opts)
	}
	fileSet := source.NewFileSetWithBase(filepath.Dir(target))
	res := AnalyzePath(ctx, fileSet, target, opts)
	if res.IsCancelled() {
		return fileSet, []*FileResult{res}, res.Err
	}
	return fileSet, []*FileResult{res}, nil
}
