package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"tabtidy/internal/ast"
	"tabtidy/internal/diag"
	"tabtidy/internal/lexer"
	"tabtidy/internal/observ"
	"tabtidy/internal/source"
	"tabtidy/internal/tidy"
	"tabtidy/internal/trace"
)

// Mode selects what happens with the formatted output.
type Mode uint8

const (
	// ModeWrite rewrites changed files in place.
	ModeWrite Mode = iota
	// ModeCheck only reports whether files would change.
	ModeCheck
	// ModeStdout returns the formatted text without touching files.
	ModeStdout
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModeStdout:
		return "stdout"
	default:
		return "unknown"
	}
}

// TidyOptions configures a tidy run.
type TidyOptions struct {
	Tidy           tidy.Options
	Mode           Mode
	Diff           bool // заполнять FileResult.Diff
	Jobs           int  // 0 - GOMAXPROCS
	MaxDiagnostics int
	Cache          *ResultCache // nil отключает кэш
	Progress       ProgressSink
	Timings        bool
}

// FileResult captures the result of tidying a single file.
type FileResult struct {
	Path      string
	Kind      ast.FileKind
	FileID    source.FileID
	Changed   bool
	Formatted []byte
	Diff      string
	Bag       *diag.Bag
	Cached    bool
	Timing    *observ.Report
	Err       error
}

// TidyPaths formats the files found under paths in parallel.
// Per-file failures land in FileResult.Err; the returned error is reserved
// for problems that stop the whole run (bad options, no files, cancellation).
func TidyPaths(ctx context.Context, paths []string, opts TidyOptions) (*source.FileSet, []FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if _, err := tidy.New(opts.Tidy); err != nil {
		return nil, nil, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "tidy_paths", trace.CurrentSpan(ctx))
	defer span.End("")

	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, ErrNoFiles
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	// FileSet не потокобезопасен: загружаем всё заранее
	fileSet := source.NewFileSet()
	results := make([]FileResult, len(files))
	for i, path := range files {
		results[i] = FileResult{Path: path, Kind: KindFor(path)}
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			results[i].Err = fmt.Errorf("load %s: %w", path, loadErr)
			trace.Error(tracer, trace.ScopeFile, path, loadErr, span.ID())
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
			continue
		}
		results[i].FileID = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(trace.WithSpan(ctx, span))
	g.SetLimit(min(jobs, len(files)))
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индексы уникальны для каждой горутины, мьютекс не нужен
			tidyLoaded(gctx, fileSet.Get(results[i].FileID), &results[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// TidySource formats in-memory content, e.g. stdin. Nothing is written.
func TidySource(ctx context.Context, name string, content []byte, kind ast.FileKind, opts TidyOptions) (*source.FileSet, FileResult, error) {
	if _, err := tidy.New(opts.Tidy); err != nil {
		return nil, FileResult{}, err
	}
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	res := FileResult{Path: name, Kind: kind, FileID: id}
	opts.Mode = ModeStdout
	tidyLoaded(ctx, fileSet.Get(id), &res, opts)
	return fileSet, res, res.Err
}

func maxDiagnostics(opts TidyOptions) int {
	if opts.MaxDiagnostics <= 0 {
		return 256
	}
	return opts.MaxDiagnostics
}

// tidyLoaded runs the lex → tidy → write sequence for one loaded file.
func tidyLoaded(ctx context.Context, sf *source.File, res *FileResult, opts TidyOptions) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, sf.Path, trace.CurrentSpan(ctx))
	started := time.Now()
	defer func() {
		span.WithExtra("changed", strconv.FormatBool(res.Changed)).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			End("")
	}()

	res.Bag = diag.NewBag(maxDiagnostics(opts))
	normalized := sf.Flags.Normalized()

	key := CacheKeyFor(sf.Content, opts.Tidy.Fingerprint(), res.Kind)
	var cached CachedResult
	hit, cacheErr := opts.Cache.Get(key, &cached)
	if cacheErr != nil {
		trace.Error(tracer, trace.ScopeFile, "cache_get", cacheErr, span.ID())
	}
	if hit {
		res.Cached = true
		res.Formatted = cached.Formatted
		res.Changed = cached.Changed || normalized
		restoreDiagnostics(res.Bag, sf.ID, cached.Diagnostics)
		emit(opts.Progress, Event{File: res.Path, Stage: StageTidy, Status: StatusCached})
	} else {
		var timer *observ.Timer
		if opts.Timings {
			timer = observ.NewTimer()
		}
		formatted, err := runPipeline(ctx, sf, res, opts, timer, span.ID())
		if err != nil {
			res.Err = err
			emit(opts.Progress, Event{File: res.Path, Stage: StageTidy, Status: StatusError, Err: err})
			return
		}
		res.Formatted = formatted
		changedText := !bytes.Equal(sf.Content, formatted)
		res.Changed = changedText || normalized
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
		putErr := opts.Cache.Put(key, &CachedResult{
			Formatted:   formatted,
			Changed:     changedText,
			Diagnostics: cacheDiagnostics(res.Bag),
		})
		if putErr != nil {
			trace.Error(tracer, trace.ScopeFile, "cache_put", putErr, span.ID())
		}
	}

	res.Bag.Sort()

	if opts.Diff && res.Changed {
		res.Diff = UnifiedDiff(res.Path, sf.Content, res.Formatted)
	}

	if opts.Mode == ModeWrite && res.Changed {
		emit(opts.Progress, Event{File: res.Path, Stage: StageWrite, Status: StatusWorking})
		if err := writeFile(res.Path, res.Formatted); err != nil {
			res.Err = err
			trace.Error(tracer, trace.ScopeFile, res.Path, err, span.ID())
			emit(opts.Progress, Event{File: res.Path, Stage: StageWrite, Status: StatusError, Err: err})
			return
		}
	}
	if opts.Mode == ModeCheck {
		res.Formatted = nil
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageTidy, Status: StatusDone, Elapsed: time.Since(started)})
}

func runPipeline(ctx context.Context, sf *source.File, res *FileResult, opts TidyOptions, timer *observ.Timer, parent uint64) ([]byte, error) {
	tracer := trace.FromContext(ctx)

	emit(opts.Progress, Event{File: res.Path, Stage: StageLex, Status: StatusWorking})
	var tree *ast.File
	lexSpan := trace.Begin(tracer, trace.ScopePass, "lex", parent)
	timer.Track("lex", func() {
		tree = lexer.Lex(sf, lexer.Options{Kind: res.Kind, Reporter: lexer.Diagnostics(res.Bag)})
	})
	lexSpan.WithExtra("diagnostics", strconv.Itoa(res.Bag.Len())).End("")

	// Pipeline не потокобезопасен, поэтому свой на каждый файл
	pipeline, err := tidy.New(opts.Tidy)
	if err != nil {
		return nil, err
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageTidy, Status: StatusWorking})
	for _, pass := range pipeline.Passes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		passSpan := trace.Begin(tracer, trace.ScopePass, pass.Name(), parent)
		timer.Track(pass.Name(), func() { pass.Apply(tree) })
		passSpan.End("")
	}
	return tree.Bytes(), nil
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode.Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Summary counts results by outcome.
type Summary struct {
	Files   int
	Changed int
	Cached  int
	Failed  int
	Errors  int // файлы с диагностиками уровня error
}

// Summarize aggregates results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		if r.Changed {
			s.Changed++
		}
		if r.Cached {
			s.Cached++
		}
		if r.Bag != nil && r.Bag.HasErrors() {
			s.Errors++
		}
	}
	return s
}

// TimingReport merges per-file timings.
func TimingReport(results []FileResult) observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	return observ.Merge(reports...)
}
