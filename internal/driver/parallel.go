// Package driver orchestrates batch processing of unit files.
package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"logtag/internal/bytecode"
	"logtag/internal/diag"
	"logtag/internal/facade"
	"logtag/internal/gen"
	"logtag/internal/pipeline"
	"logtag/internal/rewrite"
)

// Options configures a batch run.
type Options struct {
	// Jobs limits parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps each per-file diagnostic bag; <= 0 means 100.
	MaxDiagnostics int
	// OutDir receives rewritten unit files. Empty rewrites in place.
	OutDir string
	// GenDir receives generated property sources. Empty means no generation.
	GenDir string
	// Facade is the recognized logging facade for this run.
	Facade facade.Facade
	// Progress receives per-file events; nil disables reporting.
	Progress pipeline.ProgressSink
}

// UnitResult is the outcome for one unit file.
type UnitResult struct {
	Path          string
	OutPath       string
	QualifiedName string
	Injections    int
	Artifact      *gen.Artifact
	Bag           *diag.Bag
	Timings       pipeline.Timings
	Err           error
}

func (o Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return min(jobs, n)
}

func (o Options) bag() *diag.Bag {
	maxDiagnostics := o.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	return diag.NewBag(maxDiagnostics)
}

func (o Options) emit(evt pipeline.Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(evt)
	}
}

// ListUnitFiles returns the sorted list of unit files under dir.
func ListUnitFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, bytecode.UnitFileExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sorted for a deterministic processing and output order.
	sort.Strings(files)
	return files, nil
}

// RewriteDir rewrites every unit file under dir in parallel.
func RewriteDir(ctx context.Context, dir string, opts Options) ([]UnitResult, error) {
	files, err := ListUnitFiles(dir)
	if err != nil {
		return nil, err
	}
	return RewriteFiles(ctx, files, opts)
}

// RewriteFiles rewrites the given unit files in parallel. Results come back
// in input order; per-file failures are recorded in UnitResult.Err and do
// not cancel the remaining files.
func RewriteFiles(ctx context.Context, files []string, opts Options) ([]UnitResult, error) {
	if len(files) == 0 {
		return nil, nil
	}

	// Indices are unique per goroutine, no mutex needed.
	results := make([]UnitResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = processOne(path, opts)
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func processOne(path string, opts Options) UnitResult {
	start := time.Now()
	res := UnitResult{Path: path, Bag: opts.bag()}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	opts.emit(pipeline.Event{File: path, Stage: pipeline.StageDecode, Status: pipeline.StatusWorking})
	unit, err := bytecode.ReadUnitFile(path)
	res.Timings.Set(pipeline.StageDecode, time.Since(start))
	if err != nil {
		res.Err = err
		opts.emit(pipeline.Event{File: path, Stage: pipeline.StageDecode, Status: pipeline.StatusError, Err: err})
		return res
	}
	res.QualifiedName = unit.QualifiedName

	// Generation runs first: it owns the visibility precondition, and a unit
	// it rejects must never reach the rewriter.
	if opts.GenDir != "" {
		genStart := time.Now()
		opts.emit(pipeline.Event{File: path, Stage: pipeline.StageGen, Status: pipeline.StatusWorking})
		if art, ok := gen.Property(unit, reporter); ok {
			res.Artifact = &art
			if err := writeArtifact(opts.GenDir, &art); err != nil {
				res.Timings.Set(pipeline.StageGen, time.Since(genStart))
				res.Err = err
				opts.emit(pipeline.Event{File: path, Stage: pipeline.StageGen, Status: pipeline.StatusError, Err: err})
				return res
			}
		}
		res.Timings.Set(pipeline.StageGen, time.Since(genStart))
		if res.Bag.HasErrors() {
			// Precondition failed (private annotated unit): the unit file is
			// left untouched.
			opts.emit(pipeline.Event{File: path, Stage: pipeline.StageGen, Status: pipeline.StatusError})
			return res
		}
	}

	rewriteStart := time.Now()
	opts.emit(pipeline.Event{File: path, Stage: pipeline.StageRewrite, Status: pipeline.StatusWorking})
	rewritten, injections := rewrite.Unit(unit, opts.Facade, reporter)
	res.Injections = injections
	res.Timings.Set(pipeline.StageRewrite, time.Since(rewriteStart))

	encodeStart := time.Now()
	opts.emit(pipeline.Event{File: path, Stage: pipeline.StageEncode, Status: pipeline.StatusWorking})
	res.OutPath = path
	if opts.OutDir != "" {
		res.OutPath = filepath.Join(opts.OutDir, filepath.Base(path))
	}
	if err := bytecode.WriteUnitFile(res.OutPath, rewritten); err != nil {
		res.Timings.Set(pipeline.StageEncode, time.Since(encodeStart))
		res.Err = err
		opts.emit(pipeline.Event{File: path, Stage: pipeline.StageEncode, Status: pipeline.StatusError, Err: err})
		return res
	}
	res.Timings.Set(pipeline.StageEncode, time.Since(encodeStart))

	opts.emit(pipeline.Event{File: path, Stage: pipeline.StageEncode, Status: pipeline.StatusDone, Elapsed: time.Since(start)})
	return res
}

func writeArtifact(dir string, art *gen.Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, art.FileName), []byte(art.Source), 0o644)
}
