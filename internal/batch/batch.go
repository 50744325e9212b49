// Package batch applies one composition state to every photo in a
// directory using a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/AnyUserName/momento-cli/internal/pipeline"
	"github.com/AnyUserName/momento-cli/internal/state"
	"github.com/AnyUserName/momento-cli/internal/store"
)

// Config holds the parameters for one batch run.
type Config struct {
	InputDir  string
	OutputDir string
	State     state.State
	Workers   int
	Verbose   bool

	// Store, when set, also receives every rendered photo.
	Store *store.Store
}

// Result describes the outcome for one source.
type Result struct {
	Source  Source
	Path    string // output path, empty on failure
	Width   int
	Height  int
	Size    int64
	PhotoID int64 // store id, 0 when no store is configured
	Err     error
}

// Report summarizes a run.
type Report struct {
	Results  []Result
	Failed   int
	Workers  int
	Duration time.Duration
}

// Runner renders directories through a shared pipeline.
type Runner struct {
	cfg Config
	p   *pipeline.Pipeline
}

// New creates a runner.
func New(p *pipeline.Pipeline, cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Runner{cfg: cfg, p: p}
}

// Run renders every photo under InputDir. Individual failures are recorded
// in the report; Run itself fails only when nothing succeeded.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	sources, err := ScanImages(r.cfg.InputDir, r.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", r.cfg.InputDir)
	}
	r.logf("found %d images, state %s, %d workers", len(sources), r.cfg.State, r.cfg.Workers)

	results := make([]Result, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = r.render(ctx, s)
			if results[idx].Err == nil {
				r.logf("done: %s -> %s (%d bytes)", s.Key, results[idx].Path, results[idx].Size)
			}
		}(i, src)
	}
	wg.Wait()

	rep := &Report{Results: results, Workers: r.cfg.Workers}
	for _, res := range results {
		if res.Err != nil {
			rep.Failed++
			fmt.Fprintf(os.Stderr, "[momento] error: %s: %v\n", res.Source.RelPath, res.Err)
		}
	}
	rep.Duration = time.Since(start)

	if rep.Failed == len(sources) {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		return rep, fmt.Errorf("all %d images failed to render", rep.Failed)
	}
	if rep.Failed > 0 {
		fmt.Fprintf(os.Stderr, "[momento] warning: %d of %d images had errors\n", rep.Failed, len(sources))
	}
	return rep, nil
}

func (r *Runner) render(ctx context.Context, s Source) Result {
	res := Result{Source: s}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	r.logf("processing: %s", s.Key)

	data, err := os.ReadFile(s.AbsPath)
	if err != nil {
		res.Err = fmt.Errorf("read: %w", err)
		return res
	}
	out, err := r.p.ComposeBytes(ctx, data, r.cfg.State)
	if err != nil {
		res.Err = err
		return res
	}

	rel := s.Key + "." + out.Extension
	path := filepath.Join(r.cfg.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		res.Err = fmt.Errorf("create output dir: %w", err)
		return res
	}
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		res.Err = fmt.Errorf("write %s: %w", rel, err)
		return res
	}
	res.Path, res.Width, res.Height, res.Size = path, out.Width, out.Height, int64(len(out.Data))

	if r.cfg.Store != nil {
		ph, err := r.cfg.Store.Save(store.NewPhoto{
			Data:        out.Data,
			Timestamp:   time.Now(),
			AspectRatio: aspectOf(out.Width, out.Height),
		})
		if err != nil {
			res.Err = fmt.Errorf("store: %w", err)
			return res
		}
		res.PhotoID = ph.ID
	}
	return res
}

// aspectOf maps output dimensions onto the two supported capture ratios.
func aspectOf(w, h int) string {
	if w > h {
		return "16:9"
	}
	return "9:16"
}

func (r *Runner) logf(format string, args ...any) {
	if r.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[momento] "+format+"\n", args...)
	}
}
