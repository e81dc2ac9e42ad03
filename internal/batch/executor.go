package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"

	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

// Executor orchestrates a batch.
//
// It manages the lifecycle of every input module:
//  1. Open the module snapshot
//  2. Find the VM and classify its runtime (once per runtime)
//  3. Restore the virtualized methods
//  4. Hand the report to every enabled sink
type Executor struct {
	Config  *Config
	sinks   []Sink
	reports []*Report
	stats   *ExecutionStats
	loader  *snapshot.Loader
	cache   *csvm.Cache

	mu     sync.RWMutex
	sinkMu sync.Mutex
}

// NewExecutor creates a new batch executor.
func NewExecutor(cfg *Config) (*Executor, error) {
	loader, err := snapshot.NewLoader(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create module loader: %w", err)
	}
	return &Executor{
		Config: cfg,
		stats:  &ExecutionStats{},
		loader: loader,
		cache:  csvm.NewCache(),
	}, nil
}

// Register adds a sink to the batch.
func (e *Executor) Register(s Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, s)
}

// RegisterAll adds multiple sinks to the batch.
func (e *Executor) RegisterAll(sinks ...Sink) {
	for _, s := range sinks {
		e.Register(s)
	}
}

// Execute restores every module in paths.
//
// Returns an error only if there is nothing to do or the context is canceled.
// Per module failures are collected in the reports and stats.
func (e *Executor) Execute(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return ErrNoInputs
	}
	e.mu.Lock()
	e.stats.StartTime = time.Now()
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.stats.EndTime = time.Now()
		e.mu.Unlock()
		if e.Config.Verbose {
			log.Info("Execution statistics:")
			log.Info(e.Stats().Summary())
		}
	}()

	var (
		p   *mpb.Progress
		bar *mpb.Bar
	)
	if e.Config.Progress {
		p = mpb.NewWithContext(ctx,
			mpb.WithWidth(60),
			mpb.WithRefreshRate(180*time.Millisecond),
		)
		bar = p.New(int64(len(paths)),
			mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding("-").Rbound("|"),
			mpb.PrependDecorators(
				decor.Name("\tmodules "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO), "✅ "),
			),
		)
	}

	sinks := e.enabledSinks()
	concurrency := e.Config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, path := range paths {
		path := path // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			if bar != nil {
				defer bar.Increment()
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			r := e.process(gctx, path)
			r.Duration = time.Since(start)
			if errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded) {
				return r.Err
			}
			e.record(r)
			e.consume(gctx, sinks, r)
			return nil
		})
	}
	err := g.Wait()
	if p != nil {
		if !bar.Completed() {
			bar.Abort(false)
		}
		p.Wait()
	}
	return err
}

func (e *Executor) enabledSinks() []Sink {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var sinks []Sink
	for _, s := range e.sinks {
		if s.Enabled(e.Config) {
			sinks = append(sinks, s)
		}
	}
	return sinks
}

// process restores one module. Failures are reported, not returned.
func (e *Executor) process(ctx context.Context, path string) *Report {
	r := &Report{Path: path}
	mod, err := snapshot.Open(path)
	if err != nil {
		r.Err = err
		log.WithError(err).Errorf("Failed to open %s", path)
		return r
	}
	r.Module = mod

	vm := csvm.Find(mod)
	if !vm.Detected() {
		log.WithField("module", mod.Name()).Info("No CSVM methods found")
		r.Outcome = &csvm.Outcome{}
		return r
	}
	r.VMName = vm.VMName()

	out, err := vm.Restore(ctx, csvm.Options{
		Catalogs:     e.Config.Catalogs,
		Strict:       e.Config.Strict,
		KeepResource: e.Config.KeepResource,
		Load:         e.load,
		Cache:        e.cache,
	})
	r.Outcome = out
	if err != nil {
		r.Err = err
		log.WithError(err).Errorf("Failed to restore %s", mod.Name())
		return r
	}
	log.WithFields(log.Fields{
		"converted": out.Converted,
		"warned":    out.Warned,
		"skipped":   out.Skipped,
	}).Infof("Restored %s", mod.Name())
	return r
}

// load opens a VM runtime module, honoring the configured override.
func (e *Executor) load(path string) (cil.ModuleView, error) {
	if e.Config.Runtime != "" {
		log.WithField("runtime", filepath.Base(e.Config.Runtime)).Debug("Using configured VM runtime")
		path = e.Config.Runtime
	}
	m, err := e.loader.Load(path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (e *Executor) record(r *Report) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reports = append(e.reports, r)
	e.stats.add(r)
}

func (e *Executor) consume(ctx context.Context, sinks []Sink, r *Report) {
	e.sinkMu.Lock()
	defer e.sinkMu.Unlock()
	for _, s := range sinks {
		if err := s.Consume(ctx, r); err != nil {
			log.WithError(err).Errorf("Sink %s failed for %s", s.Name(), r.Path)
			e.mu.Lock()
			e.stats.Errors = append(e.stats.Errors, fmt.Errorf("%w: %s: %s: %v", ErrSinkFailed, s.Name(), r.Path, err))
			e.mu.Unlock()
		}
	}
}

// Reports returns the collected reports in completion order.
func (e *Executor) Reports() []*Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	reports := make([]*Report, len(e.reports))
	copy(reports, e.reports)
	return reports
}

// Stats returns the execution statistics.
func (e *Executor) Stats() *ExecutionStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	statsCopy := *e.stats
	return &statsCopy
}

// CacheLen returns the number of VM runtimes classified so far.
func (e *Executor) CacheLen() int { return e.cache.Len() }
