// Package worker runs retention passes: for each configured path it lists the
// files, extracts their timestamps, applies the policy and removes (or only
// reports) what falls outside it.
package worker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raoulx24/retainer/internal/config"
	"github.com/raoulx24/retainer/internal/fs"
	"github.com/raoulx24/retainer/internal/history"
	"github.com/raoulx24/retainer/internal/logging"
	"github.com/raoulx24/retainer/internal/mailbox"
	"github.com/raoulx24/retainer/internal/metrics"
	"github.com/raoulx24/retainer/internal/pattern"
	"github.com/raoulx24/retainer/internal/retention"
	"github.com/raoulx24/retainer/internal/snapshot"
)

// ErrUnknownPath is returned by Simulate for a path missing from the config.
var ErrUnknownPath = errors.New("path is not configured")

// Recorder persists finished passes. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, run history.Run) error
}

// Worker applies retention to the configured paths.
type Worker struct {
	mu      sync.RWMutex
	cfg     *config.Config
	dryRun  bool
	fs      fs.FS
	log     logging.Logger
	mb      *mailbox.Mailbox[Job]
	metrics *metrics.Metrics
	history Recorder
}

// New creates a worker. A nil filesystem means the OS filesystem.
func New(cfg *config.Config, log logging.Logger, mb *mailbox.Mailbox[Job], filesystem fs.FS) *Worker {
	log.Debug("creating worker")
	if filesystem == nil {
		filesystem = fs.New()
	}
	if mb == nil {
		mb = mailbox.New[Job]()
	}
	return &Worker{
		cfg: cfg,
		fs:  filesystem,
		log: log,
		mb:  mb,
	}
}

// WithDryRun makes RunOnce report instead of delete.
func (w *Worker) WithDryRun(dryRun bool) *Worker {
	w.dryRun = dryRun
	return w
}

// WithMetrics attaches Prometheus collectors.
func (w *Worker) WithMetrics(m *metrics.Metrics) *Worker {
	w.metrics = m
	return w
}

// WithHistory attaches a run journal.
func (w *Worker) WithHistory(r Recorder) *Worker {
	w.history = r
	return w
}

// UpdateConfig hot-reloads the configuration. A pass already running keeps
// the config it started with.
func (w *Worker) UpdateConfig(cfg *config.Config) {
	w.log.Debug("entering Worker.UpdateConfig()")
	w.mu.Lock()
	w.cfg = cfg
	w.mu.Unlock()
}

func (w *Worker) config() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg
}

// RunOnce processes every configured path in order. The first fatal error
// (pattern, timezone, listing or deletion) aborts the rest of the pass;
// deletions already done are not undone.
func (w *Worker) RunOnce(ctx context.Context, trigger string) (Report, error) {
	mode := ModeDelete
	if w.dryRun {
		mode = ModeDryRun
	}
	cfg := w.config()
	return w.run(ctx, trigger, mode, cfg.Retention, cfg.Paths, DirLister{FS: w.fs})
}

// Simulate evaluates the single configured path target without touching it.
// With a nil lister the directory itself is listed.
func (w *Worker) Simulate(ctx context.Context, target string, lister Lister) (Report, error) {
	cfg := w.config()

	var paths []config.PathConfig
	for _, p := range cfg.Paths {
		if filepath.Clean(p.Path) == filepath.Clean(target) {
			paths = append(paths, p)
			break
		}
	}
	if len(paths) == 0 {
		return Report{}, fmt.Errorf("%w: %s", ErrUnknownPath, target)
	}

	if lister == nil {
		lister = DirLister{FS: w.fs}
	}
	return w.run(ctx, TriggerSimulate, ModeSimulate, cfg.Retention, paths, lister)
}

func (w *Worker) run(ctx context.Context, trigger string, mode Mode, global retention.Policy, paths []config.PathConfig, lister Lister) (Report, error) {
	report := Report{
		RunID:     uuid.NewString(),
		Trigger:   trigger,
		Mode:      mode,
		StartedAt: time.Now(),
	}
	log := w.log
	log.Info("retention pass started", "run_id", report.RunID, "trigger", trigger, "mode", mode.String(), "paths", len(paths))

	var err error
	for _, p := range paths {
		var pr PathReport
		pr, err = w.processPath(ctx, p, p.Policy(global), mode, lister)
		report.Paths = append(report.Paths, pr)
		if err != nil {
			break
		}
	}

	report.FinishedAt = time.Now()
	w.metrics.ObservePass(trigger, report.FinishedAt.Sub(report.StartedAt), err)
	if w.history != nil {
		// use a fresh context so an interrupted pass is still journaled
		if herr := w.history.Record(context.WithoutCancel(ctx), report.record(err)); herr != nil {
			log.Warn("failed to record history", "run_id", report.RunID, "error", herr)
		}
	}

	if err != nil {
		return report, err
	}
	log.Info("retention pass finished", "run_id", report.RunID, "duration", report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

func (w *Worker) processPath(ctx context.Context, pc config.PathConfig, policy retention.Policy, mode Mode, lister Lister) (PathReport, error) {
	pr := PathReport{Path: pc.Path, Policy: policy.String()}
	log := w.log
	log.Debug("processing path", "path", pc.Path, "pattern", pc.FilePattern, "policy", pr.Policy)

	matcher, err := pattern.Compile(pc.FilePattern)
	if err != nil {
		return pr, err
	}
	loc, err := pc.Location()
	if err != nil {
		return pr, fmt.Errorf("path %s: timezone %q: %w", pc.Path, pc.Timezone, err)
	}

	names, err := lister.List(ctx, pc.Path)
	if err != nil {
		return pr, err
	}

	entries, failures := snapshot.Parse(names, matcher, loc)
	for _, f := range failures {
		log.Warn("skipping file", "path", pc.Path, "file", f.Name, "error", f.Err)
	}
	pr.Failures = failures

	snapshot.SortNewestFirst(entries)
	keep, drop := retention.Retain(entries, policy)
	pr.Kept = snapshot.Names(keep)
	pr.Dropped = snapshot.Names(drop)

	for _, name := range pr.Kept {
		log.Debug("keeping", "path", pc.Path, "file", name)
	}

	if mode == ModeDelete {
		pr.Deleted, err = w.deleteAll(ctx, pc.Path, pr.Dropped)
	} else {
		for _, name := range pr.Dropped {
			log.Info("would delete", "path", pc.Path, "file", name)
		}
	}

	w.metrics.ObservePath(pc.Path, len(pr.Kept), len(pr.Dropped), pr.Deleted, len(pr.Failures))
	log.Info("path processed", "path", pc.Path, "kept", len(pr.Kept), "dropped", len(pr.Dropped),
		"deleted", pr.Deleted, "skipped", len(pr.Failures))
	return pr, err
}

// deleteAll removes names from dir in order. Files that are already gone
// are skipped; directories are removed recursively.
func (w *Worker) deleteAll(ctx context.Context, dir string, names []string) (int, error) {
	deleted := 0
	for _, name := range names {
		target := filepath.Join(dir, name)

		info, err := w.fs.Stat(target)
		if fs.IsNotExist(err) {
			w.log.Debug("already gone", "file", target)
			continue
		}
		if err != nil {
			return deleted, fmt.Errorf("stat %s: %w", target, err)
		}

		if info.IsDir {
			err = w.fs.RemoveAll(ctx, target)
		} else {
			err = w.fs.Remove(ctx, target)
		}
		if err != nil {
			return deleted, fmt.Errorf("deleting %s: %w", target, err)
		}

		w.log.Info("deleted", "file", target)
		deleted++
	}
	return deleted, nil
}
