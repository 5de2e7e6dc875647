// Package watcher monitors the configured directories and asks the worker
// for a retention pass when one of them changes.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raoulx24/retainer/internal/config"
	"github.com/raoulx24/retainer/internal/fsprobe"
	"github.com/raoulx24/retainer/internal/logging"
	"github.com/raoulx24/retainer/internal/mailbox"
	"github.com/raoulx24/retainer/internal/worker"
)

// Watcher observes directories and enqueues a job after they settle.
type Watcher struct {
	mu sync.RWMutex

	dirs     []string
	interval time.Duration
	mode     string
	debounce time.Duration

	log logging.Logger

	// last directory signature seen by the poller
	signatures map[string]uint64

	mb     *mailbox.Mailbox[worker.Job]
	reload chan struct{}
}

// New creates a watcher for every configured path.
func New(cfg *config.Config, log logging.Logger, mb *mailbox.Mailbox[worker.Job]) *Watcher {
	w := &Watcher{
		log:        log,
		mb:         mb,
		signatures: map[string]uint64{},
		reload:     make(chan struct{}, 1),
	}
	w.apply(cfg)
	return w
}

// Start chooses the watching strategy from config and runs it until ctx is
// done. A config update restarts the strategy.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		runCtx, cancel := context.WithCancel(ctx)
		errCh := make(chan error, 1)
		go func() { errCh <- w.run(runCtx) }()

		select {
		case <-ctx.Done():
			cancel()
			<-errCh
			return nil
		case <-w.reload:
			w.log.Debug("watcher restarting after config change")
			cancel()
			if err := <-errCh; err != nil {
				return err
			}
		case err := <-errCh:
			cancel()
			if err != nil {
				return err
			}
			// strategy ended on its own (e.g. fsnotify channel closed)
			select {
			case <-ctx.Done():
				return nil
			case <-w.reload:
			}
		}
	}
}

func (w *Watcher) run(ctx context.Context) error {
	w.mu.RLock()
	mode := w.mode
	dirs := append([]string(nil), w.dirs...)
	w.mu.RUnlock()

	switch mode {
	case "off":
		<-ctx.Done()
		return nil

	case "fsnotify":
		return w.StartFsNotify(ctx)

	case "poll":
		w.StartPolling(ctx)
		return nil

	case "auto":
		for _, dir := range dirs {
			res := fsprobe.Probe(dir)
			if !res.FsnotifySupported {
				w.log.Warn("fsnotify disabled, falling back to polling", "dir", dir, "reason", res.Reason)
				w.StartPolling(ctx)
				return nil
			}
		}
		return w.StartFsNotify(ctx)

	default:
		return fmt.Errorf("unknown watch mode %q", mode)
	}
}
