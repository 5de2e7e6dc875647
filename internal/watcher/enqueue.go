package watcher

import (
	"context"

	"github.com/raoulx24/retainer/internal/worker"
)

// enqueue submits a retention job to the worker mailbox.
func (w *Watcher) enqueue(ctx context.Context, source string) {
	select {
	case <-ctx.Done():
		w.log.Debug("watcher: context canceled before enqueue")
		return
	default:
		// never blocks: the mailbox keeps only the latest job
		w.mb.Put(worker.NewJob(worker.TriggerWatch))
		w.log.Info("watcher: queued retention pass", "source", source)
	}
}
