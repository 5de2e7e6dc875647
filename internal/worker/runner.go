package worker

import (
	"context"
)

// Start runs passes for mailbox jobs, one at a time, until ctx is done.
// Failed passes are logged; the loop keeps going.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker")
	for {
		job, ok := w.mb.Take(ctx)
		if !ok {
			w.log.Info("worker stopped")
			return
		}

		w.log.Debug("job received", "reason", job.Reason, "queued_at", job.At)
		if _, err := w.RunOnce(ctx, job.Reason); err != nil {
			w.log.Error("retention pass failed", "trigger", job.Reason, "error", err)
		}
	}
}
