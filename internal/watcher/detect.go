package watcher

import (
	"context"
)

// detect scans every directory and enqueues one job if any changed since
// the previous scan. The first scan of a directory only records a baseline.
func (w *Watcher) detect(ctx context.Context) {
	w.mu.RLock()
	dirs := append([]string(nil), w.dirs...)
	w.mu.RUnlock()

	changed := false
	for _, dir := range dirs {
		sig, err := scan(dir)
		if err != nil {
			w.log.Warn("watcher: failed to read dir", "dir", dir, "error", err)
			continue
		}

		w.mu.RLock()
		last, seen := w.signatures[dir]
		w.mu.RUnlock()

		if seen && sig == last {
			continue
		}
		if seen && !w.isStable(ctx, dir, sig) {
			// still changing, retry on the next tick
			continue
		}

		w.mu.Lock()
		w.signatures[dir] = sig
		w.mu.Unlock()

		if seen {
			w.log.Debug("directory changed", "dir", dir)
			changed = true
		}
	}

	if changed {
		w.enqueue(ctx, "poll")
	}
}
