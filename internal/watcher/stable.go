package watcher

import (
	"context"
	"time"
)

// isStable reports whether dir still has signature sig after the debounce
// window, so a pass does not start while a backup is being written.
func (w *Watcher) isStable(ctx context.Context, dir string, sig uint64) bool {
	w.mu.RLock()
	debounce := w.debounce
	w.mu.RUnlock()

	if debounce <= 0 {
		return true
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(debounce):
	}

	again, err := scan(dir)
	if err != nil {
		return false
	}

	return again == sig
}
