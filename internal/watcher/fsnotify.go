package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raoulx24/retainer/internal/fsprobe"
)

// StartFsNotify enqueues a job once fsnotify has been quiet for the
// debounce window after a change in any watched directory.
func (w *Watcher) StartFsNotify(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	w.mu.RLock()
	dirs := append([]string(nil), w.dirs...)
	debounce := w.debounce
	w.mu.RUnlock()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	w.log.Info("watching directories with fsnotify", "dirs", len(dirs))

	// Channel to request debounce resets
	resetCh := make(chan struct{}, 1)
	defer close(resetCh)

	// Debounce goroutine
	go func() {
		var t *time.Timer
		for range resetCh {
			if t != nil {
				t.Stop()
			}
			t = time.AfterFunc(debounce, func() {
				defer func() {
					if r := recover(); r != nil {
						w.log.Error("enqueue panic", "panic", r)
					}
				}()
				w.enqueue(ctx, "fsnotify")
			})
		}
		if t != nil {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				w.log.Error("events channel closed")
				return nil
			}

			if fsprobe.IsProbeFile(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			w.log.Debug("event", "name", ev.Name, "op", ev.Op.String())

			// Non-blocking send to reset debounce
			select {
			case resetCh <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", "error", err)
		}
	}
}
