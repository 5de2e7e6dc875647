package watcher

import (
	"slices"

	"github.com/raoulx24/retainer/internal/config"
)

// UpdateConfig updates watcher fields atomically for hot‑reload and
// restarts the running strategy.
func (w *Watcher) UpdateConfig(cfg *config.Config) {
	w.apply(cfg)

	select {
	case w.reload <- struct{}{}:
	default:
	}
}

func (w *Watcher) apply(cfg *config.Config) {
	dirs := make([]string, 0, len(cfg.Paths))
	for _, p := range cfg.Paths {
		if !slices.Contains(dirs, p.Path) {
			dirs = append(dirs, p.Path)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.signatures {
		if !slices.Contains(dirs, dir) {
			delete(w.signatures, dir)
		}
	}

	w.dirs = dirs
	w.mode = cfg.Watch.Mode
	w.interval = cfg.Watch.PollInterval
	w.debounce = cfg.Watch.Debounce
}
