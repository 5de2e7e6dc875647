package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/raoulx24/retainer/internal/config"
	"github.com/raoulx24/retainer/internal/history"
	"github.com/raoulx24/retainer/internal/logging"
	"github.com/raoulx24/retainer/internal/mailbox"
	"github.com/raoulx24/retainer/internal/metrics"
	"github.com/raoulx24/retainer/internal/worker"
)

// app holds what every command builds from the config file.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	history *history.Store
	metrics *metrics.Metrics
}

// loadConfig loads and validates the configuration at path.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, errors.Join(errs...))
	}
	return cfg, nil
}

func setup(path string) (*app, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, err
	}
	log = log.With("config", path)

	a := &app{cfg: cfg, log: log}
	if cfg.History.Path != "" {
		a.history, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *app) worker(mb *mailbox.Mailbox[worker.Job]) *worker.Worker {
	w := worker.New(a.cfg, a.log, mb, nil).WithMetrics(a.metrics)
	if a.history != nil {
		w = w.WithHistory(a.history)
	}
	return w
}

func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.log.Warn("closing history", "error", err)
		}
	}
}
