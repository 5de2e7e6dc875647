package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/raoulx24/retainer/internal/mailbox"
	"github.com/raoulx24/retainer/internal/metrics"
	"github.com/raoulx24/retainer/internal/schedule"
	"github.com/raoulx24/retainer/internal/watcher"
	"github.com/raoulx24/retainer/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// serveCmd keeps running and prunes on schedule and on directory changes.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run continuously, pruning on cron and directory changes",
	Long: `Run one pass at startup, then a pass whenever the cron schedule fires or a
watched directory changes. Passes never overlap. SIGHUP reloads the
configuration (paths, policies, schedule and watch settings); logging,
metrics and history settings need a restart.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func serve(cmd *cobra.Command, args []string) error {
	a, err := setup(configPath)
	if err != nil {
		return err
	}
	defer a.Close()
	log := a.log

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.Info("shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = metrics.New("retainer", reg)

	// Mailbox for retention jobs
	mb := mailbox.New[worker.Job]()

	w := a.worker(mb).WithDryRun(dryRun)
	sched := schedule.New(a.cfg.Schedule.Cron, mb, log)
	watch := watcher.New(a.cfg, log, mb)

	if err := sched.Start(ctx); err != nil {
		return err
	}

	// Start watcher loop
	go func() {
		if err := watch.Start(ctx); err != nil {
			log.Error("watcher failed", "error", err)
			cancel()
		}
	}()

	var srv *http.Server
	if a.cfg.Metrics.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv = &http.Server{
			Addr:              a.cfg.Metrics.Listen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("serving metrics", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "error", err)
				cancel()
			}
		}()
	}

	// Hot reload on SIGHUP
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
			}

			newCfg, err := loadConfig(configPath)
			if err != nil {
				log.Error("config reload failed", "error", err)
				continue
			}
			if err := sched.Update(newCfg.Schedule.Cron); err != nil {
				log.Error("config reload failed", "error", err)
				continue
			}

			// Apply updates
			w.UpdateConfig(newCfg)
			watch.UpdateConfig(newCfg)

			log.Info("config reloaded", "paths", len(newCfg.Paths))
			mb.Put(worker.NewJob(worker.TriggerReload))
		}
	}()

	mb.Put(worker.NewJob(worker.TriggerStartup))

	// Start worker loop; returns once ctx is done and the current pass ended
	w.Start(ctx)

	sched.Stop()
	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics server shutdown", "error", err)
		}
	}

	log.Info("exit complete")
	return nil
}
