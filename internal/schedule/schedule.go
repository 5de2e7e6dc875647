// Package schedule triggers retention passes on a cron schedule.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/retainer/internal/logging"
	"github.com/raoulx24/retainer/internal/mailbox"
	"github.com/raoulx24/retainer/internal/worker"
)

// Scheduler posts a job to the worker mailbox every time the cron
// expression fires. It never runs a pass itself.
type Scheduler struct {
	mu      sync.Mutex
	expr    string
	cron    *cron.Cron
	mb      *mailbox.Mailbox[worker.Job]
	log     logging.Logger
	started bool // between Start and Stop, even with an empty expr
	running bool
}

// New creates a scheduler for the cron expression expr. An empty expr
// disables scheduling.
func New(expr string, mb *mailbox.Mailbox[worker.Job], log logging.Logger) *Scheduler {
	return &Scheduler{
		expr: expr,
		mb:   mb,
		log:  log,
	}
}

// Start validates the expression and starts firing. It stops by itself once
// ctx is done.
//
// Common expressions:
//   - "0 3 * * *"   daily at 3 AM
//   - "0 */6 * * *" every 6 hours
//   - "@daily"
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startLocked(); err != nil {
		return err
	}
	s.started = true

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) startLocked() error {
	if s.expr == "" {
		s.log.Info("cron schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.expr); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.expr, err)
	}

	c := cron.New()
	if _, err := c.AddFunc(s.expr, s.fire); err != nil {
		return fmt.Errorf("failed to schedule retention: %w", err)
	}

	c.Start()
	s.cron = c
	s.running = true
	s.log.Info("scheduler started", "schedule", s.expr)
	return nil
}

func (s *Scheduler) fire() {
	s.log.Debug("cron fired, enqueueing retention pass")
	s.mb.Put(worker.NewJob(worker.TriggerCron))
}

// Stop stops the scheduler. Firing callbacks only enqueue, so this returns
// promptly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.started = false
}

func (s *Scheduler) stopLocked() {
	if s.cron != nil && s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.log.Info("scheduler stopped")
	}
}

// Update swaps the expression, restarting the scheduler if it was started.
// On error the previous schedule keeps running.
func (s *Scheduler) Update(expr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expr == s.expr {
		return nil
	}
	if expr != "" {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", expr, err)
		}
	}

	s.stopLocked()
	s.expr = expr
	if !s.started {
		return nil
	}
	return s.startLocked()
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled fire time, or nil when not scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil || !s.running {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
