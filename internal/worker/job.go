package worker

import (
	"time"
)

// Trigger names used in logs, metrics and history.
const (
	TriggerCLI      = "cli"
	TriggerStartup  = "startup"
	TriggerCron     = "cron"
	TriggerWatch    = "watch"
	TriggerReload   = "reload"
	TriggerSimulate = "simulate"
)

// Job asks the worker for one retention pass.
type Job struct {
	Reason string
	At     time.Time
}

// NewJob stamps a job with the current time.
func NewJob(reason string) Job {
	return Job{Reason: reason, At: time.Now()}
}
