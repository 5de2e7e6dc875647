package worker

import (
	"time"

	"github.com/raoulx24/retainer/internal/history"
	"github.com/raoulx24/retainer/internal/snapshot"
)

// Mode selects what a pass does with the drop set.
type Mode int

const (
	// ModeDelete removes dropped files.
	ModeDelete Mode = iota
	// ModeDryRun only reports.
	ModeDryRun
	// ModeSimulate reports on a single path, optionally from a listing file.
	ModeSimulate
)

func (m Mode) String() string {
	switch m {
	case ModeDelete:
		return "delete"
	case ModeDryRun:
		return "dry-run"
	case ModeSimulate:
		return "simulate"
	}
	return "unknown"
}

// Report is the outcome of one pass.
type Report struct {
	RunID      string
	Trigger    string
	Mode       Mode
	StartedAt  time.Time
	FinishedAt time.Time
	Paths      []PathReport
}

// PathReport is the partition computed for one configured path.
type PathReport struct {
	Path     string
	Policy   string
	Kept     []string
	Dropped  []string
	Failures []snapshot.Failure
	Deleted  int
}

func (r Report) record(err error) history.Run {
	run := history.Run{
		ID:         r.RunID,
		Trigger:    r.Trigger,
		Mode:       r.Mode.String(),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	if err != nil {
		run.Error = err.Error()
	}
	for _, p := range r.Paths {
		run.Paths = append(run.Paths, history.PathResult{
			Path:         p.Path,
			Policy:       p.Policy,
			Kept:         len(p.Kept),
			Dropped:      len(p.Dropped),
			Deleted:      p.Deleted,
			Failures:     len(p.Failures),
			DroppedNames: p.Dropped,
		})
	}
	return run
}
