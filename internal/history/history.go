// Package history keeps a SQLite journal of retention passes: when they ran,
// what they decided per path, and which files they removed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	reason      TEXT NOT NULL,
	mode        TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS run_paths (
	run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	path     TEXT NOT NULL,
	policy   TEXT NOT NULL,
	kept     INTEGER NOT NULL,
	dropped  INTEGER NOT NULL,
	deleted  INTEGER NOT NULL,
	failures INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS dropped_files (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	path   TEXT NOT NULL,
	name   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// Run is one journaled pass.
type Run struct {
	ID         string
	Trigger    string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
	Paths      []PathResult
}

// PathResult summarises one path of a pass.
type PathResult struct {
	Path     string
	Policy   string
	Kept     int
	Dropped  int
	Deleted  int
	Failures int
	// DroppedNames is written to the journal but not loaded back by Recent.
	DroppedNames []string
}

// Store is the journal.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports a single writer

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record writes run and its path results in one transaction.
func (s *Store) Record(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = sq.Insert("runs").
		Columns("id", "reason", "mode", "started_at", "finished_at", "error").
		Values(run.ID, run.Trigger, run.Mode, run.StartedAt.UnixNano(), run.FinishedAt.UnixNano(), run.Error).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, p := range run.Paths {
		_, err = sq.Insert("run_paths").
			Columns("run_id", "path", "policy", "kept", "dropped", "deleted", "failures").
			Values(run.ID, p.Path, p.Policy, p.Kept, p.Dropped, p.Deleted, p.Failures).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert run path: %w", err)
		}

		if len(p.DroppedNames) == 0 {
			continue
		}
		ins := sq.Insert("dropped_files").Columns("run_id", "path", "name")
		for _, name := range p.DroppedNames {
			ins = ins.Values(run.ID, p.Path, name)
		}
		if _, err := ins.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("insert dropped files: %w", err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit runs, newest first, with their path summaries.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := sq.Select("id", "reason", "mode", "started_at", "finished_at", "error").
		From("runs").
		OrderBy("started_at DESC").
		Limit(uint64(max(limit, 0))).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished int64
		)
		if err := rows.Scan(&r.ID, &r.Trigger, &r.Mode, &started, &finished, &r.Error); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.Unix(0, started)
		r.FinishedAt = time.Unix(0, finished)
		runs = append(runs, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		paths, err := s.paths(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Paths = paths
	}

	return runs, nil
}

func (s *Store) paths(ctx context.Context, runID string) ([]PathResult, error) {
	rows, err := sq.Select("path", "policy", "kept", "dropped", "deleted", "failures").
		From("run_paths").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("rowid").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query run paths: %w", err)
	}
	defer rows.Close()

	var out []PathResult
	for rows.Next() {
		var p PathResult
		if err := rows.Scan(&p.Path, &p.Policy, &p.Kept, &p.Dropped, &p.Deleted, &p.Failures); err != nil {
			return nil, fmt.Errorf("scan run path: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DroppedNames returns the files a run selected for removal under path.
func (s *Store) DroppedNames(ctx context.Context, runID, path string) ([]string, error) {
	rows, err := sq.Select("name").
		From("dropped_files").
		Where(sq.Eq{"run_id": runID, "path": path}).
		OrderBy("rowid").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query dropped files: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
