// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion-run records to a SQLite database so
// past runs and their failures can be listed after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/convert-engine/pkg/types"
)

const dbFile = "history.db"

// Run is one recorded conversion run.
type Run struct {
	ID        int64
	StartedAt time.Time
	Roots     []string
	Source    types.Format
	Target    types.Format
	Workers   int
	Total     int
	Failed    int
}

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.Dir/history.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("history directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			roots TEXT NOT NULL,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			workers INTEGER NOT NULL,
			total INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS failures (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			path TEXT NOT NULL,
			reason TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_run_id ON failures(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a completed run and its failures, returning the run ID.
func (s *Store) Record(ctx context.Context, startedAt time.Time, job types.ConversionJob, result types.RunResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, roots, source, target, workers, total, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339),
		strings.Join(job.Roots, string(os.PathListSeparator)),
		string(job.Source), string(job.Target),
		job.Workers, result.Total, len(result.Failures),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, f := range result.Failures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO failures (run_id, path, reason) VALUES (?, ?, ?)`,
			runID, f.Path, f.Reason,
		); err != nil {
			return 0, fmt.Errorf("inserting failure for %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// List returns the most recent runs, newest first. A limit of zero uses
// the store's configured maximum.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, roots, source, target, workers, total, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, roots, source, target string
		if err := rows.Scan(&r.ID, &startedAt, &roots, &source, &target, &r.Workers, &r.Total, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = t
		}
		if roots != "" {
			r.Roots = strings.Split(roots, string(os.PathListSeparator))
		}
		r.Source = types.Format(source)
		r.Target = types.Format(target)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Failures returns the recorded failures for one run.
func (s *Store) Failures(ctx context.Context, runID int64) ([]types.Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, reason FROM failures WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying failures: %w", err)
	}
	defer rows.Close()

	var failures []types.Failure
	for rows.Next() {
		var f types.Failure
		if err := rows.Scan(&f.Path, &f.Reason); err != nil {
			return nil, fmt.Errorf("scanning failure: %w", err)
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

// Render writes a table of runs to w, one line per run.
func Render(w io.Writer, runs []Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no recorded runs")
		return
	}
	fmt.Fprintf(w, "%-5s %-20s %-6s %-6s %6s %6s\n", "ID", "STARTED", "FROM", "TO", "TOTAL", "FAILED")
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d %-20s %-6s %-6s %6d %6d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Source, r.Target, r.Total, r.Failed)
	}
}
