// Package history persists conformance run outcomes in a local SQLite
// database so regressions can be traced across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/sycl-conformance/ctskit/packages/core/runner"
)

const queryTimeout = 30 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	suite      TEXT NOT NULL,
	started_at TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	passed     INTEGER NOT NULL,
	failed     INTEGER NOT NULL,
	skipped    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS case_results (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	name        TEXT NOT NULL,
	file        TEXT NOT NULL,
	passed      INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_case_results_name ON case_results(name);
`

// Store is a run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Run is one persisted conformance run.
type Run struct {
	ID        string
	Suite     string
	StartedAt time.Time
	Duration  time.Duration
	Passed    int
	Failed    int
	Skipped   int
}

// CaseRecord is one persisted case outcome.
type CaseRecord struct {
	RunID    string
	Name     string
	File     string
	Passed   bool
	Skipped  bool
	Duration time.Duration
}

// RecordRun persists a run and all its case results, returning the run ID.
func (s *Store) RecordRun(suiteName string, result *runner.RunResult) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	runID := uuid.NewString()
	startedAt := time.Now().Add(-result.Duration)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, suite, started_at, duration_ms, passed, failed, skipped)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, suiteName, startedAt.Format(time.RFC3339Nano),
		result.Duration.Milliseconds(), result.Passed, result.Failed, result.Skipped)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, r := range result.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO case_results (run_id, name, file, passed, skipped, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, r.Name, r.File, boolToInt(r.Passed), boolToInt(r.Skipped),
			r.Duration.Milliseconds())
		if err != nil {
			return "", fmt.Errorf("insert case result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, suite, started_at, duration_ms, passed, failed, skipped
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var durationMs int64
		if err := rows.Scan(&r.ID, &r.Suite, &startedAt, &durationMs, &r.Passed, &r.Failed, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CaseHistory returns the most recent outcomes for a case name, newest first.
func (s *Store) CaseHistory(name string, limit int) ([]CaseRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.run_id, c.name, c.file, c.passed, c.skipped, c.duration_ms
		 FROM case_results c JOIN runs r ON r.id = c.run_id
		 WHERE c.name = ? ORDER BY r.started_at DESC LIMIT ?`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("query case history: %w", err)
	}
	defer rows.Close()

	var records []CaseRecord
	for rows.Next() {
		var rec CaseRecord
		var passed, skipped int
		var durationMs int64
		if err := rows.Scan(&rec.RunID, &rec.Name, &rec.File, &passed, &skipped, &durationMs); err != nil {
			return nil, fmt.Errorf("scan case result: %w", err)
		}
		rec.Passed = passed != 0
		rec.Skipped = skipped != 0
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
