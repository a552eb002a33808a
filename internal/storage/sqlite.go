package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// RunOutcome is the recorded fate of one submitted start command.
type RunOutcome string

const (
	OutcomeRunning RunOutcome = "running"
	OutcomeSuccess RunOutcome = "success"
	OutcomeFailure RunOutcome = "failure"
	OutcomeStopped RunOutcome = "stopped"
)

// Run is one start command and its inferred result. This is a command
// audit: log lines themselves are never persisted.
type Run struct {
	ID         int64
	Target     string
	Mode       string
	DryRun     bool
	Limit      int // 0 means unbounded
	Outcome    RunOutcome
	StartedAt  time.Time
	FinishedAt time.Time // zero until settled
}

// Store handles persistent run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the run history database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// createTables creates the database schema
func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target TEXT NOT NULL,
		mode TEXT NOT NULL,
		dry_run INTEGER NOT NULL,
		item_limit INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started
	ON runs(started_at);
	`

	_, err := db.Exec(schema)
	return err
}

// RecordStart inserts a row for a newly submitted start command and returns
// its id for later settlement.
func (s *Store) RecordStart(run Run) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO runs (target, mode, dry_run, item_limit, outcome, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.Target,
		run.Mode,
		run.DryRun,
		run.Limit,
		string(OutcomeRunning),
		run.StartedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return res.LastInsertId()
}

// Settle records the outcome of a run once it is known. Settling the same
// run twice keeps the first outcome; late telemetry must not overwrite an
// explicit stop.
func (s *Store) Settle(id int64, outcome RunOutcome) error {
	_, err := s.db.Exec(`
		UPDATE runs SET outcome = ?, finished_at = ?
		WHERE id = ? AND outcome = ?
	`,
		string(outcome),
		time.Now().Unix(),
		id,
		string(OutcomeRunning),
	)
	if err != nil {
		return fmt.Errorf("settle run %d: %w", id, err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, target, mode, dry_run, item_limit, outcome, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt int64
		var finishedAt sql.NullInt64
		var outcome string

		if err := rows.Scan(&run.ID, &run.Target, &run.Mode, &run.DryRun,
			&run.Limit, &outcome, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		run.Outcome = RunOutcome(outcome)
		run.StartedAt = time.Unix(startedAt, 0)
		if finishedAt.Valid {
			run.FinishedAt = time.Unix(finishedAt.Int64, 0)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Close closes the storage
func (s *Store) Close() error {
	return s.db.Close()
}
