package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is one CLI invocation.
type Run struct {
	RunID          int64
	CreatedAt      time.Time
	Command        string
	InputCount     int
	SuccessCount   int
	FailedCount    int
	LexiconVersion string
}

// CreateRun starts a run record and returns its id.
func (db *DB) CreateRun(command string, inputCount int, lexiconVersion string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (command, input_count, lexicon_version)
		VALUES (?, ?, ?)
	`, command, inputCount, nullString(lexiconVersion))
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// UpdateRunStats sets the success and failed counts for a run.
func (db *DB) UpdateRunStats(runID int64, successCount, failedCount int) error {
	result, err := db.Exec(`
		UPDATE runs
		SET success_count = ?, failed_count = ?
		WHERE run_id = ?
	`, successCount, failedCount, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %d: %w", runID, ErrNotFound)
	}
	return nil
}

// GetRunByID retrieves a run by its ID.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var (
		r       Run
		version sql.NullString
	)
	err := db.QueryRow(`
		SELECT run_id, created_at, command, input_count, success_count, failed_count, lexicon_version
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.Command, &r.InputCount, &r.SuccessCount, &r.FailedCount, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	r.LexiconVersion = version.String
	return &r, nil
}

// ListRuns returns runs, most recent first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, command, input_count, success_count, failed_count, lexicon_version
		FROM runs
		ORDER BY run_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			version sql.NullString
		)
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Command, &r.InputCount,
			&r.SuccessCount, &r.FailedCount, &version); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.LexiconVersion = version.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
