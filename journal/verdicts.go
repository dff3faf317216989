package journal

import (
	"fmt"
	"time"

	"sentinelharness/model"
)

// Entry is one recorded verdict.
type Entry struct {
	ID        int64
	Case      string
	Stage     string
	Pass      bool
	Diag      string
	Duration  time.Duration
	CreatedAt time.Time
}

// Record appends a verdict to the history.
func (db *DB) Record(v model.Verdict) error {
	_, err := db.Exec(`
		INSERT INTO verdicts (case_name, stage, pass, diag, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.Case,
		v.Stage,
		boolToInt(v.Pass),
		v.Diag,
		v.Duration.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record verdict: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (db *DB) Recent(limit int) ([]Entry, error) {
	rows, err := db.Query(`
		SELECT id, case_name, stage, pass, diag, duration_ms, created_at
		FROM verdicts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var pass int
		var durationMS int64
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Case, &e.Stage, &pass, &e.Diag, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan verdict: %w", err)
		}
		e.Pass = pass != 0
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
