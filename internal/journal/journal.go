// Package journal keeps a record of finished runs in sqlite. It is
// write-mostly history; nothing in it is ever loaded back into a game.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is the summary of one finished run.
type Run struct {
	ID        int64
	SessionID string
	EndedAt   time.Time
	Turns     int
	Stamina   int
	Reason    int
	Doom      int
	Items     int
	Cause     string
	Message   string
}

type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	j := &Journal{db: db}
	if err := j.createTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create tables: %w", err)
	}
	return j, nil
}

func (j *Journal) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		ended_at TIMESTAMP NOT NULL,
		turns INTEGER NOT NULL,
		stamina INTEGER NOT NULL,
		reason INTEGER NOT NULL,
		doom INTEGER NOT NULL,
		items INTEGER NOT NULL,
		cause TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);
	`
	_, err := j.db.ExecContext(ctx, schema)
	return err
}

// Record appends a finished run. A zero EndedAt is stamped with the current
// time.
func (j *Journal) Record(ctx context.Context, r Run) error {
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (session_id, ended_at, turns, stamina, reason, doom, items, cause, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.SessionID, r.EndedAt, r.Turns, r.Stamina, r.Reason, r.Doom, r.Items, r.Cause, r.Message)
	if err != nil {
		return fmt.Errorf("journal: record run %s: %w", r.SessionID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, session_id, ended_at, turns, stamina, reason, doom, items, cause, message
		FROM runs
		ORDER BY ended_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.SessionID, &r.EndedAt, &r.Turns, &r.Stamina, &r.Reason, &r.Doom, &r.Items, &r.Cause, &r.Message); err != nil {
			return nil, fmt.Errorf("journal: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Longest returns the run that survived the most turns, if any.
func (j *Journal) Longest(ctx context.Context) (Run, bool, error) {
	var r Run
	err := j.db.QueryRowContext(ctx, `
		SELECT id, session_id, ended_at, turns, stamina, reason, doom, items, cause, message
		FROM runs
		ORDER BY turns DESC, id ASC
		LIMIT 1
	`).Scan(&r.ID, &r.SessionID, &r.EndedAt, &r.Turns, &r.Stamina, &r.Reason, &r.Doom, &r.Items, &r.Cause, &r.Message)
	if err == sql.ErrNoRows {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("journal: query longest run: %w", err)
	}
	return r, true, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}
