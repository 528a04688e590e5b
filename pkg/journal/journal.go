// Package journal keeps an optional SQLite record of hook runs and their step outcomes.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"postgen/pkg/step"
)

// Run is one execution of the hook.
type Run struct {
	ID          string
	StartedAt   time.Time
	Duration    time.Duration
	Dir         string
	ProjectName string
	ProjectSlug string
	License     string
	Steps       step.Summary
}

// Failures counts the failed steps of the run.
func (r Run) Failures() int {
	return r.Steps.Failures()
}

// Journal handles database operations
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return j, nil
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER,
		dir TEXT,
		project_name TEXT,
		project_slug TEXT,
		license TEXT,
		failures INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS steps (
		run_id TEXT NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := j.db.Exec(schema)
	return err
}

// NewRunID returns a fresh identifier for a run
func NewRunID() string {
	return uuid.NewString()
}

// RecordRun saves a run and its steps in one transaction
func (j *Journal) RecordRun(r Run) error {
	if r.ID == "" {
		r.ID = NewRunID()
	}

	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
	INSERT INTO runs (
		id, started_at, duration_ms, dir, project_name, project_slug, license, failures
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.StartedAt.UTC(), r.Duration.Milliseconds(), r.Dir,
		r.ProjectName, r.ProjectSlug, r.License, r.Failures(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	for i, s := range r.Steps {
		_, err := tx.Exec(`INSERT INTO steps (run_id, position, name, status, detail) VALUES (?, ?, ?, ?, ?)`,
			r.ID, i, s.Name, string(s.Status), s.Detail)
		if err != nil {
			return fmt.Errorf("failed to save step %s: %w", s.Name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first, at most limit of them (0 means all)
func (j *Journal) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, started_at, duration_ms, dir, project_name, project_slug, license
	FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	runs, err := scanRuns(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	for i := range runs {
		steps, err := j.getSteps(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Steps = steps
	}

	return runs, nil
}

func (j *Journal) getSteps(runID string) (step.Summary, error) {
	rows, err := j.db.Query(`SELECT name, status, detail FROM steps WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps step.Summary
	for rows.Next() {
		var s step.Result
		var status string
		var detail sql.NullString
		if err := rows.Scan(&s.Name, &status, &detail); err != nil {
			return nil, err
		}
		s.Status = step.Status(status)
		s.Detail = detail.String
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

// Close closes the database
func (j *Journal) Close() error {
	return j.db.Close()
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs sql.NullInt64
		var dir, name, slug, license sql.NullString

		err := rows.Scan(&r.ID, &r.StartedAt, &durationMs, &dir, &name, &slug, &license)
		if err != nil {
			return nil, err
		}

		if durationMs.Valid {
			r.Duration = time.Duration(durationMs.Int64) * time.Millisecond
		}
		r.Dir = dir.String
		r.ProjectName = name.String
		r.ProjectSlug = slug.String
		r.License = license.String

		runs = append(runs, r)
	}
	return runs, rows.Err()
}
