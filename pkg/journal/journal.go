// Package journal keeps a SQLite record of per-package outcomes across runs.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"

	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Journal appends outcomes of one run to the database. It satisfies
// operations.Recorder.
type Journal struct {
	db    *sql.DB
	runID string
}

// Record is one stored outcome.
type Record struct {
	ID    int64
	RunID string
	types.Outcome
}

// Open opens (creating if needed) the journal at path and starts a new run.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "create journal dir").
			WithDetail("path", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "open journal").
			WithDetail("path", path)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrJournal, "apply journal schema").
			WithDetail("path", path)
	}

	return &Journal{
		db:    db,
		runID: time.Now().UTC().Format("20060102T150405.000000000Z"),
	}, nil
}

// RunID identifies the run this journal handle records.
func (j *Journal) RunID() string { return j.runID }

// Record stores o under the current run.
func (j *Journal) Record(ctx context.Context, o types.Outcome) error {
	if o.Time.IsZero() {
		o.Time = time.Now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO outcomes (run_id, recorded_at, backend, action, package, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.runID, o.Time.UTC().Format(time.RFC3339Nano), o.Backend, o.Action, o.Package, o.Status, o.Error)
	if err != nil {
		return errors.Wrap(err, errors.ErrJournal, "record outcome").
			WithDetail("package", o.Package)
	}
	return nil
}

// Recent returns up to limit records, newest first. A limit <= 0 returns
// everything.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, run_id, recorded_at, backend, action, package, status, error
		FROM outcomes ORDER BY id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "query outcomes")
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var r Record
		var recordedAt string
		if err := rows.Scan(&r.ID, &r.RunID, &recordedAt, &r.Backend, &r.Action, &r.Package, &r.Status, &r.Error); err != nil {
			return nil, errors.Wrap(err, errors.ErrJournal, "scan outcome")
		}
		t, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		r.Time = t
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "iterate outcomes")
	}
	return out, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
