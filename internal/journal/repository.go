package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for journal persistence.
type Repository interface {
	// Record inserts e and sets its ID. A zero CreatedAt is set to now.
	Record(ctx context.Context, e *Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// LastSent returns the newest sent entry for pipeline.
	// Returns ErrNotFound if there is none.
	LastSent(ctx context.Context, pipeline string) (*Entry, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository creates a repository on an open, migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// timeLayout is fixed-width UTC so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const selectColumns = `SELECT id, run_id, pipeline, status, lines, bytes, error, created_at FROM export_runs`

// Record inserts e.
func (r *SQLiteRepository) Record(ctx context.Context, e *Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.now()
	}

	var errText sql.NullString
	if e.Error != "" {
		errText = sql.NullString{String: e.Error, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO export_runs (run_id, pipeline, status, lines, bytes, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID.String(), e.Pipeline, string(e.Status), e.Lines, e.Bytes, errText,
		e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading journal entry id: %w", err)
	}
	e.ID = id
	return nil
}

// Recent returns the newest entries first.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}
	return entries, nil
}

// LastSent returns the newest successful run of pipeline.
func (r *SQLiteRepository) LastSent(ctx context.Context, pipeline string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx,
		selectColumns+` WHERE pipeline = ? AND status = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		pipeline, string(StatusSent),
	)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var (
		e         Entry
		runID     string
		status    string
		errText   sql.NullString
		createdAt string
	)
	if err := s.Scan(&e.ID, &runID, &e.Pipeline, &status, &e.Lines, &e.Bytes, &errText, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning journal entry: %w", err)
	}

	id, err := uuid.Parse(runID)
	if err != nil {
		return nil, fmt.Errorf("parsing run id %q: %w", runID, err)
	}
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}

	e.RunID = id
	e.Status = Status(status)
	e.Error = errText.String
	e.CreatedAt = ts
	return &e, nil
}
