// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite record of every extraction attempt so that
// past runs can be listed and compared.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdftext/pkg/types"
)

// defaultLimit caps Recent when no limit is given.
const defaultLimit = 20

// ErrNotFound is returned by Last when a source has never been extracted.
var ErrNotFound = errors.New("no extraction recorded")

// Ledger manages the run ledger database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS extractions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			source TEXT NOT NULL,
			destination TEXT,
			status TEXT NOT NULL,
			pages INTEGER NOT NULL DEFAULT 0,
			bytes INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_extractions_source ON extractions(source)`,
	}

	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one extraction attempt to the ledger.
func (l *Ledger) Record(ctx context.Context, rec types.ExtractionRecord) error {
	started := rec.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO extractions
			(name, source, destination, status, pages, bytes, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Name, rec.Source, rec.Destination, string(rec.Status),
		rec.Pages, rec.Bytes, rec.Error,
		started.UTC().Format(time.RFC3339Nano), rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording extraction of %s: %w", rec.Source, err)
	}
	return nil
}

const selectColumns = `SELECT id, name, source, destination, status, pages, bytes, error, started_at, duration_ms
	FROM extractions`

// Recent returns up to limit records, newest first. A limit of zero or
// less uses the default of 20.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]types.ExtractionRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return l.query(ctx, selectColumns+` ORDER BY id DESC LIMIT ?`, limit)
}

// History returns up to limit records for one source, newest first.
func (l *Ledger) History(ctx context.Context, source string, limit int) ([]types.ExtractionRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return l.query(ctx, selectColumns+` WHERE source = ? ORDER BY id DESC LIMIT ?`, source, limit)
}

// Last returns the most recent record for source, or ErrNotFound.
func (l *Ledger) Last(ctx context.Context, source string) (types.ExtractionRecord, error) {
	recs, err := l.History(ctx, source, 1)
	if err != nil {
		return types.ExtractionRecord{}, err
	}
	if len(recs) == 0 {
		return types.ExtractionRecord{}, fmt.Errorf("%w for %s", ErrNotFound, source)
	}
	return recs[0], nil
}

func (l *Ledger) query(ctx context.Context, q string, args ...any) ([]types.ExtractionRecord, error) {
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var recs []types.ExtractionRecord
	for rows.Next() {
		var (
			rec         types.ExtractionRecord
			status      string
			destination sql.NullString
			errText     sql.NullString
			startedAt   string
			durationMS  int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Source, &destination, &status,
			&rec.Pages, &rec.Bytes, &errText, &startedAt, &durationMS,
		); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		rec.Destination = destination.String
		rec.Status = types.ExtractionStatus(status)
		rec.Error = errText.String
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			rec.StartedAt = t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
