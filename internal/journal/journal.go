// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal persists one record per conversion run in a local SQLite
// database. Journaling is best-effort for the CLI: callers log and continue
// when an append fails.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ShadowStrikeHQ/file-mime-converter/pkg/types"
)

const dbFile = "journal.db"

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at  TEXT    NOT NULL,
    input_path  TEXT    NOT NULL,
    output_path TEXT    NOT NULL,
    format      TEXT    NOT NULL,
    target_mime TEXT    NOT NULL DEFAULT '',
    tool        TEXT    NOT NULL,
    status      TEXT    NOT NULL,
    exit_code   INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    error       TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_conversions_started_at ON conversions(started_at);
CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status);
`

// Journal manages the conversion history database.
type Journal struct {
	db *sql.DB
}

// DefaultPath returns the journal location under the user state directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "file-mime-converter", dbFile), nil
}

// Open opens or creates the journal database at path, creating parent
// directories and the schema as needed. An empty path selects DefaultPath.
func Open(path string) (*Journal, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append inserts one conversion record and returns its assigned ID.
func (j *Journal) Append(ctx context.Context, rec types.ConversionRecord) (int64, error) {
	res, err := j.db.ExecContext(ctx, `
		INSERT INTO conversions
			(started_at, input_path, output_path, format, target_mime,
			 tool, status, exit_code, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.InputPath,
		rec.OutputPath,
		rec.Format,
		rec.TargetMIME,
		rec.Tool,
		string(rec.Status),
		rec.ExitCode,
		rec.Duration.Milliseconds(),
		rec.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("appending journal record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading journal record id: %w", err)
	}
	return id, nil
}

// ListOptions filters and bounds a List call.
type ListOptions struct {
	// Limit caps the number of records returned; 0 means 20.
	Limit int

	// Status restricts results to one outcome when non-empty.
	Status types.ConversionStatus
}

// List returns journal records, most recent first.
func (j *Journal) List(ctx context.Context, opts ListOptions) ([]types.ConversionRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, started_at, input_path, output_path, format, target_mime,
		       tool, status, exit_code, duration_ms, error
		FROM conversions`
	args := []any{}
	if opts.Status != "" {
		query += " WHERE status = ?"
		args = append(args, string(opts.Status))
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var rec types.ConversionRecord
		var startedAt, status string
		var durationMS int64
		if err := rows.Scan(&rec.ID, &startedAt, &rec.InputPath, &rec.OutputPath,
			&rec.Format, &rec.TargetMIME, &rec.Tool, &status,
			&rec.ExitCode, &durationMS, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning journal record: %w", err)
		}
		rec.Status = types.ConversionStatus(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			rec.StartedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all journal records and returns how many were removed.
func (j *Journal) Clear(ctx context.Context) (int64, error) {
	res, err := j.db.ExecContext(ctx, "DELETE FROM conversions")
	if err != nil {
		return 0, fmt.Errorf("clearing journal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared records: %w", err)
	}
	return n, nil
}
