package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"matrixdesk/internal/matrix"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS matrices (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	rows INTEGER NOT NULL,
	cols INTEGER NOT NULL,
	data TEXT NOT NULL
);
`

// SQLite keeps records in a local database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, id string) (matrix.Record, error) {
	var (
		rec  matrix.Record
		data string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, rows, cols, data FROM matrices WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Rows, &rec.Cols, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return matrix.Record{}, ErrNotFound
	}
	if err != nil {
		return matrix.Record{}, err
	}
	if err := json.Unmarshal([]byte(data), &rec.Data); err != nil {
		return matrix.Record{}, fmt.Errorf("decode matrix %s: %w", id, err)
	}
	if err := rec.Validate(); err != nil {
		return matrix.Record{}, fmt.Errorf("matrix %s: %w", id, err)
	}
	return rec, nil
}

// Put implements Writer.
func (s *SQLite) Put(ctx context.Context, recs []matrix.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("matrix %s: %w", rec.ID, err)
		}
		data, err := json.Marshal(rec.Data)
		if err != nil {
			return fmt.Errorf("encode matrix %s: %w", rec.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO matrices (id, name, rows, cols, data) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE
			SET name = excluded.name, rows = excluded.rows, cols = excluded.cols, data = excluded.data
		`, rec.ID, rec.Name, rec.Rows, rec.Cols, string(data))
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}
	}
	return tx.Commit()
}

// Slots implements Writer.
func (s *SQLite) Slots(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM matrices ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
