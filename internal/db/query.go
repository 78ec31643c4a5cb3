package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"matrixdesk/internal/matrix"
)

// ErrNoRecord is returned when no matrix is stored under an id.
var ErrNoRecord = errors.New("db: no matrix stored under id")

// GetMatrix loads the record stored under id.
func (d *DB) GetMatrix(ctx context.Context, id string) (matrix.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var (
		rec  matrix.Record
		data []byte
	)
	err := d.Conn.QueryRow(ctx,
		`SELECT id, name, rows, cols, data::text FROM matrices WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Rows, &rec.Cols, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return matrix.Record{}, ErrNoRecord
	}
	if err != nil {
		return matrix.Record{}, err
	}
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return matrix.Record{}, fmt.Errorf("decode matrix %s: %w", id, err)
	}
	if err := rec.Validate(); err != nil {
		return matrix.Record{}, fmt.Errorf("matrix %s: %w", id, err)
	}
	return rec, nil
}

// PutMatrices upserts records in a single transaction.
func (d *DB) PutMatrices(ctx context.Context, recs []matrix.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := d.Conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("matrix %s: %w", rec.ID, err)
		}
		data, err := json.Marshal(rec.Data)
		if err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("encode matrix %s: %w", rec.ID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO matrices (id, name, rows, cols, data)
			VALUES ($1, $2, $3, $4, $5::jsonb)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, rows = EXCLUDED.rows, cols = EXCLUDED.cols, data = EXCLUDED.data
		`, rec.ID, rec.Name, rec.Rows, rec.Cols, string(data))
		if err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("exec: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
