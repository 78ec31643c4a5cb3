package db

import (
	"context"
	"time"
)

const matricesSchema = `
	CREATE TABLE IF NOT EXISTS matrices (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		rows INTEGER NOT NULL CHECK (rows BETWEEN 1 AND 32),
		cols INTEGER NOT NULL CHECK (cols BETWEEN 1 AND 32),
		data JSONB NOT NULL
	)
`

// EnsureSchema creates the matrices table if it does not exist.
func (d *DB) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := d.Conn.Exec(ctx, matricesSchema)
	return err
}

// ListSlots returns the ids of all stored matrices sorted by id.
func (d *DB) ListSlots(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := d.Conn.Query(ctx, `SELECT id FROM matrices ORDER BY id`)
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
