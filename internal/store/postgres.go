package store

import (
	"context"
	"errors"
	"sync"

	"matrixdesk/internal/db"
	"matrixdesk/internal/matrix"
)

// Postgres reads records from the matrices table. A single pgx connection
// backs it, so every call holds mu.
type Postgres struct {
	mu sync.Mutex
	db *db.DB
}

// OpenPostgres connects to dsn and makes sure the table exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	d, err := db.ConnectURI(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := d.EnsureSchema(ctx); err != nil {
		d.Close()
		return nil, err
	}
	return &Postgres{db: d}, nil
}

// Get implements Store. A dropped connection is retried once.
func (p *Postgres) Get(ctx context.Context, id string) (matrix.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.db.IsConnected(ctx) {
		if err := p.db.Reconnect(ctx); err != nil {
			return matrix.Record{}, err
		}
	}
	rec, err := p.db.GetMatrix(ctx, id)
	if errors.Is(err, db.ErrNoRecord) {
		return matrix.Record{}, ErrNotFound
	}
	return rec, err
}

// Put implements Writer.
func (p *Postgres) Put(ctx context.Context, recs []matrix.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db.PutMatrices(ctx, recs)
}

// Slots implements Writer.
func (p *Postgres) Slots(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db.ListSlots(ctx)
}

// String returns the connection info without credentials.
func (p *Postgres) String() string {
	return p.db.ConnInfo()
}

// Close implements Store.
func (p *Postgres) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.db.Close()
	return nil
}
