// Package store resolves a matrix slot to the record the display shows.
package store

import (
	"context"
	"errors"
	"fmt"

	"matrixdesk/internal/api"
	"matrixdesk/internal/matrix"
)

// ErrNotFound is returned when a slot holds no record.
var ErrNotFound = errors.New("store: matrix not found")

// Store looks matrices up by slot id.
type Store interface {
	Get(ctx context.Context, id string) (matrix.Record, error)
	Close() error
}

// Writer is a store that can be seeded.
type Writer interface {
	Store
	Put(ctx context.Context, recs []matrix.Record) error
	Slots(ctx context.Context) ([]string, error)
}

// Backend names a store implementation.
type Backend string

const (
	BackendFixture  Backend = "fixture"
	BackendRemote   Backend = "remote"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Options select and configure a backend.
type Options struct {
	Backend Backend
	// DSN is the PostgreSQL connection URI.
	DSN string
	// Path is the SQLite database file.
	Path string
	// Client serves the remote backend.
	Client *api.Client
}

// Open creates the store named by opts.Backend. An empty backend is the
// fixture store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFixture:
		return NewFixture(), nil
	case BackendRemote:
		if opts.Client == nil {
			return nil, fmt.Errorf("remote store: no service client")
		}
		return NewRemote(opts.Client), nil
	case BackendPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres store: dsn is required")
		}
		return OpenPostgres(ctx, opts.DSN)
	case BackendSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite store: path is required")
		}
		return OpenSQLite(ctx, opts.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
