// Package db stores matrix records in PostgreSQL.
package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// DB wraps a pgx connection with the metadata needed to reconnect.
type DB struct {
	Conn       *pgx.Conn
	connString string
	host       string
	port       string
	user       string
	database   string
}

// ConnectURI establishes a PostgreSQL connection from a URI with a
// 10-second timeout.
func ConnectURI(ctx context.Context, uri string) (*DB, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid URI: %w", err)
	}

	port := parsed.Port()
	if port == "" {
		port = "5432"
	}

	// Ensure sslmode is set if not already present
	q := parsed.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "prefer")
		parsed.RawQuery = q.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, parsed.String())
	if err != nil {
		return nil, err
	}

	return &DB{
		Conn:       conn,
		connString: parsed.String(),
		host:       parsed.Hostname(),
		port:       port,
		user:       parsed.User.Username(),
		database:   strings.TrimPrefix(parsed.Path, "/"),
	}, nil
}

// Reconnect closes the existing connection and re-establishes it using the
// original connection string.
func (d *DB) Reconnect(ctx context.Context) error {
	if d.Conn != nil {
		closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		d.Conn.Close(closeCtx)
		cancel()
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, d.connString)
	if err != nil {
		return err
	}
	d.Conn = conn
	return nil
}

// Close closes the database connection.
func (d *DB) Close() {
	if d.Conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		d.Conn.Close(ctx)
	}
}

// IsConnected checks if the connection is alive.
func (d *DB) IsConnected(ctx context.Context) bool {
	if d.Conn == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.Conn.Ping(ctx) == nil
}

// ConnInfo returns a display-safe connection string (no password).
func (d *DB) ConnInfo() string {
	return fmt.Sprintf("postgres://%s@%s:%s/%s", d.user, d.host, d.port, d.database)
}
