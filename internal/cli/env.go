// Package cli holds the cobra commands and the wiring they share.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"matrixdesk/internal/api"
	"matrixdesk/internal/config"
	"matrixdesk/internal/store"
)

// Env is the configuration and collaborators every command works with.
type Env struct {
	Config *config.Config
	Client *api.Client

	configPath string
	endpoint   string
	backend    string
	dsn        string
	dbPath     string
	logFile    string
	logCloser  io.Closer
}

// bindFlags registers the persistent flags that override config values.
func (e *Env) bindFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&e.configPath, "config", "", "config file (default ~/.config/matrixdesk/config.yaml)")
	f.StringVar(&e.endpoint, "endpoint", "", "matrix service base URL")
	f.StringVar(&e.backend, "store", "", "matrix store: fixture, remote, postgres or sqlite")
	f.StringVar(&e.dsn, "dsn", "", "PostgreSQL connection URI for the postgres store")
	f.StringVar(&e.dbPath, "db-path", "", "database file for the sqlite store")
	f.StringVar(&e.logFile, "log-file", "", "write debug log to this file")
}

// load reads the config file and applies flag overrides.
func (e *Env) load() error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	if e.endpoint != "" {
		cfg.Service.Endpoint = e.endpoint
	}
	if e.backend != "" {
		cfg.Store.Backend = store.Backend(e.backend)
	}
	if e.dsn != "" {
		cfg.Store.DSN = e.dsn
	}
	if e.dbPath != "" {
		cfg.Store.Path = e.dbPath
	}
	if e.logFile != "" {
		cfg.Log.File = e.logFile
	}
	e.Config = cfg
	e.Client = api.NewClient(cfg.Service.Endpoint)
	return nil
}

// startLogging sends the standard logger to the configured file, or
// discards it.
func (e *Env) startLogging() error {
	if e.Config.Log.File == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(e.Config.Log.File, "matrixdesk")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	e.logCloser = f
	return nil
}

func (e *Env) close() {
	if e.logCloser != nil {
		e.logCloser.Close()
		e.logCloser = nil
	}
}

// OpenStore opens the configured matrix store.
func (e *Env) OpenStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, store.Options{
		Backend: e.Config.Store.Backend,
		DSN:     e.Config.Store.DSN,
		Path:    e.Config.Store.Path,
		Client:  e.Client,
	})
}

// Describe is the one-line summary shown in the top bar.
func (e *Env) Describe() string {
	backend := e.Config.Store.Backend
	if backend == "" {
		backend = store.BackendFixture
	}
	return fmt.Sprintf("%s  store: %s", e.Client.Endpoint(), backend)
}

// ReportedError is a failure whose message was already written to the
// command's output.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }
