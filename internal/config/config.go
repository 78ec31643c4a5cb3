package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"matrixdesk/internal/api"
	"matrixdesk/internal/editor"
	"matrixdesk/internal/store"
)

// ServiceConfig locates the matrix service.
type ServiceConfig struct {
	Endpoint      string        `yaml:"endpoint"`
	SubmitTimeout time.Duration `yaml:"submit_timeout"`
	FadeDelay     time.Duration `yaml:"fade_delay"`
}

// StoreConfig selects where the display screen reads matrices from.
type StoreConfig struct {
	Backend store.Backend `yaml:"backend"`
	DSN     string        `yaml:"dsn,omitempty"`
	Path    string        `yaml:"path,omitempty"`
}

// LogConfig sends the debug log to a file. Empty disables logging.
type LogConfig struct {
	File string `yaml:"file,omitempty"`
}

// ExportsConfig is where exported notation files are written.
type ExportsConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

type Config struct {
	Service ServiceConfig `yaml:"service"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Exports ExportsConfig `yaml:"exports"`

	path string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint:      api.DefaultEndpoint,
			SubmitTimeout: editor.SubmitTimeout,
			FadeDelay:     editor.FadeDelay,
		},
		Store: StoreConfig{Backend: store.BackendFixture},
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "matrixdesk"), nil
}

// DefaultPath returns ~/.config/matrixdesk/config.yaml.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path, or at DefaultPath when path is empty. A
// missing file yields the defaults. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = path
	if cfg.Service.SubmitTimeout <= 0 {
		cfg.Service.SubmitTimeout = editor.SubmitTimeout
	}
	if cfg.Service.FadeDelay <= 0 {
		cfg.Service.FadeDelay = editor.FadeDelay
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to its path.
func (c *Config) Save() error {
	if c.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = p
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(c.path, data, 0600)
}

// ExportDir returns the configured exports directory, defaulting to
// exports/ next to the config file.
func (c *Config) ExportDir() string {
	if c.Exports.Dir != "" {
		return c.Exports.Dir
	}
	if c.path != "" {
		return filepath.Join(filepath.Dir(c.path), "exports")
	}
	dir, err := configDir()
	if err != nil {
		return "exports"
	}
	return filepath.Join(dir, "exports")
}
