package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExportExt is appended to export names that lack it.
const ExportExt = ".tex"

// Exports stores notation snippets as files in one directory.
type Exports struct {
	dir string
}

// NewExports manages exports under dir.
func NewExports(dir string) *Exports {
	return &Exports{dir: dir}
}

// Dir returns the exports directory.
func (e *Exports) Dir() string {
	return e.dir
}

// List returns export file names sorted by name. A missing directory is an
// empty list.
func (e *Exports) List() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	var names []string
	for _, ent := range entries {
		if !ent.IsDir() && strings.HasSuffix(ent.Name(), ExportExt) {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Save writes content under name and returns the final file name.
func (e *Exports) Save(name, content string) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return name, nil
}

// Load reads an export.
func (e *Exports) Load(name string) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read export: %w", err)
	}
	return string(data), nil
}

// Delete removes an export.
func (e *Exports) Delete(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(e.dir, name))
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid export name %q", name)
	}
	if !strings.HasSuffix(name, ExportExt) {
		name += ExportExt
	}
	return name, nil
}
