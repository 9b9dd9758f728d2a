// Package file provides a TemplateRepository backed by JSON files on
// the local filesystem, the default backend for the CLI.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lxyhes/flowforge/pkg/domain"
)

const templatesFile = "templates.json"

// Repository implements ports.TemplateRepository on a directory:
// templates.json holds the custom template list, <key>.json each id
// list. Writes are atomic (temp file, fsync, rename).
type Repository struct {
	BasePath string
}

// New creates a Repository rooted at basePath.
// If basePath is empty, it defaults to ".flowforge".
func New(basePath string) *Repository {
	if basePath == "" {
		basePath = ".flowforge"
	}
	return &Repository{BasePath: basePath}
}

// Load reads the template list. A missing file is an empty repository,
// not an error.
func (r *Repository) Load(ctx context.Context) ([]domain.Template, error) {
	data, err := os.ReadFile(filepath.Join(r.BasePath, templatesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Template{}, nil
		}
		return nil, fmt.Errorf("failed to read template list: %w", err)
	}

	var templates []domain.Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template list: %w", err)
	}
	return templates, nil
}

// Save replaces the template list on disk.
func (r *Repository) Save(ctx context.Context, templates []domain.Template) error {
	if templates == nil {
		templates = []domain.Template{}
	}
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template list: %w", err)
	}
	return r.writeAtomic(templatesFile, data)
}

// Remove deletes a template by id and persists the shortened list.
func (r *Repository) Remove(ctx context.Context, id string) error {
	templates, err := r.Load(ctx)
	if err != nil {
		return err
	}
	kept := templates[:0]
	for _, t := range templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return r.Save(ctx, kept)
}

// LoadIDList reads a named id list. Missing files yield empty lists.
func (r *Repository) LoadIDList(ctx context.Context, key string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(r.BasePath, key+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read id list %q: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal id list %q: %w", key, err)
	}
	return ids, nil
}

// SaveIDList replaces a named id list on disk.
func (r *Repository) SaveIDList(ctx context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal id list %q: %w", key, err)
	}
	return r.writeAtomic(key+".json", data)
}

// writeAtomic writes to a temporary file first, syncs via fsync, and
// renames it over the destination so readers never see a partial file.
func (r *Repository) writeAtomic(name string, data []byte) error {
	if err := os.MkdirAll(r.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure repository directory: %w", err)
	}

	destPath := filepath.Join(r.BasePath, name)

	tmpFile, err := os.CreateTemp(r.BasePath, "tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // gone already if the rename succeeded
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename replaces the destination atomically on POSIX systems.
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}
