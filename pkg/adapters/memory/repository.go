// Package memory provides an in-memory TemplateRepository, used by
// tests and by ephemeral editing sessions that never persist.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/lxyhes/flowforge/pkg/domain"
)

// Repository implements ports.TemplateRepository in memory.
// Safe for concurrent use.
type Repository struct {
	mu        sync.RWMutex
	templates []byte
	lists     map[string][]string
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{lists: make(map[string][]string)}
}

// Load returns the persisted templates.
func (r *Repository) Load(ctx context.Context) ([]domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.templates == nil {
		return []domain.Template{}, nil
	}
	// Round-trip through JSON so callers can't mutate stored state by
	// reference, mirroring what a durable backend would do.
	var out []domain.Template
	if err := json.Unmarshal(r.templates, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the persisted template list.
func (r *Repository) Save(ctx context.Context, templates []domain.Template) error {
	data, err := json.Marshal(templates)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates = data
	return nil
}

// Remove deletes a template by id.
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

// LoadIDList returns the named id list.
func (r *Repository) LoadIDList(ctx context.Context, key string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.lists[key]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// SaveIDList replaces the named id list.
func (r *Repository) SaveIDList(ctx context.Context, key string, ids []string) error {
	stored := make([]string, len(ids))
	copy(stored, ids)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[key] = stored
	return nil
}
