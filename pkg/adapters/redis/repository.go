// Package redis provides a TemplateRepository backed by Redis, for
// deployments where the editor state is shared across hosts.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lxyhes/flowforge/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Repository implements ports.TemplateRepository on Redis. The template
// list and each id list live under a single prefixed key as JSON blobs,
// matching the read-in-full/write-back-in-full store contract.
type Repository struct {
	client *backend.Client
	prefix string
}

// Option configures a Repository.
type Option func(*Repository)

// WithPrefix sets the key prefix (default "flowforge:").
func WithPrefix(prefix string) Option {
	return func(r *Repository) {
		r.prefix = prefix
	}
}

// New creates a Repository with its own client.
func New(address, password string, db int, opts ...Option) *Repository {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Repository from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Repository {
	repo := &Repository{
		client: client,
		prefix: "flowforge:",
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

func (r *Repository) templatesKey() string {
	return r.prefix + "templates"
}

func (r *Repository) listKey(key string) string {
	return r.prefix + "ids:" + key
}

// Load retrieves the template list. A missing key is an empty
// repository, not an error.
func (r *Repository) Load(ctx context.Context) ([]domain.Template, error) {
	data, err := r.client.Get(ctx, r.templatesKey()).Bytes()
	if err != nil {
		if err == backend.Nil {
			return []domain.Template{}, nil
		}
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	var templates []domain.Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal templates: %w", err)
	}
	return templates, nil
}

// Save replaces the template list.
func (r *Repository) Save(ctx context.Context, templates []domain.Template) error {
	if templates == nil {
		templates = []domain.Template{}
	}
	data, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}
	if err := r.client.Set(ctx, r.templatesKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save templates: %w", err)
	}
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

// LoadIDList retrieves a named id list.
func (r *Repository) LoadIDList(ctx context.Context, key string) ([]string, error) {
	data, err := r.client.Get(ctx, r.listKey(key)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to load id list %q: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal id list %q: %w", key, err)
	}
	return ids, nil
}

// SaveIDList replaces a named id list.
func (r *Repository) SaveIDList(ctx context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal id list %q: %w", key, err)
	}
	if err := r.client.Set(ctx, r.listKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save id list %q: %w", key, err)
	}
	return nil
}
