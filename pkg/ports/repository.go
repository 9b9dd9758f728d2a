package ports

import (
	"context"

	"github.com/lxyhes/flowforge/pkg/domain"
)

// ID list keys reserved by the template store.
const (
	// KeyFavorites holds the set of favorited template ids.
	KeyFavorites = "favorites"
	// KeyRecents holds the bounded, most-recent-first list of used template ids.
	KeyRecents = "recents"
)

// TemplateRepository defines the persistence contract for user-authored
// templates and their tracking lists. The store layer reads the full
// list, mutates it in memory and writes it back whole; there is no
// partial-write protocol.
//
// Implementations must return empty slices (not errors) when nothing
// has been persisted yet.
type TemplateRepository interface {
	// Load retrieves all persisted custom templates.
	Load(ctx context.Context) ([]domain.Template, error)

	// Save persists the full custom template list, replacing what was there.
	Save(ctx context.Context, templates []domain.Template) error

	// Remove deletes the template with the given id. Removing an unknown
	// id is a no-op.
	Remove(ctx context.Context, id string) error

	// LoadIDList retrieves a named id list (favorites, recents).
	LoadIDList(ctx context.Context, key string) ([]string, error)

	// SaveIDList persists a named id list, replacing what was there.
	SaveIDList(ctx context.Context, key string, ids []string) error
}
