package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/graph"
	"github.com/lxyhes/flowforge/pkg/ports"
)

// MaxRecents bounds the recently-used template list.
const MaxRecents = 12

// Service layers template lifecycle operations (CRUD, favorites,
// recents, import/export) over a TemplateRepository. All mutations
// read the full persisted list, change it in memory and write it back
// whole; there is no partial-write protocol to reason about.
type Service struct {
	repo     ports.TemplateRepository
	builtins map[string]bool
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a structured logger (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBuiltins registers the built-in catalog so imports never reuse a
// built-in id.
func WithBuiltins(templates []domain.Template) Option {
	return func(s *Service) {
		for _, t := range templates {
			s.builtins[t.ID] = true
		}
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service over the given repository.
func New(repo ports.TemplateRepository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		builtins: make(map[string]bool),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ListCustom returns all persisted custom templates, most recently
// added first (the persisted order; Create and imports prepend).
func (s *Service) ListCustom(ctx context.Context) ([]domain.Template, error) {
	return s.repo.Load(ctx)
}

// Get returns a custom template by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Template, error) {
	templates, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Template{}, err
	}
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Template{}, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, id)
}

// Create persists a new custom template at the front of the list,
// stamping id, source and creation time.
func (s *Service) Create(ctx context.Context, t domain.Template) (domain.Template, error) {
	if t.ID == "" {
		t.ID = graph.NewID("tpl")
	}
	t.Source = domain.SourceCustom
	if t.CreatedAt == "" {
		t.CreatedAt = s.timestamp()
	}
	t.UpdatedAt = s.timestamp()

	templates, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Template{}, err
	}
	templates = append([]domain.Template{t}, templates...)
	if err := s.repo.Save(ctx, templates); err != nil {
		return domain.Template{}, err
	}

	s.logger.Info("template created", "id", t.ID, "name", t.Name)
	return t, nil
}

// Rename replaces a custom template's name and bumps its update time.
// Built-in templates are read-only and return ErrBuiltinImmutable.
// Renaming an unknown id is a no-op: the editor stays usable and the
// caller sees no visible effect.
func (s *Service) Rename(ctx context.Context, id, newName string) error {
	if s.builtins[id] {
		return fmt.Errorf("%w: %s", domain.ErrBuiltinImmutable, id)
	}
	templates, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	for i := range templates {
		if templates[i].ID == id {
			templates[i].Name = newName
			templates[i].UpdatedAt = s.timestamp()
			return s.repo.Save(ctx, templates)
		}
	}
	s.logger.Debug("rename skipped, id not found", "id", id)
	return nil
}

// Delete removes a custom template and prunes its id from the
// favorites and recents lists. Built-in templates are read-only and
// return ErrBuiltinImmutable. Deleting an unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.builtins[id] {
		return fmt.Errorf("%w: %s", domain.ErrBuiltinImmutable, id)
	}
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	for _, key := range []string{ports.KeyFavorites, ports.KeyRecents} {
		ids, err := s.repo.LoadIDList(ctx, key)
		if err != nil {
			return err
		}
		pruned := removeID(ids, id)
		if len(pruned) != len(ids) {
			if err := s.repo.SaveIDList(ctx, key, pruned); err != nil {
				return err
			}
		}
	}
	s.logger.Info("template deleted", "id", id)
	return nil
}

// Favorites returns the favorited template ids.
func (s *Service) Favorites(ctx context.Context) ([]string, error) {
	return s.repo.LoadIDList(ctx, ports.KeyFavorites)
}

// ToggleFavorite flips the favorite state of a template id and reports
// whether the id is now favorited.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	ids, err := s.repo.LoadIDList(ctx, ports.KeyFavorites)
	if err != nil {
		return false, err
	}

	pruned := removeID(ids, id)
	favorited := len(pruned) == len(ids) // id was absent: add it
	if favorited {
		pruned = append(pruned, id)
	}
	if err := s.repo.SaveIDList(ctx, ports.KeyFavorites, pruned); err != nil {
		return false, err
	}
	return favorited, nil
}

// Recents returns the recently-used template ids, most recent first.
func (s *Service) Recents(ctx context.Context) ([]string, error) {
	return s.repo.LoadIDList(ctx, ports.KeyRecents)
}

// PushRecent moves an id to the front of the recents list,
// de-duplicating and trimming to MaxRecents.
func (s *Service) PushRecent(ctx context.Context, id string) error {
	ids, err := s.repo.LoadIDList(ctx, ports.KeyRecents)
	if err != nil {
		return err
	}

	ids = append([]string{id}, removeID(ids, id)...)
	if len(ids) > MaxRecents {
		ids = ids[:MaxRecents]
	}
	return s.repo.SaveIDList(ctx, ports.KeyRecents, ids)
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
