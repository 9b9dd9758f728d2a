package flowforge

import (
	"context"
	"log/slog"

	"github.com/lxyhes/flowforge/internal/logging"
	"github.com/lxyhes/flowforge/pkg/catalog"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/export"
	"github.com/lxyhes/flowforge/pkg/graph"
	"github.com/lxyhes/flowforge/pkg/ports"
	"github.com/lxyhes/flowforge/pkg/store"
)

// Version is the library version, stamped at build time.
var Version = "dev"

// Studio is the high-level entry point for the FlowForge library.
// It combines the built-in catalog, the custom template store and the
// export pipeline behind one API.
type Studio struct {
	templates *store.Service
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Studio.
type Option func(*Studio)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Studio) {
		s.logger = logger
	}
}

// New initializes a Studio over the given template repository.
func New(repo ports.TemplateRepository, opts ...Option) *Studio {
	s := &Studio{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.templates = store.New(repo,
		store.WithLogger(s.logger),
		store.WithBuiltins(catalog.All()),
	)
	return s
}

// Templates exposes the underlying template service for list, rename,
// delete, favorite, import and export operations.
func (s *Studio) Templates() *store.Service {
	return s.templates
}

// Catalog returns the built-in template library.
func (s *Studio) Catalog() []domain.Template {
	return catalog.All()
}

// Template resolves an id against the custom store first, then the
// built-in catalog.
func (s *Studio) Template(ctx context.Context, id string) (domain.Template, error) {
	tpl, err := s.templates.Get(ctx, id)
	if err == nil {
		return tpl, nil
	}
	if builtin, ok := catalog.ByID(id); ok {
		return builtin, nil
	}
	return domain.Template{}, err
}

// Instantiate clones a template into a fresh editable workflow and
// records the template as recently used. Every call yields new node
// and edge ids, so multiple instances can coexist on one canvas.
func (s *Studio) Instantiate(ctx context.Context, templateID string) (domain.Workflow, error) {
	tpl, err := s.Template(ctx, templateID)
	if err != nil {
		return domain.Workflow{}, err
	}
	if err := s.templates.PushRecent(ctx, tpl.ID); err != nil {
		// Recents are a convenience; a storage hiccup there should not
		// block the clone.
		s.logger.Warn("failed to record recent template", "id", tpl.ID, "error", err)
	}
	return graph.Clone(tpl), nil
}

// ExportAgent renders a template as an agent artifact, returning the
// artifact body and its suggested filename.
func (s *Studio) ExportAgent(ctx context.Context, templateID string) (artifact, filename string, err error) {
	tpl, err := s.Template(ctx, templateID)
	if err != nil {
		return "", "", err
	}
	steps := graph.DeriveStepSequence(tpl.Workflow())
	return export.Marshal(export.ToAgentConfig(tpl.Name, tpl.Description, steps)),
		export.Filename(tpl.Name, "agent"), nil
}

// ExportCommand renders a template as a command artifact, returning
// the artifact body and its suggested filename.
func (s *Studio) ExportCommand(ctx context.Context, templateID string) (artifact, filename string, err error) {
	tpl, err := s.Template(ctx, templateID)
	if err != nil {
		return "", "", err
	}
	steps := graph.DeriveStepSequence(tpl.Workflow())
	return export.Marshal(export.ToCommandConfig(tpl.Name, tpl.Description, steps)),
		export.Filename(tpl.Name, "command"), nil
}
