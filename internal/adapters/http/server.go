// Package http exposes the template store over a JSON API for editor
// frontends. The surface is intentionally small: list, rename, delete,
// favorite, import and export. Workflow editing itself happens client
// side; the server only persists templates.
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lxyhes/flowforge/internal/logging"
	"github.com/lxyhes/flowforge/pkg/catalog"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/export"
	"github.com/lxyhes/flowforge/pkg/graph"
	"github.com/lxyhes/flowforge/pkg/store"
)

// Version is stamped by the build; the /info endpoint reports it.
var Version = "dev"

// Server serves the template API over a store.Service.
type Server struct {
	Templates *store.Service
	Logger    *slog.Logger

	metrics *metrics
}

type metrics struct {
	exports *prometheus.CounterVec
	imports prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowforge_exports_total",
			Help: "Workflow exports served, by artifact format.",
		}, []string{"format"}),
		imports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowforge_imported_templates_total",
			Help: "Templates accepted through the import endpoint.",
		}),
	}
	reg.MustRegister(m.exports, m.imports)
	return m
}

// NewHandler creates the HTTP handler for the template API. Metrics
// are registered on a private registry so tests can spin up multiple
// handlers without collisions.
func NewHandler(templates *store.Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		Templates: templates,
		Logger:    logger,
		metrics:   newMetrics(reg),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.listTemplates)
		r.Post("/templates", s.createTemplate)
		r.Get("/templates/{id}", s.getTemplate)
		r.Patch("/templates/{id}", s.renameTemplate)
		r.Delete("/templates/{id}", s.deleteTemplate)
		r.Post("/templates/{id}/favorite", s.toggleFavorite)
		r.Get("/templates/{id}/export", s.exportTemplate)
		r.Get("/templates/{id}/artifact", s.exportArtifact)
		r.Get("/favorites", s.listFavorites)
		r.Get("/recents", s.listRecents)
		r.Post("/import", s.importTemplates)
	})

	return r
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "flowforge-http",
		"version": Version,
	})
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	customs, err := s.Templates.ListCustom(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// Custom templates first (most recent first), then builtins.
	out := make([]domain.Template, 0, len(customs)+len(catalog.All()))
	out = append(out, customs...)
	out = append(out, catalog.All()...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.Templates.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl domain.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	created, err := s.Templates.Create(r.Context(), tpl)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) renameTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.Templates.Rename(r.Context(), chi.URLParam(r, "id"), body.Name); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.Templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	on, err := s.Templates.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": on})
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Templates.Favorites(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) listRecents(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Templates.Recents(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// lookup resolves an id against the custom store first, then the
// built-in catalog, so export works for both.
func (s *Server) lookup(r *http.Request, id string) (domain.Template, error) {
	tpl, err := s.Templates.Get(r.Context(), id)
	if err == nil {
		return tpl, nil
	}
	if builtin, ok := catalog.ByID(id); ok {
		return builtin, nil
	}
	return domain.Template{}, err
}

func (s *Server) exportTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.lookup(r, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := s.Templates.ExportOne(tpl)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Slugify(tpl.Name)+".json"))
	w.Write(data)
}

func (s *Server) exportArtifact(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "agent" && format != "command" {
		http.Error(w, "format must be 'agent' or 'command'", http.StatusBadRequest)
		return
	}

	tpl, err := s.lookup(r, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	steps := graph.DeriveStepSequence(tpl.Workflow())
	var artifact, filename string
	if format == "agent" {
		artifact = export.Marshal(export.ToAgentConfig(tpl.Name, tpl.Description, steps))
		filename = export.Filename(tpl.Name, "agent")
	} else {
		artifact = export.Marshal(export.ToCommandConfig(tpl.Name, tpl.Description, steps))
		filename = export.Filename(tpl.Name, "command")
	}

	s.metrics.exports.WithLabelValues(format).Inc()
	w.Header().Set("Content-Type", "text/yaml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	fmt.Fprint(w, artifact)
}

func (s *Server) importTemplates(w http.ResponseWriter, r *http.Request) {
	var raw bytes.Buffer
	if _, err := raw.ReadFrom(http.MaxBytesReader(w, r.Body, 8<<20)); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	outcome, err := s.Templates.ImportMany(r.Context(), []store.File{
		{Name: "upload.json", Reader: &raw},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.imports.Add(float64(outcome.Imported))

	status := http.StatusOK
	if outcome.Imported == 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, outcome)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrTemplateNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, domain.ErrBuiltinImmutable) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
