package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxyhes/flowforge/pkg/adapters/memory"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/store"
)

func newHandler(t *testing.T) (http.Handler, *store.Service) {
	t.Helper()
	svc := store.New(memory.New())
	return NewHandler(svc, nil), svc
}

func TestGetHealth(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest("GET", "/info", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "flowforge-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
}

func TestTemplateLifecycle(t *testing.T) {
	handler, _ := newHandler(t)

	// Create.
	body := `{"name":"My Flow","category":"custom","nodes":[],"edges":[]}`
	req := httptest.NewRequest("POST", "/api/templates", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created domain.Template
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.SourceCustom, created.Source)

	// Rename.
	req = httptest.NewRequest("PATCH", "/api/templates/"+created.ID, strings.NewReader(`{"name":"Renamed"}`))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest("GET", "/api/templates/"+created.ID, nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.Template
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Renamed", got.Name)

	// Delete.
	req = httptest.NewRequest("DELETE", "/api/templates/"+created.ID, nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest("GET", "/api/templates/"+created.ID, nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListIncludesBuiltins(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest("GET", "/api/templates", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var templates []domain.Template
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &templates))
	require.NotEmpty(t, templates)
	for _, tpl := range templates {
		assert.Equal(t, domain.SourceBuiltin, tpl.Source)
	}
}

func TestToggleFavorite(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest("POST", "/api/templates/builtin-code-review/favorite", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp["favorite"])

	req = httptest.NewRequest("GET", "/api/favorites", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	var ids []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ids))
	assert.Equal(t, []string{"builtin-code-review"}, ids)
}

func TestExportArtifact(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest("GET", "/api/templates/builtin-code-review/artifact?format=agent", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Contains(t, rr.Body.String(), "Execute the following workflow:")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "code-review.agent.yaml")

	req = httptest.NewRequest("GET", "/api/templates/builtin-code-review/artifact?format=pdf", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestImportEndpoint(t *testing.T) {
	handler, _ := newHandler(t)

	payload := `{"version":1,"template":{"id":"tpl-x","name":"Imported","nodes":[],"edges":[]}}`
	req := httptest.NewRequest("POST", "/api/import", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var outcome store.Outcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
	assert.Equal(t, 1, outcome.Imported)
	assert.Equal(t, 0, outcome.Skipped)

	// A body with nothing importable is rejected.
	req = httptest.NewRequest("POST", "/api/import", strings.NewReader(`{"bogus":true}`))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
