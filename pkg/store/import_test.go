package store_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEnvelope = `{
  "version": 1,
  "template": {
    "id": "tpl-review",
    "name": "Review",
    "category": "quality",
    "tags": ["git"],
    "description": "review flow",
    "nodes": [
      {"id": "n1", "type": "start", "position": {"x": 0, "y": 0}, "data": {"label": "开始"}},
      {"id": "n2", "type": "prompt", "position": {"x": 100, "y": 0}, "data": {"label": "Ask"}},
      {"id": "n3", "type": "end", "position": {"x": 200, "y": 0}, "data": {"label": "结束"}}
    ],
    "edges": [
      {"id": "e1", "source": "n1", "target": "n2"},
      {"id": "e2", "source": "n2", "target": "n3"}
    ],
    "source": "custom",
    "exported_at": "2026-08-27T11:00:00Z"
  }
}`

func importOne(t *testing.T, s *store.Service, content string) store.Outcome {
	t.Helper()
	outcome, err := s.ImportMany(context.Background(), []store.File{
		{Name: "upload.json", Reader: strings.NewReader(content)},
	})
	require.NoError(t, err)
	return outcome
}

func TestImportEnvelope(t *testing.T) {
	s := newService(t)
	outcome := importOne(t, s, validEnvelope)
	assert.Equal(t, store.Outcome{Imported: 1, Skipped: 0}, outcome)

	list, err := s.ListCustom(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "tpl-review", list[0].ID, "non-colliding id is kept")
	assert.Equal(t, "Review", list[0].Name)
	assert.Len(t, list[0].Nodes, 3)
	assert.Len(t, list[0].Edges, 2)
}

func TestImportBareArrayAndWrapper(t *testing.T) {
	s := newService(t)

	bare := `[{"id": "a", "name": "A", "nodes": [], "edges": []}]`
	wrapper := `{"templates": [{"id": "b", "name": "B", "nodes": [], "edges": []},
	                           {"id": "c", "name": "C", "nodes": [], "edges": []}]}`

	outcome, err := s.ImportMany(context.Background(), []store.File{
		{Name: "bare.json", Reader: strings.NewReader(bare)},
		{Name: "wrapper.json", Reader: strings.NewReader(wrapper)},
	})
	require.NoError(t, err)
	assert.Equal(t, store.Outcome{Imported: 3, Skipped: 0}, outcome)

	list, err := s.ListCustom(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Most-recent-first: the last accepted candidate leads the list.
	assert.Equal(t, "C", list[0].Name)
	assert.Equal(t, "A", list[2].Name)
}

func TestImportSkipsMalformedCandidates(t *testing.T) {
	s := newService(t)

	outcome, err := s.ImportMany(context.Background(), []store.File{
		{Name: "garbage.json", Reader: strings.NewReader(`not json at all`)},
		{Name: "no-arrays.json", Reader: strings.NewReader(`{"template": {"id": "x", "nodes": "nope", "edges": []}}`)},
		{Name: "mixed.json", Reader: strings.NewReader(`[{"id": "ok", "nodes": [], "edges": []}, {"id": "bad"}]`)},
	})
	require.NoError(t, err, "a batch never fails on candidate errors")
	assert.Equal(t, store.Outcome{Imported: 1, Skipped: 3}, outcome)
}

func TestImportCollisionGetsFreshID(t *testing.T) {
	s := newService(t, store.WithBuiltins([]domain.Template{{ID: "builtin-1"}}))
	ctx := context.Background()

	importOne(t, s, validEnvelope)
	// Same file again: id collides with the first import.
	importOne(t, s, validEnvelope)
	// Built-in collision and empty id both get fresh ids.
	importOne(t, s, `{"template": {"id": "builtin-1", "nodes": [], "edges": []}}`)
	importOne(t, s, `{"template": {"nodes": [], "edges": []}}`)

	list, err := s.ListCustom(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	seen := make(map[string]bool)
	for _, tpl := range list {
		assert.NotEmpty(t, tpl.ID)
		assert.False(t, seen[tpl.ID], "id %q duplicated", tpl.ID)
		assert.NotEqual(t, "builtin-1", tpl.ID)
		seen[tpl.ID] = true
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newService(t)
	created := seed(t, s, "Round Trip")[0]
	ctx := context.Background()

	data, err := s.ExportOne(created)
	require.NoError(t, err)

	var envelope domain.ExportEnvelope
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, domain.EnvelopeVersion, envelope.Version)
	assert.Equal(t, "2026-08-27T12:00:00Z", envelope.Template.ExportedAt)

	outcome, err := s.ImportMany(ctx, []store.File{
		{Name: "roundtrip.json", Reader: strings.NewReader(string(data))},
	})
	require.NoError(t, err)
	assert.Equal(t, store.Outcome{Imported: 1, Skipped: 0}, outcome)

	list, err := s.ListCustom(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// The re-import collided with the original id, so it was re-keyed,
	// but nodes and edges survive byte-for-byte.
	assert.NotEqual(t, created.ID, list[0].ID)
	assert.Equal(t, created.Nodes, list[0].Nodes)
	assert.Equal(t, created.Edges, list[0].Edges)
	assert.Equal(t, created.Name, list[0].Name)
}
