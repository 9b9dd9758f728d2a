package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxyhes/flowforge/pkg/catalog"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/graph"
)

func TestAll_CatalogIsWellFormed(t *testing.T) {
	all := catalog.All()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for _, tpl := range all {
		assert.False(t, seen[tpl.ID], "duplicate template id %q", tpl.ID)
		seen[tpl.ID] = true

		assert.NotEmpty(t, tpl.Name, "%s: name", tpl.ID)
		assert.NotEmpty(t, tpl.Category, "%s: category", tpl.ID)
		assert.Equal(t, domain.SourceBuiltin, tpl.Source, "%s: source", tpl.ID)

		w := tpl.Workflow()
		assert.Equal(t, 1, graph.CountStarts(w), "%s: start nodes", tpl.ID)
		assert.Empty(t, graph.Unreachable(w), "%s: unreachable nodes", tpl.ID)

		ids := make(map[string]bool, len(w.Nodes))
		for _, n := range w.Nodes {
			assert.NotEqual(t, domain.KindUnknown, n.Kind(), "%s: node %s has unknown type %q", tpl.ID, n.ID, n.Type)
			ids[n.ID] = true
		}
		for _, e := range w.Edges {
			assert.True(t, ids[e.Source], "%s: edge %s source", tpl.ID, e.ID)
			assert.True(t, ids[e.Target], "%s: edge %s target", tpl.ID, e.ID)
		}
	}
}

func TestAll_EveryNodeKindHasAHome(t *testing.T) {
	used := make(map[domain.NodeKind]bool)
	for _, tpl := range catalog.All() {
		for _, n := range tpl.Nodes {
			used[n.Kind()] = true
		}
	}
	for _, k := range domain.Kinds() {
		assert.True(t, used[k], "no built-in template uses kind %q", k)
	}
}

func TestByID(t *testing.T) {
	tpl, ok := catalog.ByID("builtin-code-review")
	require.True(t, ok)
	assert.Equal(t, "Code Review", tpl.Name)

	_, ok = catalog.ByID("no-such-template")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	quality := catalog.ByCategory("quality")
	require.Len(t, quality, 1)
	assert.Equal(t, "builtin-code-review", quality[0].ID)

	assert.Empty(t, catalog.ByCategory("nonexistent"))
}
