package ports

import (
	"context"
	"testing"

	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTemplateRepositoryContract runs a suite of tests to verify that a
// TemplateRepository implementation adheres to the interface contract.
// Every adapter's test file calls this against a fresh instance.
func RunTemplateRepositoryContract(t *testing.T, repo TemplateRepository) {
	ctx := context.Background()

	tpl := func(id, name string) domain.Template {
		return domain.Template{
			ID:     id,
			Name:   name,
			Source: domain.SourceCustom,
			Nodes: []domain.Node{
				{ID: id + "-n1", Type: "start", Data: map[string]any{"label": "开始"}},
			},
			Edges: []domain.Edge{},
		}
	}

	t.Run("Empty Load", func(t *testing.T) {
		templates, err := repo.Load(ctx)
		require.NoError(t, err, "Load on an empty repository should not error")
		assert.Empty(t, templates)
	})

	t.Run("Save and Load", func(t *testing.T) {
		list := []domain.Template{tpl("t1", "First"), tpl("t2", "Second")}
		require.NoError(t, repo.Save(ctx, list))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "t1", loaded[0].ID)
		assert.Equal(t, "First", loaded[0].Name)
		assert.Equal(t, domain.SourceCustom, loaded[0].Source)
		require.Len(t, loaded[0].Nodes, 1)
		assert.Equal(t, "开始", loaded[0].Nodes[0].Label())
	})

	t.Run("Save Replaces Whole List", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, []domain.Template{tpl("t3", "Only")}))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "t3", loaded[0].ID)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, []domain.Template{tpl("t4", "A"), tpl("t5", "B")}))
		require.NoError(t, repo.Remove(ctx, "t4"))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "t5", loaded[0].ID)

		// Removing an unknown id is a no-op.
		assert.NoError(t, repo.Remove(ctx, "ghost"))
	})

	t.Run("ID Lists", func(t *testing.T) {
		empty, err := repo.LoadIDList(ctx, KeyFavorites)
		require.NoError(t, err, "LoadIDList on an empty key should not error")
		assert.Empty(t, empty)

		require.NoError(t, repo.SaveIDList(ctx, KeyFavorites, []string{"t1", "t2"}))
		require.NoError(t, repo.SaveIDList(ctx, KeyRecents, []string{"t2"}))

		favorites, err := repo.LoadIDList(ctx, KeyFavorites)
		require.NoError(t, err)
		assert.Equal(t, []string{"t1", "t2"}, favorites)

		recents, err := repo.LoadIDList(ctx, KeyRecents)
		require.NoError(t, err)
		assert.Equal(t, []string{"t2"}, recents, "lists are independent per key")

		require.NoError(t, repo.SaveIDList(ctx, KeyFavorites, []string{"t2"}))
		favorites, err = repo.LoadIDList(ctx, KeyFavorites)
		require.NoError(t, err)
		assert.Equal(t, []string{"t2"}, favorites, "SaveIDList replaces the list")
	})
}
