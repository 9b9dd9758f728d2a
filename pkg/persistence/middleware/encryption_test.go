package middleware_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxyhes/flowforge/pkg/adapters/memory"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/persistence/middleware"
	"github.com/lxyhes/flowforge/pkg/ports"
)

func key(b byte) []byte {
	k := make([]byte, 32)
	for i := range k {
		k[i] = b
	}
	return k
}

func sample() domain.Template {
	return domain.Template{
		ID:   "tpl-1",
		Name: "Deploy",
		Nodes: []domain.Node{
			{ID: "n1", Type: "shell", Data: map[string]any{
				"label":   "Deploy",
				"command": "deploy --token=SECRET",
			}},
		},
		Edges:  []domain.Edge{},
		Source: domain.SourceCustom,
	}
}

func TestEncryptionContract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	})
	ports.RunTemplateRepositoryContract(t, mw(memory.New()))
}

func TestEncryptionHidesContentAtRest(t *testing.T) {
	inner := memory.New()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	})
	repo := mw(inner)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []domain.Template{sample()}))

	// Through the middleware the template round-trips intact.
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, sample(), loaded[0])

	// At rest nothing but the id is readable.
	raw, err := inner.Load(ctx)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "tpl-1", raw[0].ID)
	assert.Empty(t, raw[0].Nodes)

	rawBytes, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.NotContains(t, string(rawBytes), "SECRET")
	assert.NotContains(t, string(rawBytes), "Deploy")
}

func TestEncryptionKeyRotation(t *testing.T) {
	inner := memory.New()
	ctx := context.Background()

	oldRepo := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	})(inner)
	require.NoError(t, oldRepo.Save(ctx, []domain.Template{sample()}))

	// A rotated repo with the old key as fallback still reads the data.
	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    key(2),
		FallbackKeys: [][]byte{key(1)},
	})(inner)
	loaded, err := rotated.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Deploy", loaded[0].Name)

	// Without the fallback, decryption fails.
	wrong := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(3),
	})(inner)
	_, err = wrong.Load(ctx)
	assert.ErrorContains(t, err, "failed to decrypt")
}

func TestEncryptionRejectsPlainRecords(t *testing.T) {
	inner := memory.New()
	ctx := context.Background()
	require.NoError(t, inner.Save(ctx, []domain.Template{sample()}))

	repo := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	})(inner)
	_, err := repo.Load(ctx)
	assert.ErrorContains(t, err, "missing its encrypted envelope")
}

func TestEncryptionRequiresAES256Key(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey: []byte("short"),
		})
	})
}
