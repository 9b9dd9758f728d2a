package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/lxyhes/flowforge/pkg/adapters/redis"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, opts ...redis.Option) *redis.Repository {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...)
}

func TestRepository_Contract(t *testing.T) {
	ports.RunTemplateRepositoryContract(t, newTestRepository(t))
}

func TestRepositoryPrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	a := redis.NewFromClient(client, redis.WithPrefix("a:"))
	b := redis.NewFromClient(client, redis.WithPrefix("b:"))

	ctx := context.Background()
	require.NoError(t, a.Save(ctx, []domain.Template{{ID: "t1", Source: domain.SourceCustom}}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "prefixes keep repositories apart")
}
