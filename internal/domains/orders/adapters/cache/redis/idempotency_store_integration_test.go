//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
)

func setupRedisContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	addr, err := container.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)

	return addr, func() { _ = container.Terminate(ctx) }
}

func TestIdempotencyStore_ReserveCompleteRelease(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	addr, cleanup := setupRedisContainer(t)
	defer cleanup()

	ctx := context.Background()
	store, err := NewIdempotencyStore(ctx, Config{Addr: addr, TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, "order-key")
	require.NoError(t, err)
	assert.Nil(t, got)

	holder, err := store.Reserve(ctx, "order-key", "h1")
	require.NoError(t, err)
	assert.Nil(t, holder)

	holder, err = store.Reserve(ctx, "order-key", "h1")
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.True(t, holder.Pending)

	leaseTTL, err := store.client.TTL(ctx, DefaultKeyPrefix+"order-key").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, leaseTTL, ports.IdempotencyLease)

	require.NoError(t, store.Complete(ctx, ports.IdempotencyRecord{Key: "order-key", RequestHash: "h1", Result: []byte(`{"status":200}`)}))
	require.NoError(t, store.Release(ctx, "order-key"))

	holder, err = store.Reserve(ctx, "order-key", "h2")
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.False(t, holder.Pending)
	assert.Equal(t, "h1", holder.RequestHash)
	assert.JSONEq(t, `{"status":200}`, string(holder.Result))

	ttl, err := store.client.TTL(ctx, DefaultKeyPrefix+"order-key").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, ports.IdempotencyLease)

	_, err = store.Reserve(ctx, "retry-key", "h1")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "retry-key"))
	holder, err = store.Reserve(ctx, "retry-key", "h1")
	require.NoError(t, err)
	assert.Nil(t, holder)
}
