//go:build integration

package lock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisLocker_Integration(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	t.Run("second holder times out", func(t *testing.T) {
		locker := NewRedisLocker(client, 5*time.Second, 200*time.Millisecond, nil)

		release, err := locker.Acquire(ctx, "ledger:payout:lead:1")
		require.NoError(t, err)

		_, err = locker.Acquire(ctx, "ledger:payout:lead:1")
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		release()

		release, err = locker.Acquire(ctx, "ledger:payout:lead:1")
		require.NoError(t, err)
		release()
	})

	t.Run("waiter gets the key after release", func(t *testing.T) {
		locker := NewRedisLocker(client, 5*time.Second, 2*time.Second, nil)

		release, err := locker.Acquire(ctx, "ledger:invoice:lead:2")
		require.NoError(t, err)
		go func() {
			time.Sleep(100 * time.Millisecond)
			release()
		}()

		second, err := locker.Acquire(ctx, "ledger:invoice:lead:2")
		require.NoError(t, err)
		second()
	})

	t.Run("expired key is reclaimed", func(t *testing.T) {
		locker := NewRedisLocker(client, 100*time.Millisecond, time.Second, nil)

		_, err := locker.Acquire(ctx, "ledger:payout:lead:3")
		require.NoError(t, err)

		release, err := locker.Acquire(ctx, "ledger:payout:lead:3")
		require.NoError(t, err)
		release()
	})
}
