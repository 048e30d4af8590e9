package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/leadcrm/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// retryInterval is the linear backoff between attempts on a held key
const retryInterval = 50 * time.Millisecond

// NewRedisClient connects to Redis and checks the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisLocker implements AggregateLocker with bsm/redislock, so writers on
// different instances are serialized too.
type RedisLocker struct {
	client    *redislock.Client
	ttl       time.Duration
	wait      time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisLocker creates a RedisLocker. ttl bounds how long a crashed holder
// keeps a key; wait bounds how long Acquire retries.
func NewRedisLocker(rdb redis.UniversalClient, ttl, wait time.Duration, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		client:    redislock.New(rdb),
		ttl:       ttl,
		wait:      wait,
		keyPrefix: "lock:",
		logger:    logger,
	}
}

// Acquire obtains key, retrying linearly until the wait elapses.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	held, err := l.client.Obtain(waitCtx, l.keyPrefix+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryInterval),
	})
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, redislock.ErrNotObtained), errors.Is(err, context.DeadlineExceeded):
		l.logger.Warn("ledger lock not obtained", zap.String("key", key), zap.Duration("wait", l.wait))
		return nil, lockTimeout(key)
	default:
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	release := func() {
		// Release must run even when the request context is already done.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := held.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn("failed to release ledger lock", zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}

func lockTimeout(key string) error {
	return shared.NewDomainError(shared.CodeConcurrencyConflict,
		fmt.Sprintf("another update of %s is in progress, retry shortly", key))
}
