package lock

import (
	"context"
	"fmt"

	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/leadcrm/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory creates the ledger's AggregateLocker from configuration
type Factory struct {
	redisConfig           config.RedisConfig
	ledgerConfig          config.LedgerConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory and the lockers it creates
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-process locker. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new Factory
func NewFactory(redisCfg config.RedisConfig, ledgerCfg config.LedgerConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           redisCfg,
		ledgerConfig:          ledgerCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateLocker returns a Redis locker when Redis is enabled and reachable,
// and the in-process locker otherwise. The Redis client, when one was
// opened, is returned so the caller can close it on shutdown.
func (f *Factory) CreateLocker(ctx context.Context) (appledger.AggregateLocker, *redis.Client, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-process ledger locks")
		return NewMemoryLocker(f.ledgerConfig.LockWait), nil, nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis ledger locks", zap.String("addr", f.redisConfig.Addr()))
		return NewRedisLocker(client, f.ledgerConfig.LockTTL, f.ledgerConfig.LockWait, f.logger), client, nil
	}

	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("redis required for ledger locks but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-process ledger locks. "+
		"Writers on other instances are not serialized.",
		zap.Error(err),
	)
	return NewMemoryLocker(f.ledgerConfig.LockWait), nil, nil
}

var (
	_ appledger.AggregateLocker = (*RedisLocker)(nil)
	_ appledger.AggregateLocker = (*MemoryLocker)(nil)
)
