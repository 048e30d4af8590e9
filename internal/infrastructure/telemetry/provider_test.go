package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/leadcrm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := config.TelemetryConfig{Enabled: false}

	shutdownTracer, err := InitTracer(ctx, cfg, "test", zap.NewNop())
	require.NoError(t, err)
	shutdownMeter, err := InitMeter(ctx, cfg, "test", zap.NewNop())
	require.NoError(t, err)
	core, shutdownLogs, err := InitLogs(ctx, cfg, "test")
	require.NoError(t, err)
	assert.Nil(t, core)

	assert.NoError(t, Combine(shutdownTracer, shutdownMeter, shutdownLogs)(ctx))
	assert.Nil(t, GormPlugin(cfg))
}

func TestCombine_JoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	calls := 0

	err := Combine(
		func(context.Context) error { calls++; return first },
		nil,
		func(context.Context) error { calls++; return nil },
		func(context.Context) error { calls++; return second },
	)(context.Background())

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestGormPlugin(t *testing.T) {
	assert.Nil(t, GormPlugin(config.TelemetryConfig{Enabled: true, DBTraceEnabled: false}))

	plugin := GormPlugin(config.TelemetryConfig{Enabled: true, DBTraceEnabled: true})
	require.NotNil(t, plugin)
	assert.Equal(t, "otelgorm", plugin.Name())
}

func TestBridge(t *testing.T) {
	base, baseLogs := observer.New(zapcore.InfoLevel)
	extra, extraLogs := observer.New(zapcore.InfoLevel)
	log := zap.New(base)

	assert.Same(t, log, Bridge(log, nil))

	Bridge(log, extra).Info("payout created")
	assert.Equal(t, 1, baseLogs.Len())
	assert.Equal(t, 1, extraLogs.Len())
}
