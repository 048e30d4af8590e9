package telemetry

import (
	"context"
	"fmt"

	"github.com/leadcrm/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogs starts the OTLP log pipeline and returns a zap core that mirrors
// entries into it. The core is nil when telemetry is disabled.
func InitLogs(ctx context.Context, cfg config.TelemetryConfig, version string) (zapcore.Core, ShutdownFunc, error) {
	if !cfg.Enabled {
		return nil, noopShutdown, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, version)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(provider)

	core := otelzap.NewCore(cfg.ServiceName, otelzap.WithLoggerProvider(provider))
	return core, withTimeout("logger", provider.Shutdown), nil
}

// Bridge tees log into core. A nil core returns log unchanged.
func Bridge(log *zap.Logger, core zapcore.Core) *zap.Logger {
	if core == nil {
		return log
	}
	return log.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, core)
	}))
}
