package telemetry

import (
	"github.com/leadcrm/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// GormPlugin returns the otelgorm plugin configured from cfg, or nil when
// database tracing is off. Query variables are only recorded when full SQL
// logging is enabled.
func GormPlugin(cfg config.TelemetryConfig) gorm.Plugin {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	return otelgorm.NewPlugin(opts...)
}
