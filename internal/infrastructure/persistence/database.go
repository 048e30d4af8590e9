package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/leadcrm/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// Option customizes how NewDatabase opens the connection
type Option func(*gorm.Config, *[]gorm.Plugin)

// WithGormLogger replaces the default silent gorm logger
func WithGormLogger(l logger.Interface) Option {
	return func(c *gorm.Config, _ *[]gorm.Plugin) {
		c.Logger = l
	}
}

// WithPlugin registers a gorm plugin such as the tracing callback
func WithPlugin(p gorm.Plugin) Option {
	return func(_ *gorm.Config, plugins *[]gorm.Plugin) {
		*plugins = append(*plugins, p)
	}
}

// NewDatabase opens the Postgres connection pool described by cfg
func NewDatabase(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}
	var plugins []gorm.Plugin
	for _, opt := range opts {
		opt(gormConfig, &plugins)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, p := range plugins {
		if err := db.Use(p); err != nil {
			return nil, fmt.Errorf("failed to register gorm plugin %s: %w", p.Name(), err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// PingContext checks if the database connection is alive
func (d *Database) PingContext(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// TranslateError maps driver errors the ledger reports to callers onto
// domain errors. Requires gorm.Config.TranslateError.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError(shared.CodeAlreadyExists, "record already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewBadRequestError("referenced record does not exist")
	}
	return err
}
