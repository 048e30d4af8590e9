package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/leadcrm/backend/internal/infrastructure/auth"
	"github.com/leadcrm/backend/internal/infrastructure/config"
	"github.com/leadcrm/backend/internal/infrastructure/event"
	"github.com/leadcrm/backend/internal/infrastructure/lock"
	"github.com/leadcrm/backend/internal/infrastructure/logger"
	"github.com/leadcrm/backend/internal/infrastructure/persistence"
	"github.com/leadcrm/backend/internal/infrastructure/telemetry"
	"github.com/leadcrm/backend/internal/interfaces/http/handler"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
	"github.com/leadcrm/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Lead Ledger API
//	@version		1.0
//	@description	Advisor payouts, invoices and their payments for loan referral leads

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lead-ledger:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Telemetry
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry, version, log)
	if err != nil {
		return err
	}
	shutdownMeter, err := telemetry.InitMeter(ctx, cfg.Telemetry, version, log)
	if err != nil {
		return err
	}
	logCore, shutdownLogs, err := telemetry.InitLogs(ctx, cfg.Telemetry, version)
	if err != nil {
		return err
	}
	log = telemetry.Bridge(log, logCore)
	shutdownTelemetry := telemetry.Combine(shutdownLogs, shutdownMeter, shutdownTracer)

	log.Info("Starting lead ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	// Database
	dbOpts := []persistence.Option{
		persistence.WithGormLogger(logger.NewGormLogger(
			log.Named("gorm"),
			logger.MapGormLogLevel(cfg.Log.Level),
			cfg.Telemetry.DBSlowQueryThresh,
		)),
	}
	if plugin := telemetry.GormPlugin(cfg.Telemetry); plugin != nil {
		dbOpts = append(dbOpts, persistence.WithPlugin(plugin))
	}
	db, err := persistence.NewDatabase(&cfg.Database, dbOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.DBName))

	// Ledger locks
	locker, redisClient, err := lock.NewFactory(cfg.Redis, cfg.Ledger,
		lock.WithLogger(log.Named("lock")),
		lock.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateLocker(ctx)
	if err != nil {
		return err
	}
	readiness := map[string]handler.Pinger{"database": db}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		readiness["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// Domain events
	bus := event.NewInMemoryEventBus(log.Named("events"))
	bus.Subscribe(event.NewJournalHandler(log.Named("journal")))
	metrics, err := telemetry.NewLedgerMetrics(otel.Meter("github.com/leadcrm/backend/ledger"))
	if err != nil {
		return fmt.Errorf("create ledger metrics: %w", err)
	}
	bus.Subscribe(metrics)

	// Repositories and services
	gormDB := db.DB
	scope := persistence.NewGormTransactionScope(gormDB)
	leads := persistence.NewGormLeadRepository(gormDB)
	payouts := persistence.NewGormAdvisorPayoutRepository(gormDB)
	payables := persistence.NewGormPayableRepository(gormDB)
	masters := persistence.NewGormInvoiceMasterRepository(gormDB)
	invoices := persistence.NewGormInvoiceRepository(gormDB)
	receivables := persistence.NewGormReceivableRepository(gormDB)
	queries := persistence.NewGormLedgerQueryRepository(gormDB)

	serviceOpts := []appledger.ServiceOption{
		appledger.WithEventPublisher(bus),
		appledger.WithAggregateLocker(locker),
		appledger.WithLogger(log.Named("ledger")),
	}
	payoutService := appledger.NewPayoutService(scope, payouts, leads, queries, serviceOpts...)
	payableService := appledger.NewPayableService(scope, payouts, payables, queries, serviceOpts...)
	invoiceService := appledger.NewInvoiceService(scope, invoices, leads, queries, serviceOpts...)
	receivableService := appledger.NewReceivableService(scope, masters, receivables, queries, serviceOpts...)

	// HTTP
	ginMode := gin.DebugMode
	if cfg.App.Env == "production" {
		ginMode = gin.ReleaseMode
	}
	engine := router.NewEngine(router.EngineConfig{
		Mode:           ginMode,
		HTTP:           cfg.HTTP,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		Logger:         log,
	})
	handler.NewHealthHandler(version, readiness).RegisterRoutes(engine)

	paging := handler.Paging{
		DefaultPageSize: cfg.Ledger.DefaultPageSize,
		MaxPageSize:     cfg.Ledger.MaxPageSize,
	}
	apiMiddleware := []gin.HandlerFunc{middleware.Authenticate(auth.NewVerifier(cfg.JWT))}
	if cfg.Telemetry.Enabled {
		apiMiddleware = append(apiMiddleware, middleware.SpanAttributes())
	}
	routes := router.NewRouter(engine, router.WithAPIMiddleware(apiMiddleware...)).
		Register(
			handler.NewPayoutHandler(payoutService, paging),
			handler.NewPayableHandler(payableService, paging),
			handler.NewInvoiceHandler(invoiceService, paging),
			handler.NewReceivableHandler(receivableService, paging),
		).
		Setup()
	log.Info("API routes mounted", zap.Int("routes", len(routes)))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	return nil
}
