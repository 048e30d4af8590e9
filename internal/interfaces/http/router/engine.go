package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leadcrm/backend/internal/infrastructure/config"
	"github.com/leadcrm/backend/internal/infrastructure/logger"
	"github.com/leadcrm/backend/internal/interfaces/http/dto"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig configures the gin engine shared by every route
type EngineConfig struct {
	Mode           string // gin mode: debug, release or test
	HTTP           config.HTTPConfig
	ServiceName    string
	TracingEnabled bool
	Logger         *zap.Logger
}

// NewEngine builds a gin engine with the global middleware chain:
// recovery, request id, tracing, request logging, CORS and body limit.
func NewEngine(cfg EngineConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	if cfg.TracingEnabled {
		engine.Use(middleware.Tracing(cfg.ServiceName))
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "route not found", middleware.GetRequestID(c)))
	})

	return engine
}
