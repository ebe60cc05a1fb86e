package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-analytics-api/internal/config"
	"github.com/sangkips/sales-analytics-api/internal/observability"
	"github.com/sangkips/sales-analytics-api/internal/presentation/http/dto/response"
	"github.com/sangkips/sales-analytics-api/internal/presentation/http/handler"
	"github.com/sangkips/sales-analytics-api/internal/presentation/http/middleware"
	"github.com/sangkips/sales-analytics-api/pkg/apperror"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Analytics *handler.AnalyticsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg         *config.Config
	Logger      *slog.Logger
	Metrics     *observability.Metrics
	RateLimiter *middleware.ClientRateLimiter
}

// NewRateLimiter builds the per-client limiter guarding the API group.
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.ClientRateLimiter {
	return middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RequestsPerSecond(),
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(deps.Metrics.Middleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, apperror.ErrNotFound)
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	{
		analytics := v1.Group("/analytics")
		analytics.GET("/sales", h.Analytics.GetSalesAnalysis)
	}

	return router
}
