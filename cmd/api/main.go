package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sangkips/sales-analytics-api/internal/application/service"
	"github.com/sangkips/sales-analytics-api/internal/config"
	"github.com/sangkips/sales-analytics-api/internal/infrastructure/database"
	"github.com/sangkips/sales-analytics-api/internal/infrastructure/repository"
	"github.com/sangkips/sales-analytics-api/internal/observability"
	"github.com/sangkips/sales-analytics-api/internal/presentation/http/handler"
	"github.com/sangkips/sales-analytics-api/internal/presentation/http/routes"
	"github.com/sangkips/sales-analytics-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	log := logger.New(&cfg.Log)
	slog.SetDefault(log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Env, log)
	if err != nil {
		log.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("open sql pool", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, log); err != nil {
			log.Error("migrate", "error", err)
			os.Exit(1)
		}
	}

	metrics := observability.NewMetrics()
	metrics.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewDBStatsCollector(sqlDB, cfg.Database.Name),
	)

	// Initialize repositories and services
	analyticsRepo := repository.NewAnalyticsRepository(db)
	salesService := service.NewSalesAnalysisService(analyticsRepo, service.AnalysisOptions{
		QueryTimeout:       cfg.Analytics.QueryTimeout,
		MaxParallelQueries: cfg.Analytics.MaxParallelQueries,
	}, log, metrics)

	rateLimiter := routes.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Close()

	router := routes.Setup(&routes.Handlers{
		Analytics: handler.NewAnalyticsHandler(salesService),
	}, &routes.Deps{
		Cfg:         cfg,
		Logger:      log,
		Metrics:     metrics,
		RateLimiter: rateLimiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting http server", "service", cfg.App.Name, "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", "error", err)
	}
}
