package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sangkips/sales-analytics-api/internal/config"
	"github.com/sangkips/sales-analytics-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, env string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: NewGormLogger(log, env),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	log.Info("connected to PostgreSQL database", "host", cfg.Host, "database", cfg.Name)
	return db, nil
}

// NewGormLogger routes GORM's statement log through slog. SQL is only traced
// outside production.
func NewGormLogger(log *slog.Logger, env string) gormlogger.Interface {
	level := gormlogger.Info
	if env == "production" {
		level = gormlogger.Warn
	}
	return gormlogger.New(slog.NewLogLogger(log.Handler(), slog.LevelDebug), gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// AutoMigrate creates or updates the tables read by the sales analysis
func AutoMigrate(db *gorm.DB, log *slog.Logger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(
		&entity.Booking{},
		&entity.Quotation{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}
