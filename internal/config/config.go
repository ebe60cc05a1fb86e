package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Analytics AnalyticsConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

// LogConfig selects the slog handler. Format is "text" or "json".
type LogConfig struct {
	Format string
	Level  string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RateLimitConfig allows Requests per Duration seconds for each client.
type RateLimitConfig struct {
	Requests int
	Duration int
}

// AnalyticsConfig bounds the sales analysis fan-out. MaxParallelQueries of 1
// runs the queries one after another; 0 or less means no limit.
type AnalyticsConfig struct {
	QueryTimeout       time.Duration
	MaxParallelQueries int
}

func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		slog.Warn(".env file not found, using environment variables", "error", err)
	}

	// Set defaults
	v.SetDefault("APP_NAME", "sales-analytics-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "sales")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Africa/Nairobi")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", []string{})
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("ANALYTICS_QUERY_TIMEOUT", 30*time.Second)
	v.SetDefault("ANALYTICS_MAX_PARALLEL_QUERIES", 0)

	return &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("APP_PORT"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			Name:         v.GetString("DB_NAME"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			Timezone:     v.GetString("DB_TIMEZONE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Format: v.GetString("LOG_FORMAT"),
			Level:  v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: stringList(v, "CORS_ALLOWED_ORIGINS"),
			AllowedMethods: stringList(v, "CORS_ALLOWED_METHODS"),
			AllowedHeaders: stringList(v, "CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Analytics: AnalyticsConfig{
			QueryTimeout:       v.GetDuration("ANALYTICS_QUERY_TIMEOUT"),
			MaxParallelQueries: v.GetInt("ANALYTICS_MAX_PARALLEL_QUERIES"),
		},
	}
}

// stringList reads a list key that may be given as a comma or space separated
// string in the environment.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// RequestsPerSecond converts the configured window into a token refill rate.
func (c *RateLimitConfig) RequestsPerSecond() float64 {
	if c.Duration <= 0 {
		return float64(c.Requests)
	}
	return float64(c.Requests) / float64(c.Duration)
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
