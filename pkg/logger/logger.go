package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sangkips/sales-analytics-api/internal/config"
)

// New returns a configured slog.Logger writing to stdout.
func New(cfg *config.LogConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter returns a configured slog.Logger writing to w.
func NewWithWriter(cfg *config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true, Level: slog.LevelInfo}
	format := "text"
	if cfg != nil {
		opts.Level = ParseLevel(cfg.Level)
		format = strings.ToLower(cfg.Format)
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}
