package config

import (
	"io"
	"log/slog"
)

// parseLevel maps a config log_level string to a slog level.
// Unknown or empty values fall back to info.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger from the log_level and log_format settings.
// Commands write log output to w, normally stderr, so stdout stays
// machine-readable.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	if cfg == nil {
		return slog.New(slog.DiscardHandler)
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
