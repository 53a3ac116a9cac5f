// Package logger configures the process-wide slog logger.
package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Setup initializes the global logger based on the environment.
// Production gets JSON output, everything else a human-readable text handler.
// WASMFIX_LOG_LEVEL overrides the level (debug, info, warn, error).
func Setup(env string) {
	opts := &slog.HandlerOptions{
		Level: levelFromEnv(),
	}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func levelFromEnv() slog.Level {
	switch os.Getenv("WASMFIX_LOG_LEVEL") {
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
