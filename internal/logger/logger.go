package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/script-editor/internal/config"
)

// Setup configures the global slog logger based on environment. Logs go
// to stderr so command output on stdout stays clean.
func Setup(cfg *config.Config) *slog.Logger {
	return setup(cfg, os.Stderr)
}

func setup(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// WithScript adds the script path to logger context
func WithScript(logger *slog.Logger, path string) *slog.Logger {
	return logger.With("script", path)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
