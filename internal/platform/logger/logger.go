package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/star-print/internal/config"
)

type contextKey struct{}

// Setup creates the application's JSON logger on stdout and installs it as the
// slog default. The level is debug when debugging is enabled, info otherwise.
func Setup(cfg config.ServerConfig) *slog.Logger {
	return SetupWriter(cfg, os.Stdout)
}

// SetupWriter is Setup writing to w.
func SetupWriter(cfg config.ServerConfig, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug() {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))

	// Lets packages that log through slog.Info and friends share the handler.
	slog.SetDefault(logger)

	return logger
}

// WithLogger returns a copy of ctx carrying logger. It panics on a nil logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		panic("logger: nil logger")
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when ctx
// is nil or carries none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx == nil {
		return fallback
	}
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return fallback
}
