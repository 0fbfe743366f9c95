package logging

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

type ctxKey struct{}

var (
	mu            sync.Mutex
	defaultLogger = newConsoleLogger(nil, slog.LevelInfo)
)

// Default returns the process-wide logger.
func Default() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// With stores the logger into the context.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From extracts the logger from the context, falling back to Default.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}

func newConsoleLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := []clog.Option{
		clog.WithLevel(level),
		clog.WithSource(true),
		clog.WithReplaceAttr(masq.New(masq.WithTag("secret"))),
	}
	if w != nil {
		opts = append(opts, clog.WithWriter(w))
	}
	return slog.New(clog.New(opts...))
}

// NewConsoleLogger builds a human-readable logger for terminals.
func NewConsoleLogger(w io.Writer, level slog.Level) *slog.Logger {
	return newConsoleLogger(w, level)
}

// NewJSONLogger builds a machine-readable logger for production.
func NewJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: masq.New(masq.WithTag("secret")),
	}))
}
