package domain

import (
	"context"
	"log/slog"
)

type (
	loggerKey struct{}
	runIDKey  struct{}
)

// ContextWithLogger returns a copy of ctx carrying logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger the engine attached for the running
// actor, already enriched with run_id, dry, path and kind. Leaf kinds
// defined outside this module log through it. Falls back to a discarding logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}

// ContextWithRunID attaches a run identifier to ctx. A run started with it
// uses id instead of generating one.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run identifier attached to ctx.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}
