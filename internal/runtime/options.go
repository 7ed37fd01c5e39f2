package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/troupe/pkg/domain"
)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source (used by tests).
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRunID attaches a run identifier to ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return domain.ContextWithRunID(ctx, id)
}

// RunIDFromContext returns the run identifier attached to ctx.
func RunIDFromContext(ctx context.Context) (string, bool) {
	return domain.RunIDFromContext(ctx)
}
