package troupe

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/troupe/internal/compiler"
	"github.com/aretw0/troupe/internal/runtime"
	"github.com/aretw0/troupe/pkg/actors"
	"github.com/aretw0/troupe/pkg/actors/misc"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/ports"
	"github.com/aretw0/troupe/pkg/registry"
)

// Version is the library version reported by the CLI and servers.
const Version = "0.3.0"

// Engine is the high-level entry point for the Troupe library.
// It wraps the registry, the tree builder and the runtime behind a simple API.
// An Engine is safe for concurrent use: every Execute builds its own tree and result.
type Engine struct {
	registry *registry.Registry
	builder  *compiler.Builder
	runtime  *runtime.Engine
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	store    ports.ArrayStore
	wait     misc.WaitFunc
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry replaces the built-in registry. The registry is sealed by New.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithArrayStore sets the store used by the server_array kinds of the built-in registry.
func WithArrayStore(store ports.ArrayStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithSleeper replaces the wait function of misc.Sleep in the built-in registry.
func WithSleeper(wait misc.WaitFunc) Option {
	return func(e *Engine) {
		e.wait = wait
	}
}

// New initializes a new Troupe Engine.
// Without WithRegistry, the built-in kinds are registered.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.registry == nil {
		r := registry.New()
		if err := actors.RegisterDefaults(r, actors.Deps{Store: eng.store, Wait: eng.wait}); err != nil {
			return nil, fmt.Errorf("failed to register built-in actors: %w", err)
		}
		eng.registry = r
	}
	eng.registry.Seal()

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.builder = compiler.NewBuilder(eng.registry)
	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)
	return eng, nil
}

// Build compiles a definition into an executable tree.
// All problems are reported at once in a *compiler.BuildError.
func (e *Engine) Build(def *domain.Definition) (*domain.Node, error) {
	return e.builder.Build(def)
}

// Validate checks a definition without running it.
func (e *Engine) Validate(def *domain.Definition) error {
	return e.builder.Validate(def)
}

// Execute builds def and runs it. dry is propagated to every actor of the tree.
// The returned error covers build failures only; actor failures are reported
// in the run's results.
func (e *Engine) Execute(ctx context.Context, def *domain.Definition, dry bool) (*domain.Run, error) {
	root, err := e.Build(def)
	if err != nil {
		return nil, err
	}
	return e.runtime.Execute(ctx, root, dry), nil
}

// ExecuteBytes parses a YAML or JSON definition and executes it.
func (e *Engine) ExecuteBytes(ctx context.Context, data []byte, dry bool) (*domain.Run, error) {
	def, err := compiler.Parse(data)
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, def, dry)
}

// ExecuteFile loads a definition file and executes it.
func (e *Engine) ExecuteFile(ctx context.Context, path string, dry bool) (*domain.Run, error) {
	def, err := compiler.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, def, dry)
}

// WithRunID returns a copy of ctx that makes the next Execute use id as its
// run ID. Callers pick the ID up front to subscribe to the run's events.
func WithRunID(ctx context.Context, id string) context.Context {
	return domain.ContextWithRunID(ctx, id)
}

// Parse decodes a YAML or JSON definition.
func Parse(data []byte) (*domain.Definition, error) {
	return compiler.Parse(data)
}

// LoadFile reads a definition file (".json" as JSON, anything else as YAML).
func LoadFile(path string) (*domain.Definition, error) {
	return compiler.LoadFile(path)
}

// Kinds returns the registered actor kinds, sorted.
func (e *Engine) Kinds() []string {
	return e.registry.Kinds()
}

// Lookup returns the behavior registered for kind.
func (e *Engine) Lookup(kind string) (domain.Actor, error) {
	return e.registry.Lookup(kind)
}

// Registry returns the engine's (sealed) registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}
