package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/schema"
)

// ErrSealed is returned when registering into a sealed registry.
var ErrSealed = errors.New("registry is sealed")

// Registry maps actor kinds to their behavior.
// Kinds are registered during initialization; after Seal the registry is
// read-only and lookups take no lock.
type Registry struct {
	mu     sync.RWMutex
	kinds  map[string]domain.Actor
	sealed atomic.Bool
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		kinds: make(map[string]domain.Actor),
	}
}

// Register adds an actor kind to the registry.
// Returns a *domain.DuplicateKindError if the kind is taken.
func (r *Registry) Register(kind string, actor domain.Actor) error {
	if kind == "" {
		return fmt.Errorf("actor kind must not be empty")
	}
	if actor == nil {
		return fmt.Errorf("actor kind %q: behavior must not be nil", kind)
	}
	for name, opt := range actor.Schema() {
		if opt.Type == nil {
			return fmt.Errorf("actor kind %q: option %q has no type", kind, name)
		}
		if _, err := opt.NormalizedDefault(); err != nil {
			return fmt.Errorf("actor kind %q: invalid default for option %q: %w", kind, name, err)
		}
	}
	switch actor.(type) {
	case domain.Composite:
	case domain.Leaf:
		for name, opt := range actor.Schema() {
			if schema.IsActors(opt.Type) {
				return fmt.Errorf("actor kind %q: leaf option %q cannot hold nested actors", kind, name)
			}
		}
	default:
		return fmt.Errorf("actor kind %q: %T implements neither Leaf nor Composite", kind, actor)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return fmt.Errorf("register %q: %w", kind, ErrSealed)
	}
	if _, exists := r.kinds[kind]; exists {
		return &domain.DuplicateKindError{Kind: kind}
	}
	r.kinds[kind] = actor
	return nil
}

// MustRegister is like Register but panics on error. Intended for init-time wiring.
func (r *Registry) MustRegister(kind string, actor domain.Actor) {
	if err := r.Register(kind, actor); err != nil {
		panic(err)
	}
}

// Seal freezes the registry. Further registrations fail with ErrSealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed.Store(true)
}

// Sealed reports whether the registry is read-only.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Lookup returns the behavior registered for kind.
// Returns a *domain.UnknownKindError if the kind is absent.
func (r *Registry) Lookup(kind string) (domain.Actor, error) {
	var (
		actor domain.Actor
		ok    bool
	)
	if r.sealed.Load() {
		actor, ok = r.kinds[kind]
	} else {
		r.mu.RLock()
		actor, ok = r.kinds[kind]
		r.mu.RUnlock()
	}

	if !ok {
		return nil, &domain.UnknownKindError{Kind: kind}
	}
	return actor, nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	kinds := make([]string, 0, len(r.kinds))
	for kind := range r.kinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
