// Package actors wires the built-in actor kinds into a registry.
package actors

import (
	"github.com/aretw0/troupe/pkg/actors/group"
	"github.com/aretw0/troupe/pkg/actors/misc"
	"github.com/aretw0/troupe/pkg/actors/serverarray"
	"github.com/aretw0/troupe/pkg/adapters/memory"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/ports"
	"github.com/aretw0/troupe/pkg/registry"
)

// Deps are the collaborators of the built-in leaf kinds.
type Deps struct {
	// Store backs server_array.*. Defaults to an empty in-memory store.
	Store ports.ArrayStore
	// Wait backs misc.Sleep. Defaults to misc.Wait.
	Wait misc.WaitFunc
}

// RegisterDefaults registers every built-in kind into r.
func RegisterDefaults(r *registry.Registry, deps Deps) error {
	if deps.Store == nil {
		deps.Store = memory.NewStore()
	}

	builtins := []struct {
		kind  string
		actor domain.Actor
	}{
		{group.SyncKind, group.Sync{}},
		{group.AsyncKind, group.Async{}},
		{misc.SleepKind, misc.NewSleep(deps.Wait)},
		{serverarray.CloneKind, serverarray.NewClone(deps.Store)},
	}
	for _, b := range builtins {
		if err := r.Register(b.kind, b.actor); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a sealed registry holding the built-in kinds.
func NewRegistry(deps Deps) (*registry.Registry, error) {
	r := registry.New()
	if err := RegisterDefaults(r, deps); err != nil {
		return nil, err
	}
	r.Seal()
	return r, nil
}
