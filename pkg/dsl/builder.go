package dsl

import (
	"time"

	"github.com/aretw0/troupe/pkg/actors/group"
	"github.com/aretw0/troupe/pkg/actors/misc"
	"github.com/aretw0/troupe/pkg/actors/serverarray"
	"github.com/aretw0/troupe/pkg/domain"
)

// ActorBuilder configures a single actor definition.
type ActorBuilder struct {
	def  domain.Definition
	acts []*ActorBuilder
}

// Actor starts a definition of the given kind.
func Actor(kind string) *ActorBuilder {
	return &ActorBuilder{
		def: domain.Definition{Actor: kind},
	}
}

// Desc sets the human-readable description.
func (a *ActorBuilder) Desc(description string) *ActorBuilder {
	a.def.Description = description
	return a
}

// Option sets a raw option value.
func (a *ActorBuilder) Option(name string, value any) *ActorBuilder {
	if a.def.Options == nil {
		a.def.Options = make(map[string]any)
	}
	a.def.Options[name] = value
	return a
}

// Acts appends nested actors to the "acts" option of a composite.
func (a *ActorBuilder) Acts(children ...*ActorBuilder) *ActorBuilder {
	if a.acts == nil {
		a.acts = make([]*ActorBuilder, 0, len(children))
	}
	a.acts = append(a.acts, children...)
	return a
}

// Build returns the definition tree rooted at this actor.
// The builder can be reused; every call returns a fresh tree.
func (a *ActorBuilder) Build() *domain.Definition {
	def := &domain.Definition{
		Description: a.def.Description,
		Actor:       a.def.Actor,
	}
	if len(a.def.Options) > 0 || a.acts != nil {
		def.Options = make(map[string]any, len(a.def.Options)+1)
		for k, v := range a.def.Options {
			def.Options[k] = v
		}
	}
	if a.acts != nil {
		acts := make([]any, len(a.acts))
		for i, child := range a.acts {
			acts[i] = child.Build()
		}
		def.Options["acts"] = acts
	}
	return def
}

// Sync runs children in order, stopping at the first failure.
func Sync(children ...*ActorBuilder) *ActorBuilder {
	return Actor(group.SyncKind).Acts(children...)
}

// Async runs children concurrently.
func Async(children ...*ActorBuilder) *ActorBuilder {
	return Actor(group.AsyncKind).Acts(children...)
}

// Sleep waits for d.
func Sleep(d time.Duration) *ActorBuilder {
	return Actor(misc.SleepKind).Option("sleep", d.String())
}

// Clone copies a server array.
func Clone(source, dest string) *ActorBuilder {
	return Actor(serverarray.CloneKind).Option("source", source).Option("dest", dest)
}
