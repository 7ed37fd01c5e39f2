package compiler

import (
	"fmt"
	"sort"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/schema"
)

// KindLookup resolves actor kinds. *registry.Registry satisfies it.
type KindLookup interface {
	Lookup(kind string) (domain.Actor, error)
}

// Builder turns definitions into executable Node trees.
type Builder struct {
	kinds KindLookup
}

// NewBuilder creates a builder resolving kinds through the given lookup.
func NewBuilder(kinds KindLookup) *Builder {
	return &Builder{kinds: kinds}
}

// pending is a definition waiting to be compiled into the slot its parent reserved.
type pending struct {
	raw  any
	path string
	slot **domain.Node
}

// Build compiles def and all nested definitions into a Node tree.
// It does not stop at the first problem: every unknown kind, malformed record
// and option error in the whole tree is returned in a *BuildError.
// Traversal uses an explicit stack, so nesting depth is bounded only by input.
func (b *Builder) Build(def *domain.Definition) (*domain.Node, error) {
	return b.BuildRaw(def)
}

// BuildRaw is like Build but accepts an undecoded record (e.g. map[string]any).
func (b *Builder) BuildRaw(raw any) (*domain.Node, error) {
	var (
		root  *domain.Node
		errs  []error
		stack = []pending{{raw: raw, path: "", slot: &root}}
	)

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		def, derrs := decodeDefinition(task.raw, task.path)
		if len(derrs) > 0 {
			errs = append(errs, derrs...)
			continue
		}

		actor, err := b.kinds.Lookup(def.Actor)
		if err != nil {
			// Without a schema the subtree cannot be interpreted.
			errs = append(errs, &domain.UnknownKindError{Path: task.path, Kind: def.Actor})
			continue
		}

		options := actor.Schema()
		values, verrs := schema.Validate(task.path, options, def.Options)
		errs = append(errs, verrs...)

		node := &domain.Node{
			Kind:        def.Actor,
			Description: def.Description,
			Path:        task.path,
			Actor:       actor,
		}
		if node.Description == "" {
			node.Description = def.Actor
		}

		// Nested actor lists become children, in declaration order.
		var nested []pending
		for _, name := range actorOptions(options) {
			list, ok := values[name].([]any)
			delete(values, name)
			if !ok {
				continue
			}
			for i, item := range list {
				nested = append(nested, pending{
					raw:  item,
					path: schema.JoinPath(task.path, fmt.Sprintf("%s[%d]", name, i)),
				})
			}
		}
		node.Options = values
		node.Children = make([]*domain.Node, len(nested))
		for i := len(nested) - 1; i >= 0; i-- {
			nested[i].slot = &node.Children[i]
			stack = append(stack, nested[i])
		}

		*task.slot = node
	}

	if len(errs) > 0 {
		return nil, &BuildError{Errors: errs}
	}
	return root, nil
}

// Validate reports whether def builds, returning the aggregated errors if not.
func (b *Builder) Validate(def *domain.Definition) error {
	_, err := b.Build(def)
	return err
}

func actorOptions(options schema.Options) []string {
	var names []string
	for name, opt := range options {
		if schema.IsActors(opt.Type) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
