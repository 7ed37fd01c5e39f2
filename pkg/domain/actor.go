package domain

import (
	"context"

	"github.com/aretw0/troupe/pkg/schema"
)

// Actor is the capability every registered kind provides.
// Concrete behavior is one of the two variants below: Leaf or Composite.
type Actor interface {
	// Schema declares the options the kind accepts.
	Schema() schema.Options
}

// Leaf is an actor that performs an effect itself.
// When dry is true it must not perform any external side effect and should
// instead report what it would have done.
type Leaf interface {
	Actor
	Execute(ctx context.Context, opts schema.Values, dry bool) (any, error)
}

// RunFunc executes a child node through the engine.
type RunFunc func(ctx context.Context, node *Node, dry bool) *Result

// Composite is an actor whose execution orchestrates its children.
// Compose must run children only through run, passing dry unchanged, and
// return one result per child in declaration order (children it never ran
// may be left out or returned as Skip results). A non-nil error fails the
// composite and must be a child's error; composites never invent failures.
type Composite interface {
	Actor
	Compose(ctx context.Context, opts schema.Values, children []*Node, dry bool, run RunFunc) ([]*Result, error)
}

// Documented is implemented by kinds that ship long-form documentation (markdown).
type Documented interface {
	Doc() string
}
