package domain

import "github.com/aretw0/troupe/pkg/schema"

// Node is the executable form of one configured actor.
// Nodes form a tree: children are owned by exactly one parent and never
// reference back. A Node is immutable once built and may be shared read-only
// between runs.
type Node struct {
	// Kind is the registry identifier, e.g. "group.Sync".
	Kind string
	// Description is the human-facing label; defaults to Kind.
	Description string
	// Path locates the node in its source definition, e.g. "acts[1]".
	// The root node has an empty path.
	Path string
	// Options holds the validated and normalized options.
	Options schema.Values
	// Children are the nested actors, in declaration order.
	Children []*Node
	// Actor is the behavior resolved from the registry at build time.
	Actor Actor
}

// Label returns the path of the node, or "root" for the tree root.
func (n *Node) Label() string {
	if n.Path == "" {
		return "root"
	}
	return n.Path
}

// Walk visits n and its descendants depth-first in declaration order.
// Returning false from fn prunes the subtree below the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(node) {
			continue
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}
