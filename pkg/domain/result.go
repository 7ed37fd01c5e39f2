package domain

import (
	"encoding/json"
	"time"
)

// Status is the final state of a node after a run.
// During a run nodes move pending -> running -> one of these.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped" // Not attempted because an earlier sibling failed

	// StatusRunning only appears on OnActorStart events.
	StatusRunning Status = "running"
)

// Result is the outcome of one node. Children mirror the node's children in
// declaration order, including the ones that were skipped.
type Result struct {
	Path        string        `json:"path"`
	Kind        string        `json:"kind"`
	Description string        `json:"description"`
	Status      Status        `json:"status"`
	Error       error         `json:"-"`
	Output      any           `json:"output,omitempty"`
	Dry         bool          `json:"dry"`
	StartedAt   time.Time     `json:"started_at,omitzero"`
	Duration    time.Duration `json:"duration"`
	Children    []*Result     `json:"children"`
}

// Succeeded reports whether the node finished successfully.
func (r *Result) Succeeded() bool {
	return r != nil && r.Status == StatusSucceeded
}

// ErrorMessage returns the error text, or "" when the node did not fail.
func (r *Result) ErrorMessage() string {
	if r == nil || r.Error == nil {
		return ""
	}
	return r.Error.Error()
}

// MarshalJSON renders the error as its message so reports stay readable.
func (r *Result) MarshalJSON() ([]byte, error) {
	type alias Result
	children := r.Children
	if children == nil {
		children = []*Result{}
	}
	return json.Marshal(&struct {
		*alias
		Error    string    `json:"error,omitempty"`
		Children []*Result `json:"children"`
	}{
		alias:    (*alias)(r),
		Error:    r.ErrorMessage(),
		Children: children,
	})
}

// Count tallies the statuses of r and all its descendants.
func (r *Result) Count() map[Status]int {
	counts := make(map[Status]int)
	stack := []*Result{r}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		counts[cur.Status]++
		stack = append(stack, cur.Children...)
	}
	return counts
}

// Skip builds the result of a node that was never attempted.
// Descendants are marked skipped too, so the result keeps the tree's shape.
func Skip(node *Node, dry bool) *Result {
	res := &Result{
		Path:        node.Path,
		Kind:        node.Kind,
		Description: node.Description,
		Status:      StatusSkipped,
		Dry:         dry,
		Children:    make([]*Result, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		res.Children = append(res.Children, Skip(child, dry))
	}
	return res
}

// Run is the envelope of one execution of a tree.
type Run struct {
	ID        string        `json:"id"`
	Dry       bool          `json:"dry"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Root      *Result       `json:"result"`
}

// Succeeded reports whether the root actor succeeded.
func (r *Run) Succeeded() bool {
	return r != nil && r.Root.Succeeded()
}

// Err returns the root failure, if any.
func (r *Run) Err() error {
	if r == nil || r.Root == nil {
		return nil
	}
	return r.Root.Error
}
