package domain

import (
	"errors"
	"fmt"

	"github.com/aretw0/troupe/pkg/schema"
)

// ErrCancelled is returned for nodes whose turn came after the run was cancelled.
var ErrCancelled = errors.New("run cancelled")

// UnknownKindError is returned when a definition names an unregistered kind.
type UnknownKindError struct {
	Path string
	Kind string
}

// Location returns the path of the offending "actor" field.
func (e *UnknownKindError) Location() string {
	return schema.JoinPath(e.Path, "actor")
}

func (e *UnknownKindError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unknown actor kind %q", e.Kind)
	}
	return fmt.Sprintf("%s: unknown actor kind %q", e.Path, e.Kind)
}

// DuplicateKindError is returned when a kind is registered twice.
type DuplicateKindError struct {
	Kind string
}

func (e *DuplicateKindError) Error() string {
	return fmt.Sprintf("actor kind %q already registered", e.Kind)
}

// ActorExecutionError wraps the failure of a leaf actor's effect.
type ActorExecutionError struct {
	Kind        string
	Description string
	Path        string
	Cause       error
}

func (e *ActorExecutionError) Error() string {
	where := e.Path
	if where == "" {
		where = "root"
	}
	return fmt.Sprintf("%s (%s %q): %v", where, e.Kind, e.Description, e.Cause)
}

func (e *ActorExecutionError) Unwrap() error {
	return e.Cause
}
