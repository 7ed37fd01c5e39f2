package ports

import (
	"context"
	"errors"
)

var (
	// ErrArrayNotFound is returned when a server array does not exist.
	ErrArrayNotFound = errors.New("server array not found")
	// ErrArrayExists is returned when creating an array whose name is taken.
	ErrArrayExists = errors.New("server array already exists")
)

// ServerArray is a named group of identically configured servers.
type ServerArray struct {
	Name       string            `json:"name"`
	Instances  int               `json:"instances"`
	Template   string            `json:"template,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
	ClonedFrom string            `json:"cloned_from,omitempty"`
}

// Clone returns a deep copy of a renamed to name.
func (a *ServerArray) Clone(name string) *ServerArray {
	out := *a
	out.Name = name
	out.ClonedFrom = a.Name
	if a.Tags != nil {
		out.Tags = make(map[string]string, len(a.Tags))
		for k, v := range a.Tags {
			out.Tags[k] = v
		}
	}
	return &out
}

// ArrayStore defines how server arrays are persisted.
type ArrayStore interface {
	// Get returns the array with the given name.
	// Returns ErrArrayNotFound if it does not exist.
	Get(ctx context.Context, name string) (*ServerArray, error)
	// Create stores a new array. Returns ErrArrayExists if the name is taken.
	Create(ctx context.Context, array *ServerArray) error
	// Delete removes an array. Deleting a missing array is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all arrays.
	List(ctx context.Context) ([]string, error)
}
