package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/troupe/pkg/ports"
)

// Store implements ports.ArrayStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*ports.ServerArray
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with arrays.
func NewStore(seed ...*ports.ServerArray) *Store {
	s := &Store{
		data: make(map[string]*ports.ServerArray),
	}
	for _, a := range seed {
		s.data[a.Name] = a.Clone(a.Name)
		s.data[a.Name].ClonedFrom = a.ClonedFrom
	}
	return s
}

// Get returns a copy of the stored array so callers can't mutate the store.
func (s *Store) Get(ctx context.Context, name string) (*ports.ServerArray, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[name]
	if !ok {
		return nil, ports.ErrArrayNotFound
	}
	out := a.Clone(a.Name)
	out.ClonedFrom = a.ClonedFrom
	return out, nil
}

// Create stores a copy of the array.
func (s *Store) Create(ctx context.Context, array *ports.ServerArray) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[array.Name]; exists {
		return ports.ErrArrayExists
	}
	stored := array.Clone(array.Name)
	stored.ClonedFrom = array.ClonedFrom
	s.data[array.Name] = stored
	return nil
}

// Delete removes the array.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored array names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
