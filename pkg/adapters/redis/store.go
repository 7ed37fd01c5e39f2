package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/troupe/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ArrayStore using Redis.
// Arrays are JSON strings under <prefix>array:<name>; the set <prefix>arrays
// indexes their names. The two never collide, whatever the array name.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// createScript writes the index entry before the value so a failing call
// leaves nothing behind. Returns 0 when the array exists.
var createScript = backend.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("SADD", KEYS[2], ARGV[2])
redis.call("SET", KEYS[1], ARGV[1])
return 1
`)

// WithPrefix sets the namespace of every key the store writes.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "troupe:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + "array:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "arrays"
}

// Get retrieves an array from Redis.
func (s *Store) Get(ctx context.Context, name string) (*ports.ServerArray, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ports.ErrArrayNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var array ports.ServerArray
	if err := json.Unmarshal([]byte(val), &array); err != nil {
		return nil, fmt.Errorf("failed to unmarshal array: %w", err)
	}
	return &array, nil
}

// Create persists a new array and indexes it in one atomic script.
func (s *Store) Create(ctx context.Context, array *ports.ServerArray) error {
	data, err := json.Marshal(array)
	if err != nil {
		return fmt.Errorf("failed to marshal array: %w", err)
	}

	created, err := createScript.Run(ctx, s.client,
		[]string{s.key(array.Name), s.indexKey()}, data, array.Name).Int()
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	if created == 0 {
		return ports.ErrArrayExists
	}
	return nil
}

// Delete removes the array and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(name))
		pipe.SRem(ctx, s.indexKey(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns the indexed array names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list arrays: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
