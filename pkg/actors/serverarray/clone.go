// Package serverarray provides actors that manage server arrays through a
// ports.ArrayStore.
package serverarray

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/troupe/pkg/ports"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/schema"
)

// CloneKind is the registry kind of Clone.
const CloneKind = "server_array.Clone"

// CloneOutput is returned by Clone.
type CloneOutput struct {
	Source    string `json:"source" yaml:"source"`
	Dest      string `json:"dest" yaml:"dest"`
	Instances int    `json:"instances" yaml:"instances"`
	Simulated bool   `json:"simulated" yaml:"simulated"`
}

// Clone copies an existing array under a new name.
// In dry mode the store is read to check the clone would succeed, but never written.
type Clone struct {
	store ports.ArrayStore
}

// NewClone creates a Clone actor backed by store.
func NewClone(store ports.ArrayStore) *Clone {
	return &Clone{store: store}
}

func (c *Clone) Schema() schema.Options {
	return schema.Options{
		"source": schema.Required(schema.String(), "Name of the array to clone"),
		"dest":   schema.Required(schema.String(), "Name of the new array"),
	}
}

func (c *Clone) Doc() string {
	return "Clones the server array `source` into a new array named `dest`.\n\n" +
		"Fails if `source` does not exist or `dest` is already taken. " +
		"In dry mode both checks run but nothing is created."
}

func (c *Clone) Execute(ctx context.Context, opts schema.Values, dry bool) (any, error) {
	source, dest := opts.String("source"), opts.String("dest")
	if source == dest {
		return nil, fmt.Errorf("source and dest are both %q", source)
	}
	logger := domain.LoggerFromContext(ctx)

	src, err := c.store.Get(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("source array %q: %w", source, err)
	}

	_, err = c.store.Get(ctx, dest)
	switch {
	case err == nil:
		return nil, fmt.Errorf("dest array %q: %w", dest, ports.ErrArrayExists)
	case !errors.Is(err, ports.ErrArrayNotFound):
		return nil, fmt.Errorf("dest array %q: %w", dest, err)
	}

	out := &CloneOutput{Source: source, Dest: dest, Instances: src.Instances}
	if dry {
		logger.Info("Would have cloned array", "source", source, "dest", dest, "instances", src.Instances)
		out.Simulated = true
		return out, nil
	}

	if err := c.store.Create(ctx, src.Clone(dest)); err != nil {
		return nil, fmt.Errorf("create array %q: %w", dest, err)
	}
	logger.Info("Cloned array", "source", source, "dest", dest, "instances", src.Instances)
	return out, nil
}
