package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunArrayStoreContract runs a suite of tests to verify that an ArrayStore
// implementation adheres to the defined interface contract.
func RunArrayStoreContract(t *testing.T, store ArrayStore) {
	ctx := context.Background()
	name := "contract-array-" + time.Now().Format("20060102150405.000000")

	t.Run("Create and Get", func(t *testing.T) {
		array := &ServerArray{
			Name:      name,
			Instances: 3,
			Template:  "base-image",
			Tags:      map[string]string{"env": "staging"},
		}
		require.NoError(t, store.Create(ctx, array))

		loaded, err := store.Get(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 3, loaded.Instances)
		assert.Equal(t, "base-image", loaded.Template)
		assert.Equal(t, "staging", loaded.Tags["env"])
	})

	t.Run("Create Duplicate", func(t *testing.T) {
		err := store.Create(ctx, &ServerArray{Name: name})
		assert.ErrorIs(t, err, ErrArrayExists)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, ErrArrayNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := name + "-2"
		require.NoError(t, store.Create(ctx, &ServerArray{Name: other}))
		defer func() {
			_ = store.Delete(ctx, other)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)
		assert.Contains(t, names, other)
	})

	t.Run("Names Like Internal Keys", func(t *testing.T) {
		for _, tricky := range []string{"index", "arrays", "_index"} {
			require.NoError(t, store.Create(ctx, &ServerArray{Name: tricky, Instances: 1}), tricky)
		}
		defer func() {
			for _, tricky := range []string{"index", "arrays", "_index"} {
				_ = store.Delete(ctx, tricky)
			}
		}()

		loaded, err := store.Get(ctx, "index")
		require.NoError(t, err)
		assert.Equal(t, "index", loaded.Name)

		require.NoError(t, store.Create(ctx, &ServerArray{Name: name + "-3"}))
		defer func() {
			_ = store.Delete(ctx, name+"-3")
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Subset(t, names, []string{"index", "arrays", "_index", name, name + "-3"})
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, name))

		_, err := store.Get(ctx, name)
		assert.ErrorIs(t, err, ErrArrayNotFound, "Get after Delete should return ErrArrayNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete should be idempotent")
	})
}
