// ABOUTME: Behavioural test suite shared by every Store implementation
// ABOUTME: Each backend runs it against a fresh instance to prove the same contract

package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
)

// Factory returns an empty store for a single subtest
type Factory func(t *testing.T) interfaces.Store

// Run exercises the Store contract against stores built by newStore
func Run(t *testing.T, newStore Factory) {
	t.Run("GetMissingKey", func(t *testing.T) {
		store := newStore(t)
		got, err := store.Get(context.Background(), "missing")
		assert.Nil(t, got)
		assert.True(t, coreerrors.IsKeyNotFound(err), "want ErrKeyNotFound, got %v", err)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "k", []byte("v1")))
		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(got))

		require.NoError(t, store.Set(ctx, "k", []byte("v2")))
		got, err = store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(got))
	})

	t.Run("SetIfAbsent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		ok, err := store.SetIfAbsent(ctx, "k", []byte("first"))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.SetIfAbsent(ctx, "k", []byte("second"))
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "first", string(got))
	})

	t.Run("SetIfAbsentConcurrent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok, err := store.SetIfAbsent(ctx, "contended", []byte(fmt.Sprint(i)))
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "k", []byte("v")))
		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "never-set"))

		_, err := store.Get(ctx, "k")
		assert.True(t, coreerrors.IsKeyNotFound(err))
	})

	t.Run("ScanPrefix", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "shared-products:AAA111", []byte("a")))
		require.NoError(t, store.Set(ctx, "shared-products:BBB222", []byte("b")))
		require.NoError(t, store.Set(ctx, "shopping-data:user", []byte("c")))
		require.NoError(t, store.Set(ctx, "shared-products", []byte("d")))

		keys := collectKeys(t, store, "shared-products:")
		assert.Equal(t, []string{"shared-products:AAA111", "shared-products:BBB222"}, keys)

		// The sequence can be ranged over again
		assert.Equal(t, keys, collectKeys(t, store, "shared-products:"))
	})

	t.Run("ScanPrefixWithGlobCharacters", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "a*b:1", []byte("x")))
		require.NoError(t, store.Set(ctx, "a_b:1", []byte("y")))
		require.NoError(t, store.Set(ctx, "axb:1", []byte("z")))

		assert.Equal(t, []string{"a*b:1"}, collectKeys(t, store, "a*b:"))
		assert.Equal(t, []string{"a_b:1"}, collectKeys(t, store, "a_b:"))
	})

	t.Run("ScanEmpty", func(t *testing.T) {
		store := newStore(t)
		assert.Empty(t, collectKeys(t, store, "shared-products:"))
	})

	t.Run("ScanStopsEarly", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		for i := 0; i < 5; i++ {
			require.NoError(t, store.Set(ctx, fmt.Sprintf("p:%d", i), []byte("v")))
		}

		seen := 0
		for _, err := range store.Scan(ctx, "p:") {
			require.NoError(t, err)
			seen++
			if seen == 2 {
				break
			}
		}
		assert.Equal(t, 2, seen)
	})

	t.Run("DeleteDuringScan", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		for i := 0; i < 4; i++ {
			require.NoError(t, store.Set(ctx, fmt.Sprintf("p:%d", i), []byte("v")))
		}

		for entry, err := range store.Scan(ctx, "p:") {
			require.NoError(t, err)
			require.NoError(t, store.Delete(ctx, entry.Key))
		}
		assert.Empty(t, collectKeys(t, store, "p:"))
	})

	t.Run("CancelledContext", func(t *testing.T) {
		store := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.Get(ctx, "k")
		assert.Error(t, err)
		assert.Error(t, store.Set(ctx, "k", []byte("v")))
	})
}

func collectKeys(t *testing.T, store interfaces.Store, prefix string) []string {
	t.Helper()
	keys := []string{}
	for entry, err := range store.Scan(context.Background(), prefix) {
		require.NoError(t, err)
		keys = append(keys, entry.Key)
	}
	sort.Strings(keys)
	return keys
}
