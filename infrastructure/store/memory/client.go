// ABOUTME: In-memory store implementation using the patrickmn/go-cache library
// ABOUTME: Provides a process-local key-value store for development and tests

package memory

import (
	"context"
	"iter"
	"strings"

	"github.com/patrickmn/go-cache"

	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
)

// MemoryStore implements the Store interface using in-memory storage
type MemoryStore struct {
	items *cache.Cache
}

// NewMemoryStore creates a new in-memory store instance.
// Entries never expire on their own; expiration is the caller's concern.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: cache.New(cache.NoExpiration, 0),
	}
}

// Get retrieves a value from the store
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := s.items.Get(key)
	if !ok {
		return nil, coreerrors.ErrKeyNotFound
	}

	return clone(value.([]byte)), nil
}

// Set stores a value
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.items.Set(key, clone(value), cache.NoExpiration)
	return nil
}

// SetIfAbsent stores a value only when the key is free
func (s *MemoryStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// Add fails when the key already exists
	if err := s.items.Add(key, clone(value), cache.NoExpiration); err != nil {
		return false, nil
	}
	return true, nil
}

// Delete removes a key from the store
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.items.Delete(key)
	return nil
}

// Scan yields entries under prefix from a point-in-time copy of the store
func (s *MemoryStore) Scan(ctx context.Context, prefix string) iter.Seq2[interfaces.Entry, error] {
	return func(yield func(interfaces.Entry, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(interfaces.Entry{}, err)
			return
		}

		for key, item := range s.items.Items() {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			if !yield(interfaces.Entry{Key: key, Value: clone(item.Object.([]byte))}, nil) {
				return
			}
		}
	}
}

// Len returns the number of stored keys
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}

func clone(b []byte) []byte {
	result := make([]byte, len(b))
	copy(result, b)
	return result
}
