// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"iter"
)

// Entry is a key and its stored value, as produced by a prefix scan
type Entry struct {
	Key   string
	Value []byte
}

// Store defines the key-value persistence used by the core services.
// Implementations can be Redis, SQLite, in-memory, or any other durable mapping.
//
// Example usage:
//
//	store := someStore // implements Store interface
//
//	// Store a value
//	err := store.Set(ctx, "shared-products:ABC123", data)
//
//	// Retrieve a value
//	data, err := store.Get(ctx, "shared-products:ABC123")
//	if errors.IsKeyNotFound(err) {
//		// handle missing key
//	}
//
//	// Walk every key under a prefix
//	for entry, err := range store.Scan(ctx, "shared-products:") {
//		...
//	}
type Store interface {
	// Get retrieves a value by key.
	// Returns errors.ErrKeyNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value, replacing any existing one.
	Set(ctx context.Context, key string, value []byte) error

	// SetIfAbsent stores a value only if the key doesn't exist.
	// Reports whether the value was written.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes a key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// Scan yields every entry whose key starts with prefix, in no particular order.
	// A non-nil error ends the sequence.
	Scan(ctx context.Context, prefix string) iter.Seq2[Entry, error]
}
