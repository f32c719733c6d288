// ABOUTME: Redis store implementation using go-redis client
// ABOUTME: Provides a shared key-value store with atomic create-if-absent and cursor scans

package redis

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
	"shoplist-api/pkg/config"
)

// scanBatchSize is the COUNT hint passed to SCAN
const scanBatchSize = 100

// RedisStore implements the Store interface using Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store instance
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisStore{
		client: client,
	}, nil
}

// Get retrieves a value from Redis
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, coreerrors.ErrKeyNotFound
		}
		return nil, err
	}

	return val, nil
}

// Set stores a value in Redis without expiration
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// SetIfAbsent stores a value with SET NX
func (s *RedisStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	return s.client.SetNX(ctx, key, value, 0).Result()
}

// Delete removes a key from Redis
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	// DEL on a missing key returns 0, which is not an error here
	return s.client.Del(ctx, key).Err()
}

// Scan walks keys under prefix with SCAN and fetches each value.
// Keys removed between SCAN and GET are skipped.
func (s *RedisStore) Scan(ctx context.Context, prefix string) iter.Seq2[interfaces.Entry, error] {
	return func(yield func(interfaces.Entry, error) bool) {
		it := s.client.Scan(ctx, 0, matchPattern(prefix), scanBatchSize).Iterator()
		for it.Next(ctx) {
			key := it.Val()
			if !strings.HasPrefix(key, prefix) {
				continue
			}

			value, err := s.Get(ctx, key)
			if coreerrors.IsKeyNotFound(err) {
				continue
			}
			if err != nil {
				yield(interfaces.Entry{}, err)
				return
			}

			if !yield(interfaces.Entry{Key: key, Value: value}, nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(interfaces.Entry{}, err)
		}
	}
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// matchPattern turns a literal prefix into a SCAN MATCH pattern.
// Glob metacharacters become single-character wildcards; Scan re-checks the
// literal prefix on every key.
func matchPattern(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('*')
	return b.String()
}
