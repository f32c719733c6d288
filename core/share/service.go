// ABOUTME: Share service issues and redeems short codes for shared product collections
// ABOUTME: Owns the lifecycle of entries under the shared-products: prefix in the store

package share

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"time"

	"shoplist-api/core/domain"
	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
)

// DefaultMaxAttempts bounds how many codes CreateShare draws before giving up
const DefaultMaxAttempts = 5

// Option configures a ShareService
type Option func(*ShareService)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *ShareService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRandom replaces the source used to draw share codes
func WithRandom(r io.Reader) Option {
	return func(s *ShareService) {
		if r != nil {
			s.random = r
		}
	}
}

// WithTTL sets how long new shares stay redeemable
func WithTTL(ttl time.Duration) Option {
	return func(s *ShareService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithCodeLength sets the number of characters in new codes
func WithCodeLength(length int) Option {
	return func(s *ShareService) {
		if length > 0 {
			s.codeLength = length
		}
	}
}

// WithMaxAttempts sets how many codes are tried before reporting a conflict
func WithMaxAttempts(n int) Option {
	return func(s *ShareService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// ShareService handles share operations
type ShareService struct {
	store       interfaces.Store
	logger      interfaces.Logger
	now         func() time.Time
	random      io.Reader
	ttl         time.Duration
	codeLength  int
	maxAttempts int
}

// NewShareService creates a new share service instance
func NewShareService(deps interfaces.Dependencies, opts ...Option) *ShareService {
	s := &ShareService{
		store:       deps.Store,
		logger:      deps.Logger,
		now:         time.Now,
		random:      rand.Reader,
		ttl:         domain.DefaultShareTTL,
		codeLength:  domain.DefaultShareCodeLength,
		maxAttempts: DefaultMaxAttempts,
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateShare stores produtos under a freshly drawn code.
// Codes are written with create-if-absent so an existing share is never overwritten.
func (s *ShareService) CreateShare(ctx context.Context, produtos []json.RawMessage) (domain.ShareCode, *domain.ShareEntry, error) {
	entry, err := domain.NewShareEntry(produtos, s.now(), s.ttl)
	if err != nil {
		return "", nil, err
	}

	data, err := entry.Marshal()
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode share entry: %w", err)
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		code, err := domain.GenerateShareCode(s.random, s.codeLength)
		if err != nil {
			return "", nil, err
		}

		stored, err := s.store.SetIfAbsent(ctx, code.Key(), data)
		if err != nil {
			return "", nil, fmt.Errorf("failed to store share: %w", err)
		}
		if stored {
			s.logger.Info("Share created", map[string]interface{}{
				"code":          code.String(),
				"product_count": len(entry.Produtos),
				"expires_at":    entry.ExpiresAt,
			})
			return code, entry, nil
		}

		s.logger.Warn("Share code collision", map[string]interface{}{
			"code":    code.String(),
			"attempt": attempt,
		})
	}

	return "", nil, &coreerrors.ConflictError{Resource: "share code", Attempts: s.maxAttempts}
}

// ResolveShare returns the entry for code. Entries past their expiration are
// deleted and reported as not found; active entries stay redeemable.
func (s *ShareService) ResolveShare(ctx context.Context, raw string) (*domain.ShareEntry, error) {
	code := domain.NormalizeShareCode(raw)
	if code == "" {
		return nil, &coreerrors.ValidationError{Field: "code", Message: "share code is required"}
	}

	data, err := s.store.Get(ctx, code.Key())
	if coreerrors.IsKeyNotFound(err) {
		return nil, &coreerrors.NotFoundError{Resource: "share", ID: code.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load share: %w", err)
	}

	entry, err := domain.ParseShareEntry(data)
	if err != nil {
		return nil, fmt.Errorf("share %s is unreadable: %w", code, err)
	}

	if entry.IsExpired(s.now()) {
		s.evict(ctx, code)
		return nil, &coreerrors.NotFoundError{Resource: "share", ID: code.String(), Expired: true}
	}

	return entry, nil
}

// ListActiveShares yields a summary of every unexpired share. Expired entries
// are deleted on the way; unreadable entries are skipped. Order follows the store.
func (s *ShareService) ListActiveShares(ctx context.Context) iter.Seq2[domain.ShareSummary, error] {
	return s.walk(ctx, nil)
}

// Sweep deletes every expired share and reports how many were removed
func (s *ShareService) Sweep(ctx context.Context) (int, error) {
	evicted := 0
	for _, err := range s.walk(ctx, func() { evicted++ }) {
		if err != nil {
			return evicted, err
		}
		if err := ctx.Err(); err != nil {
			return evicted, err
		}
	}

	if evicted > 0 {
		s.logger.Info("Swept expired shares", map[string]interface{}{
			"evicted": evicted,
		})
	}

	return evicted, nil
}

// walk scans the share prefix, evicting expired entries and calling onEvict
// after each successful eviction
func (s *ShareService) walk(ctx context.Context, onEvict func()) iter.Seq2[domain.ShareSummary, error] {
	return func(yield func(domain.ShareSummary, error) bool) {
		now := s.now()

		for item, err := range s.store.Scan(ctx, domain.ShareKeyPrefix) {
			if err != nil {
				yield(domain.ShareSummary{}, fmt.Errorf("failed to scan shares: %w", err))
				return
			}

			code, ok := domain.ShareCodeFromKey(item.Key)
			if !ok {
				continue
			}

			entry, err := domain.ParseShareEntry(item.Value)
			if err != nil {
				s.logger.Debug("Skipping unreadable share entry", map[string]interface{}{
					"code":  code.String(),
					"error": err.Error(),
				})
				continue
			}

			if entry.IsExpired(now) {
				if s.evict(ctx, code) && onEvict != nil {
					onEvict()
				}
				continue
			}

			if !yield(entry.Summary(code), nil) {
				return
			}
		}
	}
}

// evict deletes an expired entry. Concurrent evictions of the same code are
// harmless because Delete is idempotent.
func (s *ShareService) evict(ctx context.Context, code domain.ShareCode) bool {
	if err := s.store.Delete(ctx, code.Key()); err != nil {
		s.logger.Warn("Failed to delete expired share", map[string]interface{}{
			"code":  code.String(),
			"error": err.Error(),
		})
		return false
	}

	s.logger.Debug("Deleted expired share", map[string]interface{}{
		"code": code.String(),
	})
	return true
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
