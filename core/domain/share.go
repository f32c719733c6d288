// ABOUTME: Share domain model for product collections redeemable by a short code
// ABOUTME: Provides code generation, expiration checks and the stored entry format

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	coreerrors "shoplist-api/core/errors"
)

const (
	// ShareKeyPrefix namespaces share entries inside the key-value store
	ShareKeyPrefix = "shared-products:"

	// DefaultShareCodeLength is the number of characters in a share code
	DefaultShareCodeLength = 6

	// DefaultShareTTL is how long a share stays redeemable
	DefaultShareTTL = 30 * 24 * time.Hour

	shareCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ShareCode is the short token a user types to redeem a share
type ShareCode string

// Key returns the store key for the code
func (c ShareCode) Key() string {
	return ShareKeyPrefix + string(c)
}

// String implements fmt.Stringer
func (c ShareCode) String() string {
	return string(c)
}

// NormalizeShareCode trims and upper-cases user input
func NormalizeShareCode(raw string) ShareCode {
	return ShareCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// ShareCodeFromKey extracts the code from a store key
func ShareCodeFromKey(key string) (ShareCode, bool) {
	if !strings.HasPrefix(key, ShareKeyPrefix) {
		return "", false
	}
	code := strings.TrimPrefix(key, ShareKeyPrefix)
	if code == "" {
		return "", false
	}
	return ShareCode(code), true
}

// GenerateShareCode draws a random uppercase alphanumeric code from r.
// Bytes that would bias the distribution are rejected.
func GenerateShareCode(r io.Reader, length int) (ShareCode, error) {
	if length <= 0 {
		length = DefaultShareCodeLength
	}

	const limit = 256 - 256%len(shareCodeAlphabet)

	code := make([]byte, 0, length)
	buf := make([]byte, length*2)
	for len(code) < length {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			code = append(code, shareCodeAlphabet[int(b)%len(shareCodeAlphabet)])
			if len(code) == length {
				break
			}
		}
	}

	return ShareCode(code), nil
}

// ShareEntry is the record stored under a share code.
// Produtos is kept verbatim; the registry never interprets product records.
type ShareEntry struct {
	Produtos  []json.RawMessage `json:"produtos"`
	CreatedAt time.Time         `json:"createdAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// NewShareEntry creates a share entry expiring ttl after now
func NewShareEntry(produtos []json.RawMessage, now time.Time, ttl time.Duration) (*ShareEntry, error) {
	if len(produtos) == 0 {
		return nil, &coreerrors.ValidationError{Field: "produtos", Message: "must contain at least one product"}
	}
	for i, p := range produtos {
		if len(p) == 0 {
			return nil, &coreerrors.ValidationError{Field: "produtos", Message: fmt.Sprintf("product %d is empty", i)}
		}
	}
	if ttl <= 0 {
		ttl = DefaultShareTTL
	}

	createdAt := now.UTC().Truncate(time.Millisecond)

	return &ShareEntry{
		Produtos:  produtos,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(ttl),
	}, nil
}

// IsExpired reports whether the entry is past its expiration at now
func (e *ShareEntry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Summary describes the entry without its payload
func (e *ShareEntry) Summary(code ShareCode) ShareSummary {
	return ShareSummary{
		Code:         code,
		ProductCount: len(e.Produtos),
		CreatedAt:    e.CreatedAt,
		ExpiresAt:    e.ExpiresAt,
	}
}

// Marshal serializes the entry in its stored text form
func (e *ShareEntry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// ParseShareEntry decodes a stored entry. Values that do not look like a
// share entry are rejected so callers can treat them as corrupt.
func ParseShareEntry(data []byte) (*ShareEntry, error) {
	var entry ShareEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("invalid share entry: %w", err)
	}
	if entry.Produtos == nil {
		return nil, errors.New("invalid share entry: missing produtos")
	}
	if entry.ExpiresAt.IsZero() {
		return nil, errors.New("invalid share entry: missing expiresAt")
	}
	return &entry, nil
}

// ShareSummary is the listing view of an active share
type ShareSummary struct {
	Code         ShareCode
	ProductCount int
	CreatedAt    time.Time
	ExpiresAt    time.Time
}
