// ABOUTME: Public types for the Shoplist library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package shoplist

import (
	"encoding/json"
	"time"

	"shoplist-api/core/domain"
	"shoplist-api/core/history"
)

// Share is a redeemable bundle of products.
// Produtos holds the product records exactly as they were shared.
type Share struct {
	Code      string            `json:"shareCode"`
	Produtos  []json.RawMessage `json:"produtos"`
	CreatedAt time.Time         `json:"createdAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// ShareSummary describes an active share without its products
type ShareSummary struct {
	Code         string    `json:"code"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Aliases for the shopping data types so callers need a single import
type (
	Snapshot        = domain.Snapshot
	Lista           = domain.Lista
	Produto         = domain.Produto
	ImportResult    = domain.ImportResult
	PurchaseHistory = history.PurchaseHistory
	PriceStats      = history.PriceStats
)

func toShare(code domain.ShareCode, entry *domain.ShareEntry) *Share {
	return &Share{
		Code:      code.String(),
		Produtos:  entry.Produtos,
		CreatedAt: entry.CreatedAt,
		ExpiresAt: entry.ExpiresAt,
	}
}

func toShareSummary(s domain.ShareSummary) ShareSummary {
	return ShareSummary{
		Code:         s.Code.String(),
		ProductCount: s.ProductCount,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
	}
}
