// ABOUTME: Response DTOs for share-code endpoints
// ABOUTME: Field names follow the JSON contract used by existing clients

package responses

import (
	"time"

	"shoplist-api/api/dto/requests"
)

// ShareCreatedResponse is returned after a share is stored
type ShareCreatedResponse struct {
	ShareCode string    `json:"shareCode" doc:"Code to hand to the recipient"`
	ExpiresAt time.Time `json:"expiresAt" doc:"Moment after which the code stops resolving"`
}

// SharedProductsResponse carries the products behind a code
type SharedProductsResponse struct {
	Produtos  []requests.ProductRecord `json:"produtos"`
	CreatedAt time.Time                `json:"createdAt"`
	ExpiresAt time.Time                `json:"expiresAt"`
}

// ShareSummaryResponse describes one active share without its products
type ShareSummaryResponse struct {
	Code         string    `json:"code"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// ShareListResponse lists active shares, newest first
type ShareListResponse struct {
	Shares []ShareSummaryResponse `json:"shares"`
}
