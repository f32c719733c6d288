// ABOUTME: Response DTOs for the authenticated /me endpoints

package responses

import "shoplist-api/core/domain"

// ImportResponse reports which shared products were added
type ImportResponse struct {
	Imported []domain.Produto `json:"imported"`
	Skipped  []string         `json:"skipped"`
}
