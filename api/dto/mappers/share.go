// ABOUTME: Mappers for converting between share domain models and API DTOs
// ABOUTME: Keeps product records as raw JSON in both directions

package mappers

import (
	"encoding/json"
	"sort"

	"shoplist-api/api/dto/requests"
	"shoplist-api/api/dto/responses"
	"shoplist-api/core/domain"
)

// ToRawProducts converts request records to the registry's payload type
func ToRawProducts(records []requests.ProductRecord) []json.RawMessage {
	produtos := make([]json.RawMessage, len(records))
	for i, r := range records {
		produtos[i] = json.RawMessage(r)
	}
	return produtos
}

// ToShareCreatedResponse converts a stored share to its creation response
func ToShareCreatedResponse(code domain.ShareCode, entry *domain.ShareEntry) *responses.ShareCreatedResponse {
	if entry == nil {
		return nil
	}
	return &responses.ShareCreatedResponse{
		ShareCode: code.String(),
		ExpiresAt: entry.ExpiresAt,
	}
}

// ToSharedProductsResponse converts a resolved entry to a response DTO
func ToSharedProductsResponse(entry *domain.ShareEntry) *responses.SharedProductsResponse {
	if entry == nil {
		return nil
	}

	produtos := make([]requests.ProductRecord, len(entry.Produtos))
	for i, p := range entry.Produtos {
		produtos[i] = requests.ProductRecord(p)
	}

	return &responses.SharedProductsResponse{
		Produtos:  produtos,
		CreatedAt: entry.CreatedAt,
		ExpiresAt: entry.ExpiresAt,
	}
}

// ToShareListResponse converts summaries to a response sorted newest first
func ToShareListResponse(summaries []domain.ShareSummary) *responses.ShareListResponse {
	shares := make([]responses.ShareSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		shares = append(shares, responses.ShareSummaryResponse{
			Code:         s.Code.String(),
			ProductCount: s.ProductCount,
			CreatedAt:    s.CreatedAt,
			ExpiresAt:    s.ExpiresAt,
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].CreatedAt.After(shares[j].CreatedAt)
	})

	return &responses.ShareListResponse{Shares: shares}
}

// ToImportResponse converts an import outcome to a response DTO
func ToImportResponse(result *domain.ImportResult) *responses.ImportResponse {
	resp := &responses.ImportResponse{
		Imported: []domain.Produto{},
		Skipped:  []string{},
	}
	if result == nil {
		return resp
	}
	if result.Imported != nil {
		resp.Imported = result.Imported
	}
	if result.Skipped != nil {
		resp.Skipped = result.Skipped
	}
	return resp
}
