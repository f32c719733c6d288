package mappers

import (
	"encoding/json"
	"testing"
	"time"

	"shoplist-api/api/dto/requests"
	"shoplist-api/core/domain"
)

func TestToRawProducts(t *testing.T) {
	records := []requests.ProductRecord{
		requests.ProductRecord(`{"id":"p1", "nome":"Banana"}`),
		requests.ProductRecord(`{"id":"p2"}`),
	}

	produtos := ToRawProducts(records)

	if len(produtos) != 2 {
		t.Fatalf("len = %d, want 2", len(produtos))
	}
	// Records are passed through without re-encoding
	if string(produtos[0]) != `{"id":"p1", "nome":"Banana"}` {
		t.Errorf("produtos[0] = %s", produtos[0])
	}
}

func TestToSharedProductsResponse(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entry := &domain.ShareEntry{
		Produtos:  []json.RawMessage{json.RawMessage(`{"id":"p1","extra":[1, 2]}`)},
		CreatedAt: created,
		ExpiresAt: created.Add(domain.DefaultShareTTL),
	}

	resp := ToSharedProductsResponse(entry)

	if len(resp.Produtos) != 1 {
		t.Fatalf("len = %d, want 1", len(resp.Produtos))
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"produtos":[{"id":"p1","extra":[1,2]}],"createdAt":"2026-01-02T03:04:05Z","expiresAt":"2026-02-01T03:04:05Z"}`
	if string(body) != want {
		t.Errorf("body = %s\nwant  %s", body, want)
	}

	if ToSharedProductsResponse(nil) != nil {
		t.Error("nil entry should map to nil")
	}
}

func TestToShareCreatedResponse(t *testing.T) {
	expires := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	resp := ToShareCreatedResponse("ABC123", &domain.ShareEntry{ExpiresAt: expires})

	if resp.ShareCode != "ABC123" {
		t.Errorf("ShareCode = %s, want ABC123", resp.ShareCode)
	}
	if !resp.ExpiresAt.Equal(expires) {
		t.Errorf("ExpiresAt = %v, want %v", resp.ExpiresAt, expires)
	}
	if ToShareCreatedResponse("ABC123", nil) != nil {
		t.Error("nil entry should map to nil")
	}
}

func TestToShareListResponseSortsNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	summaries := []domain.ShareSummary{
		{Code: "OLD000", ProductCount: 1, CreatedAt: base},
		{Code: "NEW000", ProductCount: 3, CreatedAt: base.Add(2 * time.Hour)},
		{Code: "MID000", ProductCount: 2, CreatedAt: base.Add(time.Hour)},
	}

	resp := ToShareListResponse(summaries)

	want := []string{"NEW000", "MID000", "OLD000"}
	if len(resp.Shares) != len(want) {
		t.Fatalf("len = %d, want %d", len(resp.Shares), len(want))
	}
	for i, code := range want {
		if resp.Shares[i].Code != code {
			t.Errorf("Shares[%d].Code = %s, want %s", i, resp.Shares[i].Code, code)
		}
	}
	if resp.Shares[0].ProductCount != 3 {
		t.Errorf("ProductCount = %d, want 3", resp.Shares[0].ProductCount)
	}

	empty := ToShareListResponse(nil)
	if empty.Shares == nil {
		t.Error("Shares should be an empty slice, not nil")
	}
}

func TestToImportResponse(t *testing.T) {
	resp := ToImportResponse(nil)
	if resp.Imported == nil || resp.Skipped == nil {
		t.Error("nil result should map to empty slices")
	}

	resp = ToImportResponse(&domain.ImportResult{
		Imported: []domain.Produto{{ID: "new-1", Nome: "Kombucha"}},
	})
	if len(resp.Imported) != 1 || resp.Imported[0].ID != "new-1" {
		t.Errorf("Imported = %+v", resp.Imported)
	}
	if resp.Skipped == nil {
		t.Error("Skipped should be an empty slice, not nil")
	}
}
