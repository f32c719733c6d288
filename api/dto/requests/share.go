// ABOUTME: Request DTOs for share-code endpoints
// ABOUTME: Product records pass through the API byte for byte

package requests

import (
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"
)

// ProductRecord is an opaque product object. It keeps the exact JSON the
// client sent so shares are stored verbatim.
type ProductRecord json.RawMessage

// MarshalJSON writes the record unchanged
func (p ProductRecord) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON keeps a copy of the raw bytes
func (p *ProductRecord) UnmarshalJSON(data []byte) error {
	*p = append((*p)[:0], data...)
	return nil
}

// Schema documents the record as a free-form object
func (ProductRecord) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:                 huma.TypeObject,
		Description:          "Product record as stored by the client",
		AdditionalProperties: true,
	}
}

// ShareProductsRequest is the body of POST /share-products.
// Produtos is optional in the schema so an empty or missing list reaches the
// handler and gets the same error as any other invalid payload.
type ShareProductsRequest struct {
	_        struct{}        `json:"-" additionalProperties:"true"`
	Produtos []ProductRecord `json:"produtos,omitempty" doc:"Products to share"`
}
