// ABOUTME: Share handlers for the Huma API
// ABOUTME: Provides HTTP endpoints to create, resolve and list product share codes

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"shoplist-api/api/dto/mappers"
	"shoplist-api/api/dto/requests"
	"shoplist-api/api/dto/responses"
	"shoplist-api/core/domain"
	"shoplist-api/core/interfaces"
	"shoplist-api/pkg/featureflags"
)

// maxShareBodyBytes bounds a share request; every store accepts entries of this size
const maxShareBodyBytes = 1024 * 1024

// ShareHandler handles share-related HTTP requests
type ShareHandler struct {
	shareService interfaces.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService interfaces.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

// RegisterRoutes registers all share-related routes
func (h *ShareHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "shareProducts",
		Method:       http.MethodPost,
		Path:         "/share-products",
		Summary:      "Share a list of products",
		Description:  "Stores the products under a new short code that stays valid for 30 days",
		Tags:         []string{"Share"},
		MaxBodyBytes: maxShareBodyBytes,
		Errors:       []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.ShareProducts)

	huma.Register(api, huma.Operation{
		OperationID: "getSharedProducts",
		Method:      http.MethodGet,
		Path:        "/shared-products/{code}",
		Summary:     "Redeem a share code",
		Description: "Returns the products behind a code. A code can be redeemed any number of times until it expires",
		Tags:        []string{"Share"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetSharedProducts)

	huma.Register(api, huma.Operation{
		OperationID: "listSharedProducts",
		Method:      http.MethodGet,
		Path:        "/shared-products",
		Summary:     "List active share codes",
		Description: "Lists unexpired shares, newest first. Expired shares found on the way are deleted",
		Tags:        []string{"Share"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListSharedProducts)
}

// ShareProductsInput defines the input for the ShareProducts operation
type ShareProductsInput struct {
	Body requests.ShareProductsRequest
}

// ShareProductsOutput defines the output for the ShareProducts operation
type ShareProductsOutput struct {
	Body *responses.ShareCreatedResponse
}

// ShareProducts handles the POST /share-products endpoint
func (h *ShareHandler) ShareProducts(ctx context.Context, input *ShareProductsInput) (*ShareProductsOutput, error) {
	if err := requireFeature(ctx, featureflags.ShareEnabled); err != nil {
		return nil, err
	}

	if len(input.Body.Produtos) == 0 {
		return nil, huma.Error400BadRequest(msgInvalidProducts)
	}

	code, entry, err := h.shareService.CreateShare(ctx, mappers.ToRawProducts(input.Body.Produtos))
	if err != nil {
		return nil, toHumaError(err, "Erro ao compartilhar produtos: ")
	}

	return &ShareProductsOutput{
		Body: mappers.ToShareCreatedResponse(code, entry),
	}, nil
}

// GetSharedProductsInput defines the input for the GetSharedProducts operation
type GetSharedProductsInput struct {
	Code string `path:"code" doc:"Share code, case-insensitive"`
}

// GetSharedProductsOutput defines the output for the GetSharedProducts operation
type GetSharedProductsOutput struct {
	Body *responses.SharedProductsResponse
}

// GetSharedProducts handles the GET /shared-products/{code} endpoint
func (h *ShareHandler) GetSharedProducts(ctx context.Context, input *GetSharedProductsInput) (*GetSharedProductsOutput, error) {
	if err := requireFeature(ctx, featureflags.ShareEnabled); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Code) == "" {
		return nil, huma.Error400BadRequest(msgInvalidCode)
	}

	entry, err := h.shareService.ResolveShare(ctx, input.Code)
	if err != nil {
		return nil, toHumaError(err, "Erro ao buscar produtos: ")
	}

	return &GetSharedProductsOutput{
		Body: mappers.ToSharedProductsResponse(entry),
	}, nil
}

// ListSharedProductsOutput defines the output for the ListSharedProducts operation
type ListSharedProductsOutput struct {
	Body *responses.ShareListResponse
}

// ListSharedProducts handles the GET /shared-products endpoint
func (h *ShareHandler) ListSharedProducts(ctx context.Context, input *struct{}) (*ListSharedProductsOutput, error) {
	if err := requireFeature(ctx, featureflags.ShareEnabled); err != nil {
		return nil, err
	}

	var summaries []domain.ShareSummary
	for summary, err := range h.shareService.ListActiveShares(ctx) {
		if err != nil {
			return nil, toHumaError(err, "Erro ao listar produtos compartilhados: ")
		}
		summaries = append(summaries, summary)
	}

	return &ListSharedProductsOutput{
		Body: mappers.ToShareListResponse(summaries),
	}, nil
}
