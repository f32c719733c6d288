// ABOUTME: Authenticated handlers for a user's own shopping data
// ABOUTME: Every /me route resolves the bearer token through the identity provider

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
	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/history"
	"shoplist-api/core/interfaces"
	"shoplist-api/pkg/featureflags"
)

// MeHandler handles snapshot, list and history requests for the caller
type MeHandler struct {
	identity        interfaces.IdentityProvider
	snapshotService interfaces.SnapshotService
}

// NewMeHandler creates a new handler for the /me routes
func NewMeHandler(identity interfaces.IdentityProvider, snapshotService interfaces.SnapshotService) *MeHandler {
	return &MeHandler{
		identity:        identity,
		snapshotService: snapshotService,
	}
}

// RegisterRoutes registers all /me routes
func (h *MeHandler) RegisterRoutes(api huma.API) {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(api, huma.Operation{
		OperationID: "getSnapshot",
		Method:      http.MethodGet,
		Path:        "/me/snapshot",
		Summary:     "Load shopping data",
		Description: "Returns categories, products and lists. New users get the default categories and products",
		Tags:        []string{"Me"},
		Security:    security,
		Errors:      []int{http.StatusUnauthorized, http.StatusInternalServerError},
	}, h.GetSnapshot)

	huma.Register(api, huma.Operation{
		OperationID: "putSnapshot",
		Method:      http.MethodPut,
		Path:        "/me/snapshot",
		Summary:     "Replace shopping data",
		Tags:        []string{"Me"},
		Security:    security,
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError},
	}, h.PutSnapshot)

	huma.Register(api, huma.Operation{
		OperationID: "completeList",
		Method:      http.MethodPost,
		Path:        "/me/lists/{listId}/complete",
		Summary:     "Complete a shopping list",
		Description: "Marks the list as done, totals purchased items and records their prices in each product's history",
		Tags:        []string{"Me"},
		Security:    security,
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError},
	}, h.CompleteList)

	huma.Register(api, huma.Operation{
		OperationID: "reopenList",
		Method:      http.MethodPost,
		Path:        "/me/lists/{listId}/reopen",
		Summary:     "Reopen a completed list",
		Tags:        []string{"Me"},
		Security:    security,
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError},
	}, h.ReopenList)

	huma.Register(api, huma.Operation{
		OperationID: "importShared",
		Method:      http.MethodPost,
		Path:        "/me/import",
		Summary:     "Import shared products",
		Description: "Copies the selected products of a share into the caller's data. Products whose name already exists are skipped",
		Tags:        []string{"Me"},
		Security:    security,
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError},
	}, h.ImportShared)

	huma.Register(api, huma.Operation{
		OperationID: "getHistory",
		Method:      http.MethodGet,
		Path:        "/me/history",
		Summary:     "Purchase history",
		Tags:        []string{"Me"},
		Security:    security,
		Errors:      []int{http.StatusUnauthorized, http.StatusInternalServerError},
	}, h.GetHistory)

	huma.Register(api, huma.Operation{
		OperationID: "getPriceStats",
		Method:      http.MethodGet,
		Path:        "/me/products/{productId}/prices",
		Summary:     "Price statistics of a product",
		Tags:        []string{"Me"},
		Security:    security,
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetPriceStats)
}

// AuthInput carries the caller's access token
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
}

// authenticate resolves the caller. Any rejection from the provider is a 401;
// a provider that cannot answer is a 500.
func (h *MeHandler) authenticate(ctx context.Context, in AuthInput) (*domain.User, error) {
	if err := requireFeature(ctx, featureflags.SnapshotEnabled); err != nil {
		return nil, err
	}

	token := bearerToken(in.Authorization)
	if token == "" {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}

	user, err := h.identity.VerifyToken(ctx, token)
	if err != nil {
		if coreerrors.IsUnauthorized(err) {
			return nil, huma.Error401Unauthorized(msgUnauthorized)
		}
		return nil, huma.Error500InternalServerError("Erro ao verificar sessão: " + err.Error())
	}
	if user == nil || user.ID == "" {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}

	return user, nil
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// SnapshotOutput carries a full snapshot
type SnapshotOutput struct {
	Body *domain.Snapshot
}

// GetSnapshot handles the GET /me/snapshot endpoint
func (h *MeHandler) GetSnapshot(ctx context.Context, input *AuthInput) (*SnapshotOutput, error) {
	user, err := h.authenticate(ctx, *input)
	if err != nil {
		return nil, err
	}

	snapshot, err := h.snapshotService.Load(ctx, user.ID)
	if err != nil {
		return nil, toHumaError(err, "Erro ao carregar dados: ")
	}

	return &SnapshotOutput{Body: snapshot}, nil
}

// PutSnapshotInput defines the input for the PutSnapshot operation
type PutSnapshotInput struct {
	AuthInput
	Body domain.Snapshot
}

// PutSnapshot handles the PUT /me/snapshot endpoint
func (h *MeHandler) PutSnapshot(ctx context.Context, input *PutSnapshotInput) (*SnapshotOutput, error) {
	user, err := h.authenticate(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	snapshot := input.Body
	if err := h.snapshotService.Save(ctx, user.ID, &snapshot); err != nil {
		return nil, toHumaError(err, "Erro ao salvar dados: ")
	}

	return &SnapshotOutput{Body: &snapshot}, nil
}

// ListInput identifies one of the caller's lists
type ListInput struct {
	AuthInput
	ListID string `path:"listId" doc:"List id"`
}

// ListOutput carries a single list
type ListOutput struct {
	Body *domain.Lista
}

// CompleteList handles the POST /me/lists/{listId}/complete endpoint
func (h *MeHandler) CompleteList(ctx context.Context, input *ListInput) (*ListOutput, error) {
	user, err := h.authenticate(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	lista, err := h.snapshotService.CompleteList(ctx, user.ID, input.ListID)
	if err != nil {
		return nil, toHumaError(err, "Erro ao concluir lista: ")
	}

	return &ListOutput{Body: lista}, nil
}

// ReopenList handles the POST /me/lists/{listId}/reopen endpoint
func (h *MeHandler) ReopenList(ctx context.Context, input *ListInput) (*ListOutput, error) {
	user, err := h.authenticate(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	lista, err := h.snapshotService.ReopenList(ctx, user.ID, input.ListID)
	if err != nil {
		return nil, toHumaError(err, "Erro ao reabrir lista: ")
	}

	return &ListOutput{Body: lista}, nil
}

// ImportSharedInput defines the input for the ImportShared operation
type ImportSharedInput struct {
	AuthInput
	Body requests.ImportRequest
}

// ImportSharedOutput defines the output for the ImportShared operation
type ImportSharedOutput struct {
	Body *responses.ImportResponse
}

// ImportShared handles the POST /me/import endpoint
func (h *MeHandler) ImportShared(ctx context.Context, input *ImportSharedInput) (*ImportSharedOutput, error) {
	user, err := h.authenticate(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	result, err := h.snapshotService.ImportShared(ctx, user.ID, input.Body.Code, input.Body.ProductIDs)
	if err != nil {
		return nil, toHumaError(err, "Erro ao importar produtos: ")
	}

	return &ImportSharedOutput{Body: mappers.ToImportResponse(result)}, nil
}

// HistoryOutput carries the purchase history
type HistoryOutput struct {
	Body history.PurchaseHistory
}

// GetHistory handles the GET /me/history endpoint
func (h *MeHandler) GetHistory(ctx context.Context, input *AuthInput) (*HistoryOutput, error) {
	user, err := h.authenticate(ctx, *input)
	if err != nil {
		return nil, err
	}

	snapshot, err := h.snapshotService.Load(ctx, user.ID)
	if err != nil {
		return nil, toHumaError(err, "Erro ao carregar histórico: ")
	}

	return &HistoryOutput{Body: history.BuildHistory(snapshot.Listas)}, nil
}

// PriceStatsInput identifies one of the caller's products
type PriceStatsInput struct {
	AuthInput
	ProductID string `path:"productId" doc:"Product id"`
}

// PriceStatsOutput carries a product's price statistics
type PriceStatsOutput struct {
	Body history.PriceStats
}

// GetPriceStats handles the GET /me/products/{productId}/prices endpoint
func (h *MeHandler) GetPriceStats(ctx context.Context, input *PriceStatsInput) (*PriceStatsOutput, error) {
	user, err := h.authenticate(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	snapshot, err := h.snapshotService.Load(ctx, user.ID)
	if err != nil {
		return nil, toHumaError(err, "Erro ao carregar preços: ")
	}

	produto, ok := snapshot.FindProduto(input.ProductID)
	if !ok {
		return nil, toHumaError(&coreerrors.NotFoundError{Resource: "product", ID: input.ProductID}, "")
	}

	return &PriceStatsOutput{Body: history.ComputePriceStats(produto)}, nil
}
