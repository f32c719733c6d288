// ABOUTME: Health and signup handlers for the Huma API
// ABOUTME: Signup is a passthrough to the identity provider

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"shoplist-api/api/dto/requests"
	"shoplist-api/api/dto/responses"
	"shoplist-api/core/interfaces"
	"shoplist-api/pkg/featureflags"
)

// AccountHandler handles health and signup requests
type AccountHandler struct {
	identity interfaces.IdentityProvider
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(identity interfaces.IdentityProvider) *AccountHandler {
	return &AccountHandler{
		identity: identity,
	}
}

// RegisterRoutes registers health and signup routes
func (h *AccountHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.Health)

	huma.Register(api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/signup",
		Summary:     "Create an account",
		Description: "Registers the user with the identity provider. The email is confirmed on creation",
		Tags:        []string{"Account"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Signup)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles the GET /health endpoint
func (h *AccountHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: responses.HealthResponse{Status: "ok"},
	}, nil
}

// SignupInput defines the input for the Signup operation
type SignupInput struct {
	Body requests.SignupRequest
}

// SignupOutput defines the output for the Signup operation
type SignupOutput struct {
	Body responses.SignupResponse
}

// Signup handles the POST /signup endpoint
func (h *AccountHandler) Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error) {
	if err := requireFeature(ctx, featureflags.SignupEnabled); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Body.Email)
	if email == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest(msgMissingCredentials)
	}

	user, err := h.identity.CreateUser(ctx, interfaces.SignupRequest{
		Email:    email,
		Password: input.Body.Password,
		Name:     strings.TrimSpace(input.Body.Name),
	})
	if err != nil {
		return nil, toHumaError(err, "Erro ao criar conta: ")
	}

	return &SignupOutput{
		Body: responses.SignupResponse{User: user},
	}, nil
}
