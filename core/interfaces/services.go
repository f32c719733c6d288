// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"
	"encoding/json"
	"iter"

	"shoplist-api/core/domain"
)

// ShareService issues and redeems product share codes
type ShareService interface {
	CreateShare(ctx context.Context, produtos []json.RawMessage) (domain.ShareCode, *domain.ShareEntry, error)
	ResolveShare(ctx context.Context, code string) (*domain.ShareEntry, error)
	ListActiveShares(ctx context.Context) iter.Seq2[domain.ShareSummary, error]
	Sweep(ctx context.Context) (int, error)
}

// SnapshotService loads and mutates a user's shopping data
type SnapshotService interface {
	Load(ctx context.Context, userID string) (*domain.Snapshot, error)
	Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error
	CompleteList(ctx context.Context, userID, listID string) (*domain.Lista, error)
	ReopenList(ctx context.Context, userID, listID string) (*domain.Lista, error)
	ImportShared(ctx context.Context, userID, code string, productIDs []string) (*domain.ImportResult, error)
}

// SignupRequest carries the fields needed to register a user
type SignupRequest struct {
	Email    string
	Password string
	Name     string
}

// IdentityProvider is the external service that owns user accounts
type IdentityProvider interface {
	// CreateUser registers a user with an already confirmed email
	CreateUser(ctx context.Context, req SignupRequest) (*domain.User, error)

	// VerifyToken resolves an access token to its user
	VerifyToken(ctx context.Context, accessToken string) (*domain.User, error)
}
