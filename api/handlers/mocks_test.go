package handlers

import (
	"context"
	"encoding/json"
	"iter"

	"shoplist-api/core/domain"
	"shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
)

// mockShareService is a mock implementation of the share service
type mockShareService struct {
	createShareFunc  func(ctx context.Context, produtos []json.RawMessage) (domain.ShareCode, *domain.ShareEntry, error)
	resolveShareFunc func(ctx context.Context, code string) (*domain.ShareEntry, error)
	listFunc         func(ctx context.Context) iter.Seq2[domain.ShareSummary, error]
}

func (m *mockShareService) CreateShare(ctx context.Context, produtos []json.RawMessage) (domain.ShareCode, *domain.ShareEntry, error) {
	if m.createShareFunc != nil {
		return m.createShareFunc(ctx, produtos)
	}
	return "", nil, nil
}

func (m *mockShareService) ResolveShare(ctx context.Context, code string) (*domain.ShareEntry, error) {
	if m.resolveShareFunc != nil {
		return m.resolveShareFunc(ctx, code)
	}
	return nil, &errors.NotFoundError{Resource: "share", ID: code}
}

func (m *mockShareService) ListActiveShares(ctx context.Context) iter.Seq2[domain.ShareSummary, error] {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return func(yield func(domain.ShareSummary, error) bool) {}
}

func (m *mockShareService) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

// mockIdentity is a mock implementation of the identity provider
type mockIdentity struct {
	createUserFunc  func(ctx context.Context, req interfaces.SignupRequest) (*domain.User, error)
	verifyTokenFunc func(ctx context.Context, token string) (*domain.User, error)
}

func (m *mockIdentity) CreateUser(ctx context.Context, req interfaces.SignupRequest) (*domain.User, error) {
	if m.createUserFunc != nil {
		return m.createUserFunc(ctx, req)
	}
	return &domain.User{ID: "user-1", Email: req.Email, Name: req.Name}, nil
}

func (m *mockIdentity) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	if m.verifyTokenFunc != nil {
		return m.verifyTokenFunc(ctx, token)
	}
	if token == "good-token" {
		return &domain.User{ID: "user-1", Email: "ana@example.com"}, nil
	}
	return nil, &errors.UnauthorizedError{Message: "invalid token"}
}

// mockSnapshotService is a mock implementation of the snapshot service
type mockSnapshotService struct {
	loadFunc     func(ctx context.Context, userID string) (*domain.Snapshot, error)
	saveFunc     func(ctx context.Context, userID string, snapshot *domain.Snapshot) error
	completeFunc func(ctx context.Context, userID, listID string) (*domain.Lista, error)
	reopenFunc   func(ctx context.Context, userID, listID string) (*domain.Lista, error)
	importFunc   func(ctx context.Context, userID, code string, productIDs []string) (*domain.ImportResult, error)
}

func (m *mockSnapshotService) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, userID)
	}
	return &domain.Snapshot{}, nil
}

func (m *mockSnapshotService) Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, userID, snapshot)
	}
	return nil
}

func (m *mockSnapshotService) CompleteList(ctx context.Context, userID, listID string) (*domain.Lista, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, userID, listID)
	}
	return nil, &errors.NotFoundError{Resource: "list", ID: listID}
}

func (m *mockSnapshotService) ReopenList(ctx context.Context, userID, listID string) (*domain.Lista, error) {
	if m.reopenFunc != nil {
		return m.reopenFunc(ctx, userID, listID)
	}
	return nil, &errors.NotFoundError{Resource: "list", ID: listID}
}

func (m *mockSnapshotService) ImportShared(ctx context.Context, userID, code string, productIDs []string) (*domain.ImportResult, error) {
	if m.importFunc != nil {
		return m.importFunc(ctx, userID, code, productIDs)
	}
	return &domain.ImportResult{}, nil
}

// errorMessage decodes an {"error": ...} body
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &e)
	return e.Error
}

func mustJSON(t interface{ Fatal(args ...any) }, v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
