// ABOUTME: Snapshot service loads and saves a user's shopping data as one document
// ABOUTME: Implements list completion, reopening and importing products from a share code

package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shoplist-api/core/domain"
	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
)

// KeyPrefix namespaces snapshots inside the key-value store
const KeyPrefix = "shopping-data:"

// Option configures a Service
type Option func(*Service)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the generator used for new product and price ids
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Service handles snapshot operations
type Service struct {
	store  interfaces.Store
	shares interfaces.ShareService
	logger interfaces.Logger
	now    func() time.Time
	newID  func() string
}

// NewService creates a new snapshot service. shares is used by ImportShared.
func NewService(deps interfaces.Dependencies, shares interfaces.ShareService, opts ...Option) *Service {
	s := &Service{
		store:  deps.Store,
		shares: shares,
		logger: deps.Logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func key(userID string) string {
	return KeyPrefix + userID
}

// Load returns the user's snapshot, or the starter data when nothing was saved yet
func (s *Service) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if userID == "" {
		return nil, &coreerrors.ValidationError{Field: "userId", Message: "user id is required"}
	}

	data, err := s.store.Get(ctx, key(userID))
	if coreerrors.IsKeyNotFound(err) {
		return domain.DefaultSnapshot(s.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("stored snapshot for %s is unreadable: %w", userID, err)
	}

	return &snapshot, nil
}

// Save validates and replaces the user's snapshot
func (s *Service) Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error {
	if userID == "" {
		return &coreerrors.ValidationError{Field: "userId", Message: "user id is required"}
	}
	if snapshot == nil {
		return &coreerrors.ValidationError{Field: "snapshot", Message: "snapshot is required"}
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := s.store.Set(ctx, key(userID), data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// CompleteList marks a list as concluded. Purchased items with a price are
// recorded in their product's price history and summed into the list total.
// Completing an already concluded list changes nothing.
func (s *Service) CompleteList(ctx context.Context, userID, listID string) (*domain.Lista, error) {
	snapshot, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	lista, ok := snapshot.FindLista(listID)
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "list", ID: listID}
	}
	if lista.Concluida {
		result := *lista
		return &result, nil
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	total := 0.0
	recorded := 0

	for _, item := range lista.Itens {
		if !item.Comprado {
			continue
		}

		preco := 0.0
		if item.PrecoCompra != nil {
			preco = *item.PrecoCompra
		}
		total += preco * item.Quantidade

		if preco <= 0 {
			continue
		}
		produto, ok := snapshot.FindProduto(item.ProdutoID)
		if !ok {
			continue
		}
		produto.Precos = append(produto.Precos, domain.PrecoHistorico{
			ID:    s.newID(),
			Valor: preco,
			Data:  now,
			Local: "Compra da lista: " + lista.Nome,
		})
		recorded++
	}

	lista.Concluida = true
	lista.DataConclusao = &now
	lista.TotalGasto = &total

	if err := s.Save(ctx, userID, snapshot); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("List completed", map[string]interface{}{
			"user_id":         userID,
			"list_id":         listID,
			"total":           total,
			"prices_recorded": recorded,
		})
	}

	result := *lista
	return &result, nil
}

// ReopenList clears the concluded flag. Recorded prices and totals are kept.
func (s *Service) ReopenList(ctx context.Context, userID, listID string) (*domain.Lista, error) {
	snapshot, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	lista, ok := snapshot.FindLista(listID)
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "list", ID: listID}
	}
	if !lista.Concluida {
		result := *lista
		return &result, nil
	}

	lista.Concluida = false

	if err := s.Save(ctx, userID, snapshot); err != nil {
		return nil, err
	}

	result := *lista
	return &result, nil
}

// ImportShared copies the selected products of a share into the user's
// snapshot under fresh ids. Products whose name already exists are skipped.
func (s *Service) ImportShared(ctx context.Context, userID, code string, productIDs []string) (*domain.ImportResult, error) {
	if len(productIDs) == 0 {
		return nil, &coreerrors.ValidationError{Field: "productIds", Message: "select at least one product"}
	}
	if s.shares == nil {
		return nil, fmt.Errorf("share service not configured")
	}

	entry, err := s.shares.ResolveShare(ctx, code)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		selected[id] = true
	}

	result := &domain.ImportResult{Imported: []domain.Produto{}, Skipped: []string{}}
	matched := 0
	for _, raw := range entry.Produtos {
		var produto domain.Produto
		if err := json.Unmarshal(raw, &produto); err != nil {
			continue
		}
		if !selected[produto.ID] {
			continue
		}
		matched++

		if snapshot.HasProdutoNamed(produto.Nome) {
			result.Skipped = append(result.Skipped, produto.Nome)
			continue
		}

		produto.ID = s.newID()
		snapshot.Produtos = append(snapshot.Produtos, produto)
		result.Imported = append(result.Imported, produto)
	}

	if matched == 0 {
		return nil, &coreerrors.NotFoundError{Resource: "shared product", ID: domain.NormalizeShareCode(code).String()}
	}

	if len(result.Imported) > 0 {
		if err := s.Save(ctx, userID, snapshot); err != nil {
			return nil, err
		}
	}

	return result, nil
}
