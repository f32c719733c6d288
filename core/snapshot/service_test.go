package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplist-api/core/domain"
	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
	"shoplist-api/infrastructure/store/memory"
)

// mockShareService is a mock implementation of the ShareService interface
type mockShareService struct {
	resolveFunc func(ctx context.Context, code string) (*domain.ShareEntry, error)
}

func (m *mockShareService) CreateShare(ctx context.Context, produtos []json.RawMessage) (domain.ShareCode, *domain.ShareEntry, error) {
	return "", nil, errors.New("not implemented")
}

func (m *mockShareService) ResolveShare(ctx context.Context, code string) (*domain.ShareEntry, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, code)
	}
	return nil, &coreerrors.NotFoundError{Resource: "share", ID: code}
}

func (m *mockShareService) ListActiveShares(ctx context.Context) iter.Seq2[domain.ShareSummary, error] {
	return func(yield func(domain.ShareSummary, error) bool) {}
}

func (m *mockShareService) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

var fixedNow = time.Date(2024, 5, 20, 18, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func ptr(v float64) *float64 { return &v }

func newTestService(t *testing.T, shares interfaces.ShareService) (*Service, *memory.MemoryStore) {
	t.Helper()
	store := memory.NewMemoryStore()
	service := NewService(
		interfaces.Dependencies{Store: store},
		shares,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	)
	return service, store
}

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Categorias: []domain.Categoria{{ID: "1", Nome: "Frutas", Cor: "#10b981"}},
		Produtos: []domain.Produto{
			{ID: "p1", Nome: "Banana", CategoriaID: "1", Unidade: "kg", Precos: []domain.PrecoHistorico{
				{ID: "h1", Valor: 4.99, Data: fixedNow.Add(-48 * time.Hour)},
			}},
			{ID: "p2", Nome: "Leite", CategoriaID: "1", Unidade: "L"},
			{ID: "p3", Nome: "Pão", CategoriaID: "1", Unidade: "un"},
		},
		Listas: []domain.Lista{
			{
				ID: "l1", Nome: "Semana", DataCriacao: fixedNow.Add(-24 * time.Hour),
				Itens: []domain.ItemLista{
					{ID: "i1", ProdutoID: "p1", Quantidade: 2, Comprado: true, PrecoCompra: ptr(5.5)},
					{ID: "i2", ProdutoID: "p2", Quantidade: 3, Comprado: true},
					{ID: "i3", ProdutoID: "p3", Quantidade: 1, Comprado: false, PrecoCompra: ptr(9)},
				},
			},
		},
	}
}

func TestLoad_SeedsDefaultsWhenAbsent(t *testing.T) {
	service, store := newTestService(t, nil)

	snapshot, err := service.Load(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, snapshot.Categorias, 8)
	assert.NotEmpty(t, snapshot.Produtos)
	assert.Empty(t, snapshot.Listas)

	// Loading alone does not persist anything
	assert.Equal(t, 0, store.Len())
}

func TestLoad_RequiresUser(t *testing.T) {
	service, _ := newTestService(t, nil)

	_, err := service.Load(context.Background(), "")
	assert.True(t, coreerrors.IsValidation(err))
}

func TestLoad_UnreadableSnapshot(t *testing.T) {
	service, store := newTestService(t, nil)
	require.NoError(t, store.Set(context.Background(), "shopping-data:user-1", []byte("garbage")))

	_, err := service.Load(context.Background(), "user-1")
	require.Error(t, err)
	assert.False(t, coreerrors.IsValidation(err))
}

func TestSaveThenLoad(t *testing.T) {
	service, store := newTestService(t, nil)
	ctx := context.Background()

	require.NoError(t, service.Save(ctx, "user-1", sampleSnapshot()))
	assert.Equal(t, 1, store.Len())

	loaded, err := service.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), loaded)

	// Snapshots are per user
	other, err := service.Load(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, other.Categorias, 8)
}

func TestSave_RejectsInvalidSnapshot(t *testing.T) {
	service, store := newTestService(t, nil)

	invalid := sampleSnapshot()
	invalid.Categorias[0].Cor = "green"

	err := service.Save(context.Background(), "user-1", invalid)
	assert.True(t, coreerrors.IsValidation(err))
	assert.Equal(t, 0, store.Len())

	err = service.Save(context.Background(), "user-1", nil)
	assert.True(t, coreerrors.IsValidation(err))
}

func TestCompleteList_RecordsPricesAndTotal(t *testing.T) {
	service, _ := newTestService(t, nil)
	ctx := context.Background()
	require.NoError(t, service.Save(ctx, "user-1", sampleSnapshot()))

	lista, err := service.CompleteList(ctx, "user-1", "l1")
	require.NoError(t, err)

	assert.True(t, lista.Concluida)
	require.NotNil(t, lista.DataConclusao)
	assert.True(t, lista.DataConclusao.Equal(fixedNow))
	require.NotNil(t, lista.TotalGasto)
	// Only purchased items count; the item without a price adds zero
	assert.InDelta(t, 11.0, *lista.TotalGasto, 1e-9)

	snapshot, err := service.Load(ctx, "user-1")
	require.NoError(t, err)

	banana, _ := snapshot.FindProduto("p1")
	require.Len(t, banana.Precos, 2)
	recorded := banana.Precos[1]
	assert.Equal(t, "id-1", recorded.ID)
	assert.Equal(t, 5.5, recorded.Valor)
	assert.Equal(t, "Compra da lista: Semana", recorded.Local)
	assert.True(t, recorded.Data.Equal(fixedNow))

	leite, _ := snapshot.FindProduto("p2")
	assert.Empty(t, leite.Precos, "purchased item without a price records nothing")

	pao, _ := snapshot.FindProduto("p3")
	assert.Empty(t, pao.Precos, "unpurchased item records nothing")
}

func TestCompleteList_AlreadyConcludedIsUnchanged(t *testing.T) {
	service, _ := newTestService(t, nil)
	ctx := context.Background()
	require.NoError(t, service.Save(ctx, "user-1", sampleSnapshot()))

	_, err := service.CompleteList(ctx, "user-1", "l1")
	require.NoError(t, err)
	_, err = service.CompleteList(ctx, "user-1", "l1")
	require.NoError(t, err)

	snapshot, err := service.Load(ctx, "user-1")
	require.NoError(t, err)
	banana, _ := snapshot.FindProduto("p1")
	assert.Len(t, banana.Precos, 2)
}

func TestCompleteList_UnknownList(t *testing.T) {
	service, _ := newTestService(t, nil)

	_, err := service.CompleteList(context.Background(), "user-1", "missing")
	assert.True(t, coreerrors.IsNotFound(err))
}

func TestReopenList_KeepsTotals(t *testing.T) {
	service, _ := newTestService(t, nil)
	ctx := context.Background()
	require.NoError(t, service.Save(ctx, "user-1", sampleSnapshot()))

	_, err := service.CompleteList(ctx, "user-1", "l1")
	require.NoError(t, err)

	lista, err := service.ReopenList(ctx, "user-1", "l1")
	require.NoError(t, err)
	assert.False(t, lista.Concluida)
	assert.NotNil(t, lista.TotalGasto)
	assert.NotNil(t, lista.DataConclusao)

	snapshot, err := service.Load(ctx, "user-1")
	require.NoError(t, err)
	stored, _ := snapshot.FindLista("l1")
	assert.False(t, stored.Concluida)
}

func TestReopenList_UnknownList(t *testing.T) {
	service, _ := newTestService(t, nil)

	_, err := service.ReopenList(context.Background(), "user-1", "missing")
	assert.True(t, coreerrors.IsNotFound(err))
}

func sharedEntry() *domain.ShareEntry {
	return &domain.ShareEntry{
		Produtos: []json.RawMessage{
			json.RawMessage(`{"id":"s1","nome":"banana","categoriaId":"1","unidade":"kg","precos":[]}`),
			json.RawMessage(`{"id":"s2","nome":"Café","categoriaId":"5","unidade":"un","precos":[{"id":"x","valor":18.9,"data":"2024-05-01T10:00:00Z"}]}`),
			json.RawMessage(`{"id":"s3","nome":"Sabão","categoriaId":"6","unidade":"un","precos":[]}`),
			json.RawMessage(`"not a product"`),
		},
		CreatedAt: fixedNow.Add(-time.Hour),
		ExpiresAt: fixedNow.Add(time.Hour),
	}
}

func TestImportShared_ImportsSelectedAndSkipsDuplicates(t *testing.T) {
	var resolvedCode string
	shares := &mockShareService{
		resolveFunc: func(ctx context.Context, code string) (*domain.ShareEntry, error) {
			resolvedCode = code
			return sharedEntry(), nil
		},
	}
	service, _ := newTestService(t, shares)
	ctx := context.Background()
	require.NoError(t, service.Save(ctx, "user-1", sampleSnapshot()))

	result, err := service.ImportShared(ctx, "user-1", "abc123", []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", resolvedCode)

	require.Len(t, result.Imported, 1)
	assert.Equal(t, "Café", result.Imported[0].Nome)
	assert.Equal(t, "id-1", result.Imported[0].ID)
	assert.Len(t, result.Imported[0].Precos, 1)
	assert.Equal(t, []string{"banana"}, result.Skipped)

	snapshot, err := service.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, snapshot.Produtos, 4)
	assert.True(t, snapshot.HasProdutoNamed("café"))
	assert.False(t, snapshot.HasProdutoNamed("Sabão"))
}

func TestImportShared_RequiresSelection(t *testing.T) {
	service, _ := newTestService(t, &mockShareService{})

	_, err := service.ImportShared(context.Background(), "user-1", "ABC123", nil)
	assert.True(t, coreerrors.IsValidation(err))
}

func TestImportShared_PropagatesShareErrors(t *testing.T) {
	service, _ := newTestService(t, &mockShareService{
		resolveFunc: func(ctx context.Context, code string) (*domain.ShareEntry, error) {
			return nil, &coreerrors.NotFoundError{Resource: "share", ID: code, Expired: true}
		},
	})

	_, err := service.ImportShared(context.Background(), "user-1", "ABC123", []string{"s1"})
	assert.True(t, coreerrors.IsExpired(err))
}

func TestImportShared_NoSelectedProductInShare(t *testing.T) {
	service, store := newTestService(t, &mockShareService{
		resolveFunc: func(ctx context.Context, code string) (*domain.ShareEntry, error) {
			return sharedEntry(), nil
		},
	})

	_, err := service.ImportShared(context.Background(), "user-1", "ABC123", []string{"nope"})
	assert.True(t, coreerrors.IsNotFound(err))
	assert.Equal(t, 0, store.Len())
}

func TestImportShared_AllDuplicatesWritesNothing(t *testing.T) {
	service, store := newTestService(t, &mockShareService{
		resolveFunc: func(ctx context.Context, code string) (*domain.ShareEntry, error) {
			return sharedEntry(), nil
		},
	})
	ctx := context.Background()
	require.NoError(t, service.Save(ctx, "user-1", sampleSnapshot()))
	before, err := store.Get(ctx, "shopping-data:user-1")
	require.NoError(t, err)

	result, err := service.ImportShared(ctx, "user-1", "ABC123", []string{"s1"})
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Equal(t, []string{"banana"}, result.Skipped)

	after, err := store.Get(ctx, "shopping-data:user-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportShared_WithoutShareService(t *testing.T) {
	service, _ := newTestService(t, nil)

	_, err := service.ImportShared(context.Background(), "user-1", "ABC123", []string{"s1"})
	assert.Error(t, err)
}
