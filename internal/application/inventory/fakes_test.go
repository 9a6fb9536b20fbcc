package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore almacenamiento en memoria que implementa los repositorios de ítems y transacciones.
type memStore struct {
	items map[string]entity.InventoryItem
	txs   []entity.StockTransaction
}

func newMemStore(items ...entity.InventoryItem) *memStore {
	s := &memStore{items: make(map[string]entity.InventoryItem)}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	if it, ok := s.items[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (s *memStore) GetByIDs(_ context.Context, ids []string) (map[string]entity.InventoryItem, error) {
	out := make(map[string]entity.InventoryItem)
	for _, id := range ids {
		if it, ok := s.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (s *memStore) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) UpdateStock(_ context.Context, item *entity.InventoryItem) error {
	s.items[item.ID] = *item
	return nil
}

func (s *memStore) ListBelowMinimum(_ context.Context) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, it := range s.items {
		if it.Quantity.LessThanOrEqual(it.MinQuantity) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Create(_ context.Context, tx *entity.StockTransaction) error {
	s.txs = append(s.txs, *tx)
	return nil
}

func (s *memStore) ListByItem(_ context.Context, itemID string, from, to *time.Time) ([]entity.StockTransaction, error) {
	var out []entity.StockTransaction
	for _, tx := range s.txs {
		if tx.InventoryItemID != itemID {
			continue
		}
		if from != nil && tx.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && tx.CreatedAt.After(*to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// memTxRunner ejecuta fn sobre el memStore y deshace los cambios si fn falla.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	txRepo repository.StockTransactionRepository,
) error) error {
	items := make(map[string]entity.InventoryItem, len(r.store.items))
	for k, v := range r.store.items {
		items[k] = v
	}
	txs := append([]entity.StockTransaction(nil), r.store.txs...)
	if err := fn(r.store, r.store); err != nil {
		r.store.items = items
		r.store.txs = txs
		return err
	}
	return nil
}

type countingMetrics struct {
	accepted map[string]int
	rejected map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{accepted: map[string]int{}, rejected: map[string]int{}}
}

func (m *countingMetrics) ObserveMovement(txType string) { m.accepted[txType]++ }
func (m *countingMetrics) ObserveRejectedMovement(_, reason string) {
	m.rejected[reason]++
}

type fakeCatalog struct {
	products map[string]entity.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeCatalog) GetService(context.Context, string) (*entity.Service, error) { return nil, nil }

func (f *fakeCatalog) GetProcesses(context.Context, []string) (map[string]entity.Process, error) {
	return map[string]entity.Process{}, nil
}

func (f *fakeCatalog) ListProcesses(context.Context) ([]entity.Process, error) { return nil, nil }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}
