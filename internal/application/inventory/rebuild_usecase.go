package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/inventory"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RebuildUseCase proyecta cantidad y costo promedio desde el libro y los compara con lo guardado en el ítem.
type RebuildUseCase struct {
	itemRepo repository.InventoryItemRepository
	txRepo   repository.StockTransactionRepository
}

// NewRebuildUseCase construye el caso de uso.
func NewRebuildUseCase(itemRepo repository.InventoryItemRepository, txRepo repository.StockTransactionRepository) *RebuildUseCase {
	return &RebuildUseCase{itemRepo: itemRepo, txRepo: txRepo}
}

// Rebuild reaplica todas las transacciones desde el estado previo a la primera de ellas.
// Un libro con eslabones rotos devuelve domain.ErrBrokenLedger.
func (uc *RebuildUseCase) Rebuild(ctx context.Context, itemID string) (*dto.RebuildResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	txs, err := uc.txRepo.ListByItem(ctx, itemID, nil, nil)
	if err != nil {
		return nil, err
	}

	txs = inventory.SortChronological(txs)

	// El libro registra de qué estado partió: un ítem con carga inicial no arranca en cero.
	// Un libro vacío no dice nada del costo: se conserva el precio guardado.
	initial := *item
	initial.Quantity = decimal.Zero
	if len(txs) > 0 {
		initial.Quantity = txs[0].PreviousQuantity
		initial.Price = txs[0].PreviousPrice
	}
	projected, err := inventory.Replay(initial, txs)
	if err != nil {
		return nil, err
	}

	return &dto.RebuildResponse{
		InventoryItemID:   item.ID,
		StoredQuantity:    item.Quantity,
		StoredPrice:       item.Price,
		ProjectedQuantity: projected.Quantity,
		ProjectedPrice:    projected.Price,
		Transactions:      len(txs),
		InSync:            inSync(*item, projected),
	}, nil
}

func inSync(stored, projected entity.InventoryItem) bool {
	return stored.Quantity.Equal(projected.Quantity) && stored.Price.Round(4).Equal(projected.Price.Round(4))
}
