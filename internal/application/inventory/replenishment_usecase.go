package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase genera la lista de reposición de ítems en o bajo su cantidad mínima.
// Combina el stock actual con el pronóstico de agotamiento para priorizar los ítems críticos.
type ReplenishmentUseCase struct {
	itemRepo repository.InventoryItemRepository
	txRepo   repository.StockTransactionRepository
	now      func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	itemRepo repository.InventoryItemRepository,
	txRepo repository.StockTransactionRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		now:      time.Now,
	}
}

// GenerateReplenishmentList devuelve los ítems bajo mínimo con la cantidad sugerida de pedido
// valorizada al costo promedio ponderado y un ranking de prioridad.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {

	// 1. Ítems en o por debajo del mínimo
	items, err := uc.itemRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	now := uc.now()
	factor := decimal.NewFromFloat(1.5)

	// 2. Construir los DTOs con pronóstico de los últimos 30 días
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, item := range items {
		ideal := item.MinQuantity.Mul(factor)
		suggestedQty := ideal.Sub(item.Quantity)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}

		forecast, err := forecastFor(ctx, uc.txRepo, item, now)
		if err != nil {
			return nil, err
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			InventoryItemID:    item.ID,
			Name:               item.Name,
			Unit:               item.Unit,
			CurrentQuantity:    item.Quantity,
			MinQuantity:        item.MinQuantity,
			IdealQuantity:      ideal,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           item.Price,
			EstimatedOrderCost: suggestedQty.Mul(item.Price).Round(2),
			DaysRemaining:      forecast.DaysRemaining,
		})
	}

	// 3. Ordenar: primero menos días restantes (sin consumo al final),
	//    luego mayor déficit bajo el mínimo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		switch {
		case a.DaysRemaining != nil && b.DaysRemaining == nil:
			return true
		case a.DaysRemaining == nil && b.DaysRemaining != nil:
			return false
		case a.DaysRemaining != nil && !a.DaysRemaining.Equal(*b.DaysRemaining):
			return a.DaysRemaining.LessThan(*b.DaysRemaining)
		}
		defA := a.MinQuantity.Sub(a.CurrentQuantity)
		defB := b.MinQuantity.Sub(b.CurrentQuantity)
		return defA.GreaterThan(defB)
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
