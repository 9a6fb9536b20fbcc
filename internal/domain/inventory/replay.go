package inventory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
)

// SortChronological devuelve una copia ordenada por fecha de creación (estable ante empates).
func SortChronological(txs []entity.StockTransaction) []entity.StockTransaction {
	out := make([]entity.StockTransaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// VerifyChain comprueba que cada PreviousQuantity coincide con el NewQuantity anterior
// y que NewQuantity es consistente con el tipo y la cantidad. txs debe venir en orden cronológico.
func VerifyChain(txs []entity.StockTransaction) error {
	for i, tx := range txs {
		if i > 0 && !tx.PreviousQuantity.Equal(txs[i-1].NewQuantity) {
			return fmt.Errorf("%w: transacción %s parte de %s pero la anterior dejó %s",
				domain.ErrBrokenLedger, tx.ID, tx.PreviousQuantity, txs[i-1].NewQuantity)
		}
		want, err := NextQuantity(tx.Type, tx.PreviousQuantity, tx.Quantity)
		if err != nil || !want.Equal(tx.NewQuantity) {
			return fmt.Errorf("%w: transacción %s con cantidad resultante %s inválida",
				domain.ErrBrokenLedger, tx.ID, tx.NewQuantity)
		}
	}
	return nil
}

// Replay proyecta el estado del ítem reaplicando sus transacciones en orden cronológico
// sobre el estado inicial. Cantidad y costo promedio resultan del pliegue, nunca del
// precio de una transacción aislada. La primera transacción debe partir de initial.Quantity.
func Replay(initial entity.InventoryItem, txs []entity.StockTransaction) (entity.InventoryItem, error) {
	ordered := SortChronological(txs)
	if len(ordered) > 0 && !ordered[0].PreviousQuantity.Equal(initial.Quantity) {
		return initial, fmt.Errorf("%w: transacción %s parte de %s pero el estado inicial es %s",
			domain.ErrBrokenLedger, ordered[0].ID, ordered[0].PreviousQuantity, initial.Quantity)
	}
	if err := VerifyChain(ordered); err != nil {
		return initial, err
	}
	state := initial
	for _, tx := range ordered {
		res, err := Apply(state, Operation{
			Type:     tx.Type,
			Quantity: tx.Quantity,
			UnitCost: tx.UnitCost,
			At:       tx.CreatedAt,
		})
		if err != nil {
			return state, fmt.Errorf("replay %s: %w", tx.ID, err)
		}
		state = res.Item
	}
	return state, nil
}
