package inventory

import (
	"context"

	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el ítem y su transacción de stock se escriban juntos o no se escriban.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.StockTransactionRepository,
	) error) error
}

// Metrics registra movimientos aceptados y rechazados (implementado en infrastructure/metrics).
type Metrics interface {
	ObserveMovement(txType string)
	ObserveRejectedMovement(txType, reason string)
}
