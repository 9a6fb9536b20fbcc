package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
)

// StockTransactionRepository define el puerto append-only del libro de stock.
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	// ListByItem devuelve las transacciones del ítem en orden cronológico ascendente.
	ListByItem(ctx context.Context, itemID string, from, to *time.Time) ([]entity.StockTransaction, error)
}
