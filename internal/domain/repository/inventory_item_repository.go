package repository

import (
	"context"

	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para ítems de inventario.
// Quantity y Price solo se escriben juntos mediante UpdateStock.
type InventoryItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del ítem hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	UpdateStock(ctx context.Context, item *entity.InventoryItem) error
	// ListBelowMinimum devuelve los ítems con cantidad menor o igual a su mínimo.
	ListBelowMinimum(ctx context.Context) ([]entity.InventoryItem, error)
}
