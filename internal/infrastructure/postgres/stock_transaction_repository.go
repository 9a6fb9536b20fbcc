package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo libro append-only de transacciones de stock.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create inserta la transacción. No existe Update ni Delete.
func (r *StockTransactionRepo) Create(ctx context.Context, tx *entity.StockTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_transactions (
			id, inventory_item_id, type, quantity, previous_quantity, new_quantity, unit_cost,
			previous_price, new_price, document_type, document_number, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		tx.ID, tx.InventoryItemID, tx.Type, tx.Quantity, tx.PreviousQuantity, tx.NewQuantity, tx.UnitCost,
		tx.PreviousPrice, tx.NewPrice, tx.DocumentType, tx.DocumentNumber, tx.Notes, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transacción %s", domain.ErrDuplicate, tx.ID)
		}
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// ListByItem lista las transacciones del ítem en orden de inserción, opcionalmente acotadas por fecha.
func (r *StockTransactionRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time) ([]entity.StockTransaction, error) {
	if !validID(itemID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, inventory_item_id, type, quantity, previous_quantity, new_quantity, unit_cost,
		       previous_price, new_price, document_type, document_number, notes, created_at, created_by
		FROM stock_transactions
		WHERE inventory_item_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at, seq`, itemID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	var out []entity.StockTransaction
	for rows.Next() {
		var tx entity.StockTransaction
		if err := rows.Scan(
			&tx.ID, &tx.InventoryItemID, &tx.Type, &tx.Quantity, &tx.PreviousQuantity, &tx.NewQuantity, &tx.UnitCost,
			&tx.PreviousPrice, &tx.NewPrice, &tx.DocumentType, &tx.DocumentNumber, &tx.Notes, &tx.CreatedAt, &tx.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}
