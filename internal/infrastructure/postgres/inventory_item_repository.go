package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `id, name, type, unit, quantity, price, min_quantity, glass_thickness, created_at, updated_at`

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Name, &it.Type, &it.Unit, &it.Quantity, &it.Price, &it.MinQuantity,
		&it.GlassThickness, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID obtiene un ítem por ID. Devuelve nil si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !validID(id) {
		return nil, nil
	}
	it, err := scanInventoryItem(r.q.QueryRow(ctx,
		`SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetByIDs obtiene varios ítems indexados por ID. Los inexistentes se omiten.
func (r *InventoryItemRepo) GetByIDs(ctx context.Context, ids []string) (map[string]entity.InventoryItem, error) {
	out := make(map[string]entity.InventoryItem, len(ids))
	ids = filterIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out[it.ID] = *it
	}
	return out, rows.Err()
}

// GetForUpdate obtiene el ítem con SELECT FOR UPDATE (bloqueo de fila). Debe usarse dentro de una tx.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !validID(id) {
		return nil, nil
	}
	it, err := scanInventoryItem(r.q.QueryRow(ctx,
		`SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return it, nil
}

// UpdateStock escribe cantidad y costo promedio en una sola sentencia.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, item *entity.InventoryItem) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity = $2, price = $3, updated_at = $4 WHERE id = $1`,
		item.ID, item.Quantity, item.Price, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBelowMinimum lista los ítems con cantidad en o bajo su mínimo (min_quantity > 0).
func (r *InventoryItemRepo) ListBelowMinimum(ctx context.Context) ([]entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+inventoryItemColumns+`
		FROM inventory_items
		WHERE min_quantity > 0 AND quantity <= min_quantity
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list items below minimum: %w", err)
	}
	defer rows.Close()
	var out []entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}
