package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.CatalogRepository  = (*CatalogRepo)(nil)
	_ repository.ProcessPriceWriter = (*CatalogRepo)(nil)
)

// CatalogRepo lectura del catálogo (productos con BOM, servicios y procesos con tarifas por espesor).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetProduct obtiene el producto con sus materiales y procesos configurados. nil si no existe.
func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	var p entity.Product
	err := r.q.QueryRow(ctx,
		`SELECT id, name, code, price, created_at, updated_at FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Code, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT inventory_item_id, quantity_per_unit, unit, has_processes
		FROM product_materials WHERE product_id = $1 ORDER BY position, inventory_item_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list product materials: %w", err)
	}
	index := make(map[string]int)
	for rows.Next() {
		var m entity.ProductMaterial
		if err := rows.Scan(&m.InventoryItemID, &m.QuantityPerUnit, &m.Unit, &m.HasProcesses); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product material: %w", err)
		}
		index[m.InventoryItemID] = len(p.Materials)
		p.Materials = append(p.Materials, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list product materials: %w", err)
	}

	rows, err = r.q.Query(ctx, `
		SELECT inventory_item_id, process_id, is_default, is_fixed
		FROM product_material_processes WHERE product_id = $1 ORDER BY position, process_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list product processes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var itemID string
		var step entity.ProcessStep
		if err := rows.Scan(&itemID, &step.ProcessID, &step.IsDefault, &step.IsFixed); err != nil {
			return nil, fmt.Errorf("scan product process: %w", err)
		}
		if i, ok := index[itemID]; ok {
			p.Materials[i].ProcessSteps = append(p.Materials[i].ProcessSteps, step)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list product processes: %w", err)
	}
	return &p, nil
}

// GetService obtiene el servicio con sus procesos. nil si no existe.
func (r *CatalogRepo) GetService(ctx context.Context, id string) (*entity.Service, error) {
	if !validID(id) {
		return nil, nil
	}
	var s entity.Service
	err := r.q.QueryRow(ctx, `SELECT id, name, unit, price FROM services WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Unit, &s.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT process_id, is_default, is_fixed
		FROM service_processes WHERE service_id = $1 ORDER BY position, process_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list service processes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var step entity.ProcessStep
		if err := rows.Scan(&step.ProcessID, &step.IsDefault, &step.IsFixed); err != nil {
			return nil, fmt.Errorf("scan service process: %w", err)
		}
		s.ProcessSteps = append(s.ProcessSteps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list service processes: %w", err)
	}
	return &s, nil
}

// GetProcesses obtiene los procesos pedidos con sus tarifas por espesor. Los inexistentes se omiten.
func (r *CatalogRepo) GetProcesses(ctx context.Context, ids []string) (map[string]entity.Process, error) {
	ids = filterIDs(ids)
	if len(ids) == 0 {
		return map[string]entity.Process{}, nil
	}
	return r.loadProcesses(ctx, `WHERE p.id = ANY($1::uuid[])`, ids)
}

// ListProcesses lista todo el catálogo de procesos.
func (r *CatalogRepo) ListProcesses(ctx context.Context) ([]entity.Process, error) {
	byID, err := r.loadProcesses(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]entity.Process, 0, len(byID))
	for _, p := range byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *CatalogRepo) loadProcesses(ctx context.Context, where string, args ...any) (map[string]entity.Process, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.price_type, p.price, t.thickness, t.price
		FROM processes p
		LEFT JOIN process_thickness_prices t ON t.process_id = p.id
		`+where+`
		ORDER BY p.name, t.thickness`, args...)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]entity.Process)
	for rows.Next() {
		var (
			p                     entity.Process
			thickness, thickPrice *decimal.Decimal
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceType, &p.Price, &thickness, &thickPrice); err != nil {
			return nil, fmt.Errorf("scan process: %w", err)
		}
		cur, ok := out[p.ID]
		if !ok {
			cur = p
		}
		if thickness != nil && thickPrice != nil {
			cur.ThicknessPrices = append(cur.ThicknessPrices, entity.ThicknessPrice{Thickness: *thickness, Price: *thickPrice})
		}
		out[p.ID] = cur
	}
	return out, rows.Err()
}

const upsertThicknessPriceSQL = `
	INSERT INTO process_thickness_prices (process_id, thickness, price)
	VALUES ($1, $2, $3)
	ON CONFLICT (process_id, thickness) DO UPDATE SET price = EXCLUDED.price`

// UpsertThicknessPrices crea o reemplaza las tarifas por espesor en una sola transacción.
func (r *CatalogRepo) UpsertThicknessPrices(ctx context.Context, prices []entity.ProcessThicknessPrice) error {
	if len(prices) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		for _, p := range prices {
			if _, err := tx.Exec(ctx, upsertThicknessPriceSQL, p.ProcessID, p.Thickness, p.Price); err != nil {
				return fmt.Errorf("upsert thickness price %s (%s mm): %w", p.ProcessID, p.Thickness, err)
			}
		}
		return nil
	})
}
