package repository

import (
	"context"

	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
)

// CatalogRepository define el puerto de lectura del catálogo (productos, servicios, procesos)
// consumido por el motor de precios. Los IDs inexistentes se omiten del resultado (sin error).
type CatalogRepository interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	GetService(ctx context.Context, id string) (*entity.Service, error)
	GetProcesses(ctx context.Context, ids []string) (map[string]entity.Process, error)
	ListProcesses(ctx context.Context) ([]entity.Process, error)
}

// ProcessPriceWriter define el puerto de escritura de tarifas por espesor.
// UpsertThicknessPrices aplica todas las tarifas o ninguna.
type ProcessPriceWriter interface {
	UpsertThicknessPrices(ctx context.Context, prices []entity.ProcessThicknessPrice) error
}
