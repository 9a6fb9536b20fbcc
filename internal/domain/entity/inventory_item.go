package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemTypeGlass tipo de ítem para láminas de vidrio (usa GlassThickness).
const InventoryItemTypeGlass = "glass"

// InventoryItem representa un material en existencia.
// Quantity y Price (costo promedio ponderado) solo cambian a través del libro de movimientos.
type InventoryItem struct {
	ID             string
	Name           string
	Type           string
	Unit           string
	Quantity       decimal.Decimal
	Price          decimal.Decimal
	MinQuantity    decimal.Decimal
	GlassThickness *decimal.Decimal // mm, solo si Type == "glass"
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsGlass indica si el ítem es vidrio con espesor conocido.
func (i InventoryItem) IsGlass() bool {
	return i.Type == InventoryItemTypeGlass && i.GlassThickness != nil
}
