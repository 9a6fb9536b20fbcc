package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo (ej. vidrio templado, espejo biselado).
// Price es el precio base por m²; Materials es la lista de materiales (BOM) por unidad de área.
type Product struct {
	ID        string
	Name      string
	Code      string
	Price     decimal.Decimal
	Materials []ProductMaterial
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductMaterial línea de la lista de materiales de un producto.
// QuantityPerUnit es la cantidad del ítem de inventario consumida por m² de producto.
type ProductMaterial struct {
	InventoryItemID string
	QuantityPerUnit decimal.Decimal
	Unit            string
	HasProcesses    bool
	ProcessSteps    []ProcessStep // ordenados
}

// ProcessStep paso de proceso configurado en el catálogo.
// IsDefault: se preselecciona y nunca se cobra. IsFixed: obligatorio, no se puede deseleccionar.
type ProcessStep struct {
	ProcessID string
	IsDefault bool
	IsFixed   bool
}
