package entity

import "github.com/shopspring/decimal"

// Dimensions medidas de una línea: Width y Height en milímetros, Area en m².
type Dimensions struct {
	Width  decimal.Decimal
	Height decimal.Decimal
	Area   decimal.Decimal
}

// LineItem línea de una cotización u orden de trabajo.
// Si IsService es true aplican ServiceID y ProcessSteps; si no, ProductID, Dimensions y Materials.
// TotalPrice guarda el precio base y ProcessPrice el de procesos; el total se recalcula siempre.
type LineItem struct {
	ID           string
	IsService    bool
	ProductID    string
	ServiceID    string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Dimensions   Dimensions
	Materials    []LineMaterial
	ProcessSteps []SelectedStep
	TotalPrice   decimal.Decimal
	ProcessPrice decimal.Decimal
}

// LineMaterial material de la línea con sus pasos de proceso seleccionables.
type LineMaterial struct {
	InventoryItemID string
	ProcessSteps    []SelectedStep
}

// SelectedStep estado de selección de un paso de proceso en una línea.
type SelectedStep struct {
	ProcessID string
	IsDefault bool
	IsFixed   bool
	Selected  bool
	Note      string
}
