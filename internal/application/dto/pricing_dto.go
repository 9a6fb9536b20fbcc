package dto

import "github.com/shopspring/decimal"

// SelectedStepDTO estado de selección de un proceso.
type SelectedStepDTO struct {
	ProcessID string `json:"process_id"`
	Selected  bool   `json:"selected"`
	Note      string `json:"note,omitempty"`
}

// LineMaterialDTO material de la línea con sus procesos seleccionados.
type LineMaterialDTO struct {
	InventoryItemID string            `json:"inventory_item_id"`
	ProcessSteps    []SelectedStepDTO `json:"process_steps"`
}

// PriceItemRequest body para POST /api/pricing/items.
// Width y Height en milímetros. Si Materials (producto) o ProcessSteps (servicio) vienen vacíos
// se usa la selección por defecto del catálogo. UnitPrice nil = precio de catálogo.
type PriceItemRequest struct {
	ID           string            `json:"id,omitempty"`
	IsService    bool              `json:"is_service"`
	ProductID    string            `json:"product_id,omitempty"`
	ServiceID    string            `json:"service_id,omitempty"`
	Quantity     decimal.Decimal   `json:"quantity"`
	UnitPrice    *decimal.Decimal  `json:"unit_price,omitempty"`
	Width        decimal.Decimal   `json:"width"`
	Height       decimal.Decimal   `json:"height"`
	Materials    []LineMaterialDTO `json:"materials,omitempty"`
	ProcessSteps []SelectedStepDTO `json:"process_steps,omitempty"`
}

// ProcessChargeDTO detalle de un proceso cobrado.
type ProcessChargeDTO struct {
	InventoryItemID string          `json:"inventory_item_id,omitempty"`
	ProcessID       string          `json:"process_id"`
	PriceType       string          `json:"price_type"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Factor          decimal.Decimal `json:"factor"`
	Amount          decimal.Decimal `json:"amount"`
}

// PriceBreakdownResponse desglose de precio de una línea.
type PriceBreakdownResponse struct {
	ID           string             `json:"id,omitempty"`
	Area         decimal.Decimal    `json:"area"`
	UnitPrice    decimal.Decimal    `json:"unit_price"`
	BasePrice    decimal.Decimal    `json:"base_price"`
	ProcessPrice decimal.Decimal    `json:"process_price"`
	Total        decimal.Decimal    `json:"total"`
	Processes    []ProcessChargeDTO `json:"processes"`
}

// PriceQuoteRequest body para POST /api/pricing/quotes.
type PriceQuoteRequest struct {
	Items []PriceItemRequest `json:"items"`
}

// QuoteTotalsResponse desglose por línea y totales de la cotización.
type QuoteTotalsResponse struct {
	Items        []PriceBreakdownResponse `json:"items"`
	BasePrice    decimal.Decimal          `json:"base_price"`
	ProcessPrice decimal.Decimal          `json:"process_price"`
	Total        decimal.Decimal          `json:"total"`
}
