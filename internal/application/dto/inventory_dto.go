package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para "adjustment" quantity es la cantidad final absoluta.
type RegisterMovementRequest struct {
	InventoryItemID string           `json:"inventory_item_id"`
	Type            string           `json:"type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	DocumentType    string           `json:"document_type,omitempty"`
	DocumentNumber  string           `json:"document_number,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

// StockTransactionResponse transacción registrada.
type StockTransactionResponse struct {
	ID               string           `json:"id"`
	InventoryItemID  string           `json:"inventory_item_id"`
	Type             string           `json:"type"`
	Quantity         decimal.Decimal  `json:"quantity"`
	PreviousQuantity decimal.Decimal  `json:"previous_quantity"`
	NewQuantity      decimal.Decimal  `json:"new_quantity"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	PreviousPrice    decimal.Decimal  `json:"previous_price"`
	NewPrice         decimal.Decimal  `json:"new_price"`
	DocumentType     string           `json:"document_type,omitempty"`
	DocumentNumber   string           `json:"document_number,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	CreatedBy        string           `json:"created_by,omitempty"`
}

// ConsumeWorkOrderRequest body para POST /api/inventory/work-orders/consume.
type ConsumeWorkOrderRequest struct {
	WorkOrderNumber string             `json:"work_order_number"`
	Items           []PriceItemRequest `json:"items"`
}

// ConsumeWorkOrderResponse salidas registradas para la orden de trabajo.
type ConsumeWorkOrderResponse struct {
	WorkOrderNumber string                     `json:"work_order_number"`
	Transactions    []StockTransactionResponse `json:"transactions"`
}

// VolumeDTO volúmenes totales del ítem.
type VolumeDTO struct {
	Inbound       decimal.Decimal `json:"inbound"`
	Outbound      decimal.Decimal `json:"outbound"`
	NetAdjustment decimal.Decimal `json:"net_adjustment"`
	Count         int             `json:"count"`
}

// HistoryPointDTO cantidad después de cada transacción.
type HistoryPointDTO struct {
	At       time.Time       `json:"at"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
}

// TrendBucketDTO volúmenes de una ventana.
type TrendBucketDTO struct {
	Start    string          `json:"start"` // YYYY-MM-DD
	Inbound  decimal.Decimal `json:"inbound"`
	Outbound decimal.Decimal `json:"outbound"`
}

// ForecastDTO pronóstico de agotamiento. days_remaining es null si no hay consumo.
type ForecastDTO struct {
	AverageDailyOutflow decimal.Decimal  `json:"average_daily_outflow"`
	DaysRemaining       *decimal.Decimal `json:"days_remaining"`
	NoConsumption       bool             `json:"no_consumption"`
}

// ItemHistoryResponse respuesta de GET /api/inventory/items/:id/history.
type ItemHistoryResponse struct {
	InventoryItemID string            `json:"inventory_item_id"`
	Name            string            `json:"name"`
	Quantity        decimal.Decimal   `json:"quantity"`
	Price           decimal.Decimal   `json:"price"`
	Bucket          string            `json:"bucket"`
	Volumes         VolumeDTO         `json:"volumes"`
	History         []HistoryPointDTO `json:"history"`
	Trend           []TrendBucketDTO  `json:"trend"`
	Forecast        ForecastDTO       `json:"forecast"`
}

// RebuildResponse comparación entre el estado guardado y la proyección del libro.
type RebuildResponse struct {
	InventoryItemID   string          `json:"inventory_item_id"`
	StoredQuantity    decimal.Decimal `json:"stored_quantity"`
	StoredPrice       decimal.Decimal `json:"stored_price"`
	ProjectedQuantity decimal.Decimal `json:"projected_quantity"`
	ProjectedPrice    decimal.Decimal `json:"projected_price"`
	Transactions      int             `json:"transactions"`
	InSync            bool            `json:"in_sync"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un ítem
// que se encuentra en o por debajo de su cantidad mínima.
type ReplenishmentSuggestionDTO struct {
	InventoryItemID    string           `json:"inventory_item_id"`
	Name               string           `json:"name"`
	Unit               string           `json:"unit"`
	CurrentQuantity    decimal.Decimal  `json:"current_quantity"`
	MinQuantity        decimal.Decimal  `json:"min_quantity"`
	IdealQuantity      decimal.Decimal  `json:"ideal_quantity"`       // MinQuantity * 1.5
	SuggestedOrderQty  decimal.Decimal  `json:"suggested_order_qty"`  // IdealQuantity - CurrentQuantity
	UnitCost           decimal.Decimal  `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal  `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	DaysRemaining      *decimal.Decimal `json:"days_remaining"`       // null = sin consumo
	Priority           int              `json:"priority"`             // 1 = más urgente
}
