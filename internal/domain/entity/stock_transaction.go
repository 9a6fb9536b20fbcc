package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TransactionTypeIn         = "in"         // entrada
	TransactionTypeOut        = "out"        // salida
	TransactionTypeAdjustment = "adjustment" // ajuste absoluto
	TransactionTypeReturn     = "return"     // devolución
)

// StockTransaction registro inmutable del libro de stock.
// PreviousQuantity y NewQuantity se capturan al crear y nunca se recalculan.
type StockTransaction struct {
	ID               string
	InventoryItemID  string
	Type             string
	Quantity         decimal.Decimal
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	UnitCost         *decimal.Decimal
	PreviousPrice    decimal.Decimal
	NewPrice         decimal.Decimal
	DocumentType     string
	DocumentNumber   string
	Notes            string
	CreatedAt        time.Time
	CreatedBy        string
}
