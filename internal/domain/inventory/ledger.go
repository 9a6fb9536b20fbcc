package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Operation operación de stock propuesta sobre un ítem.
// Para "adjustment" Quantity es el valor absoluto final, no un delta.
type Operation struct {
	Type           string
	Quantity       decimal.Decimal
	UnitCost       *decimal.Decimal // solo "in": mezcla el costo promedio
	DocumentType   string
	DocumentNumber string
	Notes          string
	At             time.Time
	By             string
}

// Result nuevo estado del ítem y la transacción que lo registra.
type Result struct {
	Item        entity.InventoryItem
	Transaction entity.StockTransaction
}

// ValidType indica si el tipo de transacción es conocido.
func ValidType(t string) bool {
	switch t {
	case entity.TransactionTypeIn, entity.TransactionTypeOut,
		entity.TransactionTypeAdjustment, entity.TransactionTypeReturn:
		return true
	}
	return false
}

// NextQuantity cantidad resultante, función pura de tipo, cantidad previa y cantidad de la operación.
func NextQuantity(txType string, previous, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch txType {
	case entity.TransactionTypeIn, entity.TransactionTypeReturn:
		return previous.Add(quantity), nil
	case entity.TransactionTypeOut:
		next := previous.Sub(quantity)
		if next.IsNegative() {
			return previous, domain.ErrInsufficientStock
		}
		return next, nil
	case entity.TransactionTypeAdjustment:
		if quantity.IsNegative() {
			return previous, domain.ErrInvalidInput
		}
		return quantity, nil
	}
	return previous, domain.ErrInvalidInput
}

func validate(op Operation) error {
	if !ValidType(op.Type) {
		return fmt.Errorf("%w: tipo de transacción %q", domain.ErrInvalidInput, op.Type)
	}
	switch op.Type {
	case entity.TransactionTypeIn, entity.TransactionTypeOut, entity.TransactionTypeReturn:
		if !op.Quantity.IsPositive() {
			return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
		}
	case entity.TransactionTypeAdjustment:
		if op.Quantity.IsNegative() {
			return fmt.Errorf("%w: el ajuste no puede ser negativo", domain.ErrInvalidInput)
		}
	}
	if !hasScale(op.Quantity, QuantityScale) {
		return fmt.Errorf("%w: la cantidad admite hasta %d decimales", domain.ErrInvalidInput, QuantityScale)
	}
	if op.UnitCost != nil {
		if op.UnitCost.IsNegative() {
			return fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidInput)
		}
		if !hasScale(*op.UnitCost, PriceScale) {
			return fmt.Errorf("%w: el costo unitario admite hasta %d decimales", domain.ErrInvalidInput, PriceScale)
		}
	}
	return nil
}

// Apply valida la operación y calcula el nuevo estado del ítem junto con exactamente una transacción.
// Si la operación se rechaza no hay resultado parcial: el ítem recibido no se toca.
func Apply(item entity.InventoryItem, op Operation) (Result, error) {
	if err := validate(op); err != nil {
		return Result{}, err
	}
	newQty, err := NextQuantity(op.Type, item.Quantity, op.Quantity)
	if err != nil {
		return Result{}, err
	}

	newPrice := item.Price
	if op.Type == entity.TransactionTypeIn && op.UnitCost != nil {
		newPrice = WeightedAverageCost(item.Quantity, item.Price, op.Quantity, *op.UnitCost)
	}

	at := op.At
	if at.IsZero() {
		at = time.Now()
	}

	tx := entity.StockTransaction{
		InventoryItemID:  item.ID,
		Type:             op.Type,
		Quantity:         op.Quantity,
		PreviousQuantity: item.Quantity,
		NewQuantity:      newQty,
		PreviousPrice:    item.Price,
		NewPrice:         newPrice,
		DocumentType:     op.DocumentType,
		DocumentNumber:   op.DocumentNumber,
		Notes:            op.Notes,
		CreatedAt:        at,
		CreatedBy:        op.By,
	}
	if op.UnitCost != nil {
		cost := *op.UnitCost
		tx.UnitCost = &cost
	}

	next := item
	next.Quantity = newQty
	next.Price = newPrice
	next.UpdatedAt = at
	return Result{Item: next, Transaction: tx}, nil
}
