package entity

import "github.com/shopspring/decimal"

// Service representa un servicio vendible (instalación, medición, corte a pedido).
// Unit define la semántica de la cantidad (hour, piece, square_meter, linear_meter);
// el precio base siempre es Quantity × UnitPrice.
type Service struct {
	ID           string
	Name         string
	Unit         string
	Price        decimal.Decimal
	ProcessSteps []ProcessStep
}
