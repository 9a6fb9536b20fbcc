package entity

import "github.com/shopspring/decimal"

// Tipos de precio de un proceso.
const (
	PriceTypeSquareMeter = "square_meter" // por m²
	PriceTypeLinearMeter = "linear_meter" // por metro lineal (perímetro)
	PriceTypePiece       = "piece"        // por pieza
	PriceTypeHour        = "hour"         // por hora
)

// Process representa una operación facturable (corte, pulido, templado, perforación...).
// ThicknessPrices sobrescribe Price cuando el material es vidrio del espesor exacto.
type Process struct {
	ID              string
	Name            string
	PriceType       string
	Price           decimal.Decimal
	ThicknessPrices []ThicknessPrice
}

// ThicknessPrice precio del proceso para un espesor de vidrio (mm).
type ThicknessPrice struct {
	Thickness decimal.Decimal
	Price     decimal.Decimal
}

// ProcessThicknessPrice tarifa por espesor de un proceso concreto.
type ProcessThicknessPrice struct {
	ProcessID string
	Thickness decimal.Decimal
	Price     decimal.Decimal
}

// ValidPriceType indica si el tipo de precio es conocido.
func ValidPriceType(t string) bool {
	switch t {
	case PriceTypeSquareMeter, PriceTypeLinearMeter, PriceTypePiece, PriceTypeHour:
		return true
	}
	return false
}
