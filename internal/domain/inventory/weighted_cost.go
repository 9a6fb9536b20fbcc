package inventory

import "github.com/shopspring/decimal"

// Escalas de las columnas del libro (NUMERIC(18,4) para cantidades, NUMERIC(18,6) para costos).
// Los valores calculados se redondean a estas escalas antes de salir del dominio.
const (
	QuantityScale = 4
	PriceScale    = 6
)

// WeightedAverageCost costo promedio ponderado tras una entrada:
// (onHand × onHandCost + inbound × inboundCost) / (onHand + inbound), redondeado a PriceScale.
// Si la cantidad resultante no es positiva devuelve cero.
func WeightedAverageCost(onHand, onHandCost, inbound, inboundCost decimal.Decimal) decimal.Decimal {
	total := onHand.Add(inbound)
	if !total.IsPositive() {
		return decimal.Zero
	}
	value := onHand.Mul(onHandCost).Add(inbound.Mul(inboundCost))
	return value.DivRound(total, PriceScale)
}

// hasScale indica si v no tiene más decimales que scale.
func hasScale(v decimal.Decimal, scale int32) bool {
	return v.Equal(v.Round(scale))
}
