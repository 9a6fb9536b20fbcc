package pricing

import (
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// Requirement cantidad de un ítem de inventario que consume una línea.
type Requirement struct {
	InventoryItemID string
	Quantity        decimal.Decimal
}

// MaterialRequirements consumo de materiales de una línea de producto:
// QuantityPerUnit × área × cantidad, agregado por ítem y redondeado a la escala de cantidades
// del libro. Los servicios no consumen materiales.
func MaterialRequirements(item entity.LineItem, product entity.Product) []Requirement {
	if item.IsService {
		return nil
	}
	area := Area(item.Dimensions.Width, item.Dimensions.Height)
	index := make(map[string]int)
	var out []Requirement
	for _, m := range product.Materials {
		qty := m.QuantityPerUnit.Mul(area).Mul(item.Quantity).Round(inventory.QuantityScale)
		if !qty.IsPositive() {
			continue
		}
		if i, ok := index[m.InventoryItemID]; ok {
			out[i].Quantity = out[i].Quantity.Add(qty)
			continue
		}
		index[m.InventoryItemID] = len(out)
		out = append(out, Requirement{InventoryItemID: m.InventoryItemID, Quantity: qty})
	}
	return out
}

// MergeRequirements agrega requerimientos de varias líneas conservando el orden de aparición.
func MergeRequirements(groups ...[]Requirement) []Requirement {
	index := make(map[string]int)
	var out []Requirement
	for _, g := range groups {
		for _, r := range g {
			if i, ok := index[r.InventoryItemID]; ok {
				out[i].Quantity = out[i].Quantity.Add(r.Quantity)
				continue
			}
			index[r.InventoryItemID] = len(out)
			out = append(out, r)
		}
	}
	return out
}

// Totals totales de una cotización u orden de trabajo.
type Totals struct {
	BasePrice    decimal.Decimal
	ProcessPrice decimal.Decimal
	Total        decimal.Decimal
}

// Summarize suma los desgloses de todas las líneas.
func Summarize(lines []Breakdown) Totals {
	t := Totals{BasePrice: decimal.Zero, ProcessPrice: decimal.Zero}
	for _, b := range lines {
		t.BasePrice = t.BasePrice.Add(b.BasePrice)
		t.ProcessPrice = t.ProcessPrice.Add(b.ProcessPrice)
	}
	t.Total = t.BasePrice.Add(t.ProcessPrice)
	return t
}
