// Package pricing implementa el motor de precios de líneas de cotización y órdenes de trabajo.
//
// Todas las funciones son puras: reciben la línea y el catálogo como valores y devuelven
// resultados nuevos, sin estado retenido entre llamadas. Las medidas se expresan en
// milímetros (ancho/alto) y en m² (área); el perímetro se convierte a metros.
package pricing

import (
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	mmPerMeter = decimal.NewFromInt(1000)
	two        = decimal.NewFromInt(2)
)

// Catalog datos de referencia de solo lectura que el motor consulta.
// Las claves son los IDs de proceso e ítem de inventario.
type Catalog struct {
	Processes map[string]entity.Process
	Items     map[string]entity.InventoryItem
}

// ProcessCharge detalle de un proceso cobrado en la línea.
type ProcessCharge struct {
	InventoryItemID string // vacío en servicios
	ProcessID       string
	PriceType       string
	UnitPrice       decimal.Decimal
	Factor          decimal.Decimal
	Amount          decimal.Decimal
}

// Breakdown resultado del cálculo de una línea.
type Breakdown struct {
	BasePrice    decimal.Decimal
	ProcessPrice decimal.Decimal
	Lines        []ProcessCharge
}

// Total precio base + procesos. No se persiste como campo propio.
func (b Breakdown) Total() decimal.Decimal {
	return b.BasePrice.Add(b.ProcessPrice)
}

// Area devuelve el área en m² a partir de ancho y alto en milímetros.
func Area(width, height decimal.Decimal) decimal.Decimal {
	return width.Div(mmPerMeter).Mul(height.Div(mmPerMeter))
}

// SetDimensions devuelve una copia de la línea con nuevas medidas y el área recalculada.
func SetDimensions(item entity.LineItem, width, height decimal.Decimal) entity.LineItem {
	item.Dimensions = entity.Dimensions{
		Width:  width,
		Height: height,
		Area:   Area(width, height),
	}
	return item
}

// Perimeter devuelve el perímetro en metros: 2 × (ancho + alto) / 1000.
func Perimeter(d entity.Dimensions) decimal.Decimal {
	return two.Mul(d.Width.Add(d.Height)).Div(mmPerMeter)
}

// UnitPriceOrDefault devuelve el precio indicado por el usuario o, si es nil, el del catálogo.
func UnitPriceOrDefault(override *decimal.Decimal, catalogPrice decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return catalogPrice
}

// BasePrice precio base de la línea.
// Producto: área × cantidad × precio unitario. Servicio: cantidad × precio unitario.
func BasePrice(item entity.LineItem) decimal.Decimal {
	if item.IsService {
		return item.Quantity.Mul(item.UnitPrice)
	}
	return item.Dimensions.Area.Mul(item.Quantity).Mul(item.UnitPrice)
}

// EffectiveUnitPrice precio unitario del proceso para el material dado.
// Si el material es vidrio y existe precio para su espesor exacto se usa ese; si no, el precio base.
// Los pasos por defecto nunca se cobran.
func EffectiveUnitPrice(process entity.Process, material *entity.InventoryItem, isDefault bool) decimal.Decimal {
	if isDefault {
		return decimal.Zero
	}
	if material != nil && material.IsGlass() {
		for _, tp := range process.ThicknessPrices {
			if tp.Thickness.Equal(*material.GlassThickness) {
				return tp.Price
			}
		}
	}
	return process.Price
}

// QuantityFactor multiplicador del precio unitario según el tipo de precio del proceso.
func QuantityFactor(priceType string, item entity.LineItem) decimal.Decimal {
	switch priceType {
	case entity.PriceTypeSquareMeter:
		return item.Dimensions.Area.Mul(item.Quantity)
	case entity.PriceTypeLinearMeter:
		return Perimeter(item.Dimensions).Mul(item.Quantity)
	case entity.PriceTypePiece, entity.PriceTypeHour:
		return item.Quantity
	}
	return decimal.Zero
}

// ProcessPrice suma los procesos seleccionados (no por defecto) de la línea.
// Referencias inexistentes en el catálogo aportan cero.
func ProcessPrice(item entity.LineItem, catalog Catalog) (decimal.Decimal, []ProcessCharge) {
	total := decimal.Zero
	var charges []ProcessCharge

	charge := func(materialID string, material *entity.InventoryItem, step entity.SelectedStep) {
		if !step.Selected || step.IsDefault {
			return
		}
		process, ok := catalog.Processes[step.ProcessID]
		if !ok {
			return
		}
		unit := EffectiveUnitPrice(process, material, step.IsDefault)
		factor := QuantityFactor(process.PriceType, item)
		amount := unit.Mul(factor)
		if amount.IsZero() {
			return
		}
		total = total.Add(amount)
		charges = append(charges, ProcessCharge{
			InventoryItemID: materialID,
			ProcessID:       process.ID,
			PriceType:       process.PriceType,
			UnitPrice:       unit,
			Factor:          factor,
			Amount:          amount,
		})
	}

	if item.IsService {
		for _, step := range item.ProcessSteps {
			charge("", nil, step)
		}
		return total, charges
	}

	for _, m := range item.Materials {
		var material *entity.InventoryItem
		if inv, ok := catalog.Items[m.InventoryItemID]; ok {
			material = &inv
		}
		for _, step := range m.ProcessSteps {
			charge(m.InventoryItemID, material, step)
		}
	}
	return total, charges
}

// Price calcula el desglose completo de la línea. Es idempotente.
func Price(item entity.LineItem, catalog Catalog) Breakdown {
	processTotal, lines := ProcessPrice(item, catalog)
	return Breakdown{
		BasePrice:    BasePrice(item),
		ProcessPrice: processTotal,
		Lines:        lines,
	}
}

// Apply devuelve una copia de la línea con el área, TotalPrice y ProcessPrice recalculados.
func Apply(item entity.LineItem, catalog Catalog) entity.LineItem {
	if !item.IsService {
		item = SetDimensions(item, item.Dimensions.Width, item.Dimensions.Height)
	}
	b := Price(item, catalog)
	item.TotalPrice = b.BasePrice
	item.ProcessPrice = b.ProcessPrice
	return item
}
