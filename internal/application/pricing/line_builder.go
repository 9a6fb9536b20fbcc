package pricing

import (
	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/vidrieria-api/internal/domain/pricing"
)

// overlaySteps aplica la selección enviada por el cliente sobre la selección del catálogo.
// Los flags IsDefault/IsFixed siempre vienen del catálogo; procesos no configurados se ignoran.
func overlaySteps(catalogSteps []entity.SelectedStep, requested []dto.SelectedStepDTO) []entity.SelectedStep {
	out := make([]entity.SelectedStep, len(catalogSteps))
	copy(out, catalogSteps)
	for _, r := range requested {
		for i := range out {
			if out[i].ProcessID == r.ProcessID {
				out[i].Selected = r.Selected
				out[i].Note = r.Note
			}
		}
	}
	return domainpricing.EnforceFixed(out)
}

// productLine construye la línea de producto: materiales del BOM con la selección del cliente encima.
func productLine(in dto.PriceItemRequest, product entity.Product) entity.LineItem {
	materials := domainpricing.LinesFromProduct(product)
	if len(in.Materials) > 0 {
		requested := make(map[string][]dto.SelectedStepDTO, len(in.Materials))
		for _, m := range in.Materials {
			requested[m.InventoryItemID] = append(requested[m.InventoryItemID], m.ProcessSteps...)
		}
		for i := range materials {
			if steps, ok := requested[materials[i].InventoryItemID]; ok {
				materials[i].ProcessSteps = overlaySteps(materials[i].ProcessSteps, steps)
			}
		}
	}

	item := entity.LineItem{
		ID:        in.ID,
		ProductID: product.ID,
		Quantity:  in.Quantity,
		UnitPrice: domainpricing.UnitPriceOrDefault(in.UnitPrice, product.Price),
		Materials: materials,
	}
	return domainpricing.SetDimensions(item, in.Width, in.Height)
}

// serviceLine construye la línea de servicio con los procesos propios del servicio.
func serviceLine(in dto.PriceItemRequest, service entity.Service) entity.LineItem {
	steps := domainpricing.NewSelection(service.ProcessSteps)
	if len(in.ProcessSteps) > 0 {
		steps = overlaySteps(steps, in.ProcessSteps)
	}
	item := entity.LineItem{
		ID:           in.ID,
		IsService:    true,
		ServiceID:    service.ID,
		Quantity:     in.Quantity,
		UnitPrice:    domainpricing.UnitPriceOrDefault(in.UnitPrice, service.Price),
		ProcessSteps: steps,
	}
	if in.Width.IsPositive() && in.Height.IsPositive() {
		item = domainpricing.SetDimensions(item, in.Width, in.Height)
	}
	return item
}

// referencedIDs procesos seleccionados e ítems de inventario referenciados por la línea.
func referencedIDs(item entity.LineItem) (processIDs, itemIDs []string) {
	seen := make(map[string]bool)
	add := func(steps []entity.SelectedStep) {
		for _, s := range steps {
			if s.Selected && !seen[s.ProcessID] {
				seen[s.ProcessID] = true
				processIDs = append(processIDs, s.ProcessID)
			}
		}
	}
	add(item.ProcessSteps)
	for _, m := range item.Materials {
		itemIDs = append(itemIDs, m.InventoryItemID)
		add(m.ProcessSteps)
	}
	return processIDs, itemIDs
}
