package pricing

import "github.com/jhoicas/vidrieria-api/internal/domain/entity"

// NoteKey identifica la nota libre de un proceso para un material.
type NoteKey struct {
	InventoryItemID string
	ProcessID       string
}

// Notes notas libres ingresadas previamente por el usuario.
type Notes map[NoteKey]string

// NewSelection construye el estado inicial de selección: pasos por defecto y fijos preseleccionados.
func NewSelection(steps []entity.ProcessStep) []entity.SelectedStep {
	out := make([]entity.SelectedStep, 0, len(steps))
	for _, s := range steps {
		out = append(out, entity.SelectedStep{
			ProcessID: s.ProcessID,
			IsDefault: s.IsDefault,
			IsFixed:   s.IsFixed,
			Selected:  s.IsDefault || s.IsFixed,
		})
	}
	return out
}

// EnforceFixed devuelve una copia donde todos los pasos fijos quedan seleccionados.
func EnforceFixed(steps []entity.SelectedStep) []entity.SelectedStep {
	out := make([]entity.SelectedStep, len(steps))
	copy(out, steps)
	for i := range out {
		if out[i].IsFixed {
			out[i].Selected = true
		}
	}
	return out
}

// Toggle alterna la selección del proceso para el material dado y devuelve una copia.
// Un paso fijo seleccionado no cambia. Al activar se copia la nota previa; al desactivar
// solo se limpia Selected (la nota la descarta el llamador si quiere).
func Toggle(steps []entity.SelectedStep, inventoryItemID, processID string, notes Notes) []entity.SelectedStep {
	out := make([]entity.SelectedStep, len(steps))
	copy(out, steps)
	for i := range out {
		if out[i].ProcessID != processID {
			continue
		}
		if out[i].IsFixed && out[i].Selected {
			return out
		}
		out[i].Selected = !out[i].Selected
		if out[i].Selected {
			if note, ok := notes[NoteKey{InventoryItemID: inventoryItemID, ProcessID: processID}]; ok {
				out[i].Note = note
			}
		}
		return out
	}
	return out
}

// SelectedProcessIDs IDs de los pasos seleccionados, en orden.
func SelectedProcessIDs(steps []entity.SelectedStep) []string {
	var ids []string
	for _, s := range steps {
		if s.Selected {
			ids = append(ids, s.ProcessID)
		}
	}
	return ids
}

// LinesFromProduct materiales iniciales de una línea a partir del BOM del producto.
// Los materiales sin procesos no llevan pasos.
func LinesFromProduct(product entity.Product) []entity.LineMaterial {
	out := make([]entity.LineMaterial, 0, len(product.Materials))
	for _, m := range product.Materials {
		lm := entity.LineMaterial{InventoryItemID: m.InventoryItemID}
		if m.HasProcesses {
			lm.ProcessSteps = NewSelection(m.ProcessSteps)
		}
		out = append(out, lm)
	}
	return out
}
