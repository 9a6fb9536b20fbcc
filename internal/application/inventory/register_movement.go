package inventory

import (
	"context"

	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInput).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.StockTransactionResponse, error) {
	input := MovementInput{
		UserID:          userID,
		InventoryItemID: in.InventoryItemID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		DocumentType:    in.DocumentType,
		DocumentNumber:  in.DocumentNumber,
		Notes:           in.Notes,
	}
	tx, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	out := ToTransactionResponse(*tx)
	return &out, nil
}

// ToTransactionResponse convierte la transacción al DTO de salida.
func ToTransactionResponse(tx entity.StockTransaction) dto.StockTransactionResponse {
	return dto.StockTransactionResponse{
		ID:               tx.ID,
		InventoryItemID:  tx.InventoryItemID,
		Type:             tx.Type,
		Quantity:         tx.Quantity,
		PreviousQuantity: tx.PreviousQuantity,
		NewQuantity:      tx.NewQuantity,
		UnitCost:         tx.UnitCost,
		PreviousPrice:    tx.PreviousPrice,
		NewPrice:         tx.NewPrice,
		DocumentType:     tx.DocumentType,
		DocumentNumber:   tx.DocumentNumber,
		Notes:            tx.Notes,
		CreatedAt:        tx.CreatedAt,
		CreatedBy:        tx.CreatedBy,
	}
}
