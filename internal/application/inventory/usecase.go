package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/inventory"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// (in, out, adjustment, return) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	metrics  Metrics
	log      zerolog.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. metrics puede ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, metrics Metrics, log zerolog.Logger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		metrics:  metrics,
		log:      log.With().Str("component", "inventory").Logger(),
	}
}

// MovementInput entrada para registrar un movimiento.
// UnitCost solo se usa en "in" para recalcular el costo promedio ponderado.
type MovementInput struct {
	UserID          string
	InventoryItemID string
	Type            string
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	DocumentType    string
	DocumentNumber  string
	Notes           string
}

// RegisterMovement inicia una transacción, bloquea la fila del ítem, aplica el libro de stock
// y escribe el nuevo estado del ítem y la transacción en la misma tx.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockTransaction, error) {
	if input.InventoryItemID == "" {
		return nil, fmt.Errorf("%w: inventory_item_id requerido", domain.ErrInvalidInput)
	}
	if !inventory.ValidType(input.Type) {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, input.Type)
	}

	op := inventory.Operation{
		Type:           input.Type,
		Quantity:       input.Quantity,
		UnitCost:       input.UnitCost,
		DocumentType:   input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		Notes:          input.Notes,
		At:             time.Now(),
		By:             input.UserID,
	}

	var created *entity.StockTransaction
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		tx, err := applyInTx(ctx, itemRepo, txRepo, input.InventoryItemID, op)
		if err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		uc.rejected(input.Type, err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ObserveMovement(input.Type)
	}
	uc.log.Info().
		Str("item", created.InventoryItemID).
		Str("type", created.Type).
		Str("quantity", created.Quantity.String()).
		Str("new_quantity", created.NewQuantity.String()).
		Str("new_price", created.NewPrice.String()).
		Msg("movimiento registrado")
	return created, nil
}

func (uc *RegisterMovementUseCase) rejected(txType string, err error) {
	reason := "error"
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		reason = "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidInput):
		reason = "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		reason = "not_found"
	}
	if uc.metrics != nil {
		uc.metrics.ObserveRejectedMovement(txType, reason)
	}
	uc.log.Warn().Err(err).Str("type", txType).Str("reason", reason).Msg("movimiento rechazado")
}

// applyInTx bloquea el ítem, calcula el siguiente estado y persiste ítem + transacción.
// La validación ocurre antes de cualquier escritura.
func applyInTx(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	txRepo repository.StockTransactionRepository,
	itemID string,
	op inventory.Operation,
) (*entity.StockTransaction, error) {
	item, err := itemRepo.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	res, err := inventory.Apply(*item, op)
	if err != nil {
		return nil, err
	}
	if err := itemRepo.UpdateStock(ctx, &res.Item); err != nil {
		return nil, err
	}
	tx := res.Transaction
	tx.ID = uuid.New().String()
	if err := txRepo.Create(ctx, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
