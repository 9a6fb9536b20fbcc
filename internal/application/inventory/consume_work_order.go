package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/inventory"
	"github.com/jhoicas/vidrieria-api/internal/domain/pricing"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// DocumentTypeWorkOrder tipo de documento de las salidas generadas por una orden de trabajo.
const DocumentTypeWorkOrder = "work_order"

// ConsumeWorkOrderUseCase descuenta del inventario los materiales de una orden de trabajo.
// Todas las salidas se registran en una sola transacción: si un ítem no alcanza, no se descuenta ninguno.
type ConsumeWorkOrderUseCase struct {
	txRunner    TxRunner
	catalogRepo repository.CatalogRepository
	metrics     Metrics
	log         zerolog.Logger
}

// NewConsumeWorkOrderUseCase construye el caso de uso. metrics puede ser nil.
func NewConsumeWorkOrderUseCase(
	txRunner TxRunner,
	catalogRepo repository.CatalogRepository,
	metrics Metrics,
	log zerolog.Logger,
) *ConsumeWorkOrderUseCase {
	return &ConsumeWorkOrderUseCase{
		txRunner:    txRunner,
		catalogRepo: catalogRepo,
		metrics:     metrics,
		log:         log.With().Str("component", "work_order").Logger(),
	}
}

// Requirements calcula el consumo agregado de materiales de las líneas de producto.
// Las líneas de servicio no consumen materiales.
func (uc *ConsumeWorkOrderUseCase) Requirements(ctx context.Context, items []dto.PriceItemRequest) ([]pricing.Requirement, error) {
	groups := make([][]pricing.Requirement, 0, len(items))
	for i, in := range items {
		if in.IsService {
			continue
		}
		if in.ProductID == "" {
			return nil, fmt.Errorf("línea %d: %w: product_id requerido", i+1, domain.ErrInvalidInput)
		}
		if !in.Quantity.IsPositive() || !in.Width.IsPositive() || !in.Height.IsPositive() {
			return nil, fmt.Errorf("línea %d: %w: quantity, width y height deben ser mayores a cero", i+1, domain.ErrInvalidInput)
		}
		product, err := uc.catalogRepo.GetProduct(ctx, in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		if product == nil {
			return nil, fmt.Errorf("línea %d: %w: producto %s", i+1, domain.ErrNotFound, in.ProductID)
		}
		line := pricing.SetDimensions(entity.LineItem{ProductID: in.ProductID, Quantity: in.Quantity}, in.Width, in.Height)
		groups = append(groups, pricing.MaterialRequirements(line, *product))
	}
	return pricing.MergeRequirements(groups...), nil
}

// Consume registra una salida por ítem de inventario requerido.
func (uc *ConsumeWorkOrderUseCase) Consume(ctx context.Context, userID string, in dto.ConsumeWorkOrderRequest) (*dto.ConsumeWorkOrderResponse, error) {
	if in.WorkOrderNumber == "" {
		return nil, fmt.Errorf("%w: work_order_number requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden no tiene líneas", domain.ErrInvalidInput)
	}
	reqs, err := uc.Requirements(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	// Bloqueo en orden de ID para que dos órdenes concurrentes no se bloqueen mutuamente.
	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].InventoryItemID < reqs[j].InventoryItemID })

	now := time.Now()
	var created []entity.StockTransaction
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		created = created[:0]
		for _, r := range reqs {
			tx, err := applyInTx(ctx, itemRepo, txRepo, r.InventoryItemID, inventory.Operation{
				Type:           entity.TransactionTypeOut,
				Quantity:       r.Quantity,
				DocumentType:   DocumentTypeWorkOrder,
				DocumentNumber: in.WorkOrderNumber,
				At:             now,
				By:             userID,
			})
			if err != nil {
				return fmt.Errorf("ítem %s: %w", r.InventoryItemID, err)
			}
			created = append(created, *tx)
		}
		return nil
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.ObserveRejectedMovement(entity.TransactionTypeOut, "work_order")
		}
		uc.log.Warn().Err(err).Str("work_order", in.WorkOrderNumber).Msg("consumo de orden rechazado")
		return nil, err
	}

	resp := &dto.ConsumeWorkOrderResponse{
		WorkOrderNumber: in.WorkOrderNumber,
		Transactions:    make([]dto.StockTransactionResponse, 0, len(created)),
	}
	for _, tx := range created {
		if uc.metrics != nil {
			uc.metrics.ObserveMovement(tx.Type)
		}
		resp.Transactions = append(resp.Transactions, ToTransactionResponse(tx))
	}
	uc.log.Info().Str("work_order", in.WorkOrderNumber).Int("items", len(created)).Msg("orden de trabajo descontada")
	return resp, nil
}
