package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vidrieria-api/internal/application/dto"
)

// MovementService registro de movimientos (implementado por inventory.RegisterMovementUseCase).
type MovementService interface {
	RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.StockTransactionResponse, error)
}

// WorkOrderService descuento de materiales (implementado por inventory.ConsumeWorkOrderUseCase).
type WorkOrderService interface {
	Consume(ctx context.Context, userID string, in dto.ConsumeWorkOrderRequest) (*dto.ConsumeWorkOrderResponse, error)
}

// HistoryService analíticas del libro (implementado por inventory.HistoryUseCase).
type HistoryService interface {
	GetHistory(ctx context.Context, itemID, bucket string) (*dto.ItemHistoryResponse, error)
}

// RebuildService proyección del libro (implementado por inventory.RebuildUseCase).
type RebuildService interface {
	Rebuild(ctx context.Context, itemID string) (*dto.RebuildResponse, error)
}

// ReplenishmentService lista de reposición (implementado por inventory.ReplenishmentUseCase).
type ReplenishmentService interface {
	GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error)
}

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario.
type InventoryHandler struct {
	movements     MovementService
	workOrders    WorkOrderService
	history       HistoryService
	rebuild       RebuildService
	replenishment ReplenishmentService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements MovementService,
	workOrders WorkOrderService,
	history HistoryService,
	rebuild RebuildService,
	replenishment ReplenishmentService,
) *InventoryHandler {
	return &InventoryHandler{
		movements:     movements,
		workOrders:    workOrders,
		history:       history,
		rebuild:       rebuild,
		replenishment: replenishment,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  in (con unit_cost recalcula el costo promedio), out, adjustment (cantidad absoluta) o return.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  false  "Autor del movimiento"
// @Param        body  body  dto.RegisterMovementRequest  true  "inventory_item_id, type, quantity, unit_cost (entradas)"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.movements.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConsumeWorkOrder godoc
// @Summary      Descontar materiales de una orden de trabajo
// @Description  Una salida por ítem de inventario; si alguno no alcanza no se descuenta ninguno.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  false  "Autor del movimiento"
// @Param        body  body  dto.ConsumeWorkOrderRequest  true  "Número de orden y líneas"
// @Success      201   {object}  dto.ConsumeWorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/work-orders/consume [post]
func (h *InventoryHandler) ConsumeWorkOrder(c *fiber.Ctx) error {
	var in dto.ConsumeWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.workOrders.Consume(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetHistory godoc
// @Summary      Historial y analíticas de un ítem
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        bucket  query  string  false  "day | week | month (default day)"
// @Success      200  {object}  dto.ItemHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/history [get]
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	out, err := h.history.GetHistory(c.UserContext(), c.Params("id"), c.Query("bucket"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rebuild godoc
// @Summary      Reconstruir estado desde el libro
// @Description  Reaplica las transacciones y compara con la cantidad y costo guardados.
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.RebuildResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/rebuild [get]
func (h *InventoryHandler) Rebuild(c *fiber.Ctx) error {
	out, err := h.rebuild.Rebuild(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Ítems en o bajo su mínimo con la cantidad sugerida de pedido,
//
//	ordenados por días restantes estimados y déficit.
//
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
