package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vidrieria-api/internal/application/dto"
)

// QuoteService cotización de líneas (implementado por pricing.QuoteUseCase).
type QuoteService interface {
	PriceItem(ctx context.Context, in dto.PriceItemRequest) (*dto.PriceBreakdownResponse, error)
	PriceQuote(ctx context.Context, in dto.PriceQuoteRequest) (*dto.QuoteTotalsResponse, error)
}

// PricingHandler maneja las peticiones HTTP del motor de precios.
type PricingHandler struct {
	uc QuoteService
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc QuoteService) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// PriceItem godoc
// @Summary      Calcular precio de una línea
// @Description  Precio base (área × cantidad × precio unitario) más procesos seleccionados. Medidas en mm.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PriceItemRequest  true  "Producto o servicio con medidas y selección de procesos"
// @Success      200   {object}  dto.PriceBreakdownResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pricing/items [post]
func (h *PricingHandler) PriceItem(c *fiber.Ctx) error {
	var in dto.PriceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.PriceItem(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PriceQuote godoc
// @Summary      Calcular cotización completa
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PriceQuoteRequest  true  "Líneas de la cotización"
// @Success      200   {object}  dto.QuoteTotalsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pricing/quotes [post]
func (h *PricingHandler) PriceQuote(c *fiber.Ctx) error {
	var in dto.PriceQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.PriceQuote(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
