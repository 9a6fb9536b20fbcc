package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Quote            QuoteService
	RegisterMovement MovementService
	ConsumeWorkOrder WorkOrderService
	History          HistoryService
	Rebuild          RebuildService
	Replenishment    ReplenishmentService
	ImportPrices     PriceImportService
	MetricsHandler   http.Handler // nil = /metrics deshabilitado
	ServiceName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api", IdentityMiddleware())

	// Pricing
	pricingHandler := NewPricingHandler(deps.Quote)
	pricingGroup := api.Group("/pricing")
	pricingGroup.Post("/items", pricingHandler.PriceItem)
	pricingGroup.Post("/quotes", pricingHandler.PriceQuote)

	// Inventory
	inventoryHandler := NewInventoryHandler(
		deps.RegisterMovement, deps.ConsumeWorkOrder, deps.History, deps.Rebuild, deps.Replenishment,
	)
	invGroup := api.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/work-orders/consume", inventoryHandler.ConsumeWorkOrder)
	invGroup.Get("/items/:id/history", inventoryHandler.GetHistory)
	invGroup.Get("/items/:id/rebuild", inventoryHandler.Rebuild)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Catalog
	catalogHandler := NewCatalogHandler(deps.ImportPrices)
	catalogGroup := api.Group("/catalog")
	catalogGroup.Post("/process-prices/import", catalogHandler.ImportProcessPrices)
}
