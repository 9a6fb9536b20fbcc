package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vidrieria-api/internal/application/dto"
)

// PriceImportService importación de tarifas (implementado por catalog.ImportPricesUseCase).
type PriceImportService interface {
	Import(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)
}

// CatalogHandler maneja el mantenimiento del catálogo.
type CatalogHandler struct {
	importer PriceImportService
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(importer PriceImportService) *CatalogHandler {
	return &CatalogHandler{importer: importer}
}

// ImportProcessPrices godoc
// @Summary      Importar tarifas por espesor desde Excel
// @Description  Columnas: process, thickness_mm, price. El nombre del proceso no distingue mayúsculas.
// @Tags         catalog
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Planilla .xlsx"
// @Success      200  {object}  dto.ImportSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog/process-prices/import [post]
func (h *CatalogHandler) ImportProcessPrices(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer func() { _ = f.Close() }()

	out, err := h.importer.Import(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
