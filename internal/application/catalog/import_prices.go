// Package catalog contiene los casos de uso de mantenimiento del catálogo de procesos.
package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
)

// PriceRow fila cruda de una tabla de tarifas: proceso, espesor en mm y precio.
// Row es el número de fila en la hoja (1 = encabezado).
type PriceRow struct {
	Row       int
	Process   string
	Thickness string
	Price     string
}

// PriceTableReader lee las filas de una tabla de tarifas (implementado en infrastructure/xlsx).
type PriceTableReader interface {
	ReadPriceTable(r io.Reader) ([]PriceRow, error)
}

// CacheInvalidator descarta los procesos cacheados después de una importación.
type CacheInvalidator interface {
	InvalidateProcesses(ctx context.Context) error
}

// ImportPricesUseCase actualiza las tarifas por espesor desde una planilla.
type ImportPricesUseCase struct {
	reader      PriceTableReader
	catalogRepo repository.CatalogRepository
	writer      repository.ProcessPriceWriter
	cache       CacheInvalidator
	log         zerolog.Logger
}

// NewImportPricesUseCase construye el caso de uso. cache puede ser nil.
func NewImportPricesUseCase(
	reader PriceTableReader,
	catalogRepo repository.CatalogRepository,
	writer repository.ProcessPriceWriter,
	cache CacheInvalidator,
	log zerolog.Logger,
) *ImportPricesUseCase {
	return &ImportPricesUseCase{
		reader:      reader,
		catalogRepo: catalogRepo,
		writer:      writer,
		cache:       cache,
		log:         log.With().Str("component", "catalog_import").Logger(),
	}
}

// Escalas de las columnas de tarifas: espesor NUMERIC(6,2), precio NUMERIC(18,4).
const (
	thicknessScale = 2
	priceScale     = 4
)

// Import valida la planilla fila por fila y aplica las filas válidas en una sola escritura.
// Las filas inválidas o con procesos desconocidos se reportan y se omiten; si la escritura
// falla no queda aplicada ninguna.
func (uc *ImportPricesUseCase) Import(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	rows, err := uc.reader.ReadPriceTable(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	processes, err := uc.catalogRepo.ListProcesses(ctx)
	if err != nil {
		return nil, err
	}
	byName := indexProcesses(processes)

	summary := &dto.ImportSummary{Rows: len(rows), Errors: []dto.ImportRowError{}}
	skip := func(row int, format string, args ...any) {
		summary.Skipped++
		summary.Errors = append(summary.Errors, dto.ImportRowError{Row: row, Message: fmt.Sprintf(format, args...)})
	}

	var updates []entity.ProcessThicknessPrice
	for _, row := range rows {
		process, ok := byName[foldName(row.Process)]
		if !ok {
			skip(row.Row, "proceso %q no existe", row.Process)
			continue
		}
		thickness, err := parseAmount(row.Thickness)
		if err != nil || !thickness.IsPositive() || !hasScale(thickness, thicknessScale) {
			skip(row.Row, "espesor inválido %q", row.Thickness)
			continue
		}
		price, err := parseAmount(row.Price)
		if err != nil || price.IsNegative() || !hasScale(price, priceScale) {
			skip(row.Row, "precio inválido %q", row.Price)
			continue
		}
		updates = append(updates, entity.ProcessThicknessPrice{ProcessID: process.ID, Thickness: thickness, Price: price})
	}

	if err := uc.writer.UpsertThicknessPrices(ctx, updates); err != nil {
		uc.log.Error().Err(err).Int("rows", len(updates)).Msg("importación de tarifas revertida")
		return nil, fmt.Errorf("importar tarifas (ninguna fila aplicada): %w", err)
	}
	summary.Updated = len(updates)

	if summary.Updated > 0 && uc.cache != nil {
		if err := uc.cache.InvalidateProcesses(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de procesos")
		}
	}
	uc.log.Info().Int("rows", summary.Rows).Int("updated", summary.Updated).Int("skipped", summary.Skipped).Msg("tarifas importadas")
	return summary, nil
}

// indexProcesses indexa por nombre plegado y por ID.
func indexProcesses(processes []entity.Process) map[string]entity.Process {
	out := make(map[string]entity.Process, len(processes)*2)
	for _, p := range processes {
		out[foldName(p.ID)] = p
		out[foldName(p.Name)] = p
	}
	return out
}

// foldName normaliza mayúsculas/minúsculas (incluye acentos en mayúscula: "PULIDO CANTO" == "pulido canto").
func foldName(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

func hasScale(v decimal.Decimal, scale int32) bool {
	return v.Equal(v.Round(scale))
}

// parseAmount acepta coma o punto como separador decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
