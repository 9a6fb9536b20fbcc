// Package pricing contiene los casos de uso de cotización: cargan el catálogo,
// arman la línea y delegan el cálculo en el motor de precios del dominio.
package pricing

import (
	"context"
	"fmt"

	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/vidrieria-api/internal/domain/pricing"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Metrics registra cálculos de precio (implementado en infrastructure/metrics).
type Metrics interface {
	ObservePricedLine(kind string)
	ObserveMissingReference(kind string)
}

// QuoteUseCase calcula precios de líneas de cotización / orden de trabajo.
type QuoteUseCase struct {
	catalogRepo repository.CatalogRepository
	itemRepo    repository.InventoryItemRepository
	metrics     Metrics
	log         zerolog.Logger
}

// NewQuoteUseCase construye el caso de uso. metrics puede ser nil.
func NewQuoteUseCase(
	catalogRepo repository.CatalogRepository,
	itemRepo repository.InventoryItemRepository,
	metrics Metrics,
	log zerolog.Logger,
) *QuoteUseCase {
	return &QuoteUseCase{
		catalogRepo: catalogRepo,
		itemRepo:    itemRepo,
		metrics:     metrics,
		log:         log.With().Str("component", "pricing").Logger(),
	}
}

func validateItem(in dto.PriceItemRequest) error {
	if !in.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit_price negativo", domain.ErrInvalidInput)
	}
	if in.IsService {
		if in.ServiceID == "" {
			return fmt.Errorf("%w: service_id requerido", domain.ErrInvalidInput)
		}
		return nil
	}
	if in.ProductID == "" {
		return fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if !in.Width.IsPositive() || !in.Height.IsPositive() {
		return fmt.Errorf("%w: width y height deben ser mayores a cero", domain.ErrInvalidInput)
	}
	return nil
}

// BuildLine carga el producto o servicio y arma la línea con área y selección de procesos.
func (uc *QuoteUseCase) BuildLine(ctx context.Context, in dto.PriceItemRequest) (entity.LineItem, error) {
	if err := validateItem(in); err != nil {
		return entity.LineItem{}, err
	}
	if in.IsService {
		service, err := uc.catalogRepo.GetService(ctx, in.ServiceID)
		if err != nil {
			return entity.LineItem{}, err
		}
		if service == nil {
			return entity.LineItem{}, fmt.Errorf("%w: servicio %s", domain.ErrNotFound, in.ServiceID)
		}
		return serviceLine(in, *service), nil
	}
	product, err := uc.catalogRepo.GetProduct(ctx, in.ProductID)
	if err != nil {
		return entity.LineItem{}, err
	}
	if product == nil {
		return entity.LineItem{}, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	return productLine(in, *product), nil
}

// loadCatalog carga procesos e ítems referenciados. Las referencias faltantes o inválidas
// se registran y quedan fuera del catálogo (el motor las valora en cero).
func (uc *QuoteUseCase) loadCatalog(ctx context.Context, item entity.LineItem) (domainpricing.Catalog, error) {
	processIDs, itemIDs := referencedIDs(item)
	catalog := domainpricing.Catalog{
		Processes: map[string]entity.Process{},
		Items:     map[string]entity.InventoryItem{},
	}
	if len(processIDs) > 0 {
		processes, err := uc.catalogRepo.GetProcesses(ctx, processIDs)
		if err != nil {
			return catalog, err
		}
		// Un tipo de precio desconocido no tiene factor de cantidad: se trata como ausente.
		for _, id := range processIDs {
			p, ok := processes[id]
			switch {
			case !ok:
				uc.missing("process", id)
			case !entity.ValidPriceType(p.PriceType):
				uc.missing("process_price_type", id)
			default:
				catalog.Processes[id] = p
			}
		}
	}
	if len(itemIDs) > 0 {
		items, err := uc.itemRepo.GetByIDs(ctx, itemIDs)
		if err != nil {
			return catalog, err
		}
		catalog.Items = items
		for _, id := range itemIDs {
			if _, ok := items[id]; !ok {
				uc.missing("inventory_item", id)
			}
		}
	}
	return catalog, nil
}

func (uc *QuoteUseCase) missing(kind, id string) {
	uc.log.Warn().Str("kind", kind).Str("id", id).Msg("referencia de catálogo inexistente o inválida, se valora en cero")
	if uc.metrics != nil {
		uc.metrics.ObserveMissingReference(kind)
	}
}

// PriceItem calcula el desglose de una línea.
func (uc *QuoteUseCase) PriceItem(ctx context.Context, in dto.PriceItemRequest) (*dto.PriceBreakdownResponse, error) {
	out, _, err := uc.priceItem(ctx, in)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *QuoteUseCase) priceItem(ctx context.Context, in dto.PriceItemRequest) (*dto.PriceBreakdownResponse, domainpricing.Breakdown, error) {
	item, err := uc.BuildLine(ctx, in)
	if err != nil {
		return nil, domainpricing.Breakdown{}, err
	}
	catalog, err := uc.loadCatalog(ctx, item)
	if err != nil {
		return nil, domainpricing.Breakdown{}, err
	}
	b := domainpricing.Price(item, catalog)
	if uc.metrics != nil {
		kind := "product"
		if item.IsService {
			kind = "service"
		}
		uc.metrics.ObservePricedLine(kind)
	}
	rounded := roundBreakdown(b)
	return toBreakdownResponse(item, rounded), rounded, nil
}

// roundBreakdown redondea base, procesos e importes a centavos. El total se deriva de los
// componentes ya redondeados para que siempre sume lo que se muestra.
func roundBreakdown(b domainpricing.Breakdown) domainpricing.Breakdown {
	out := domainpricing.Breakdown{
		BasePrice:    b.BasePrice.Round(2),
		ProcessPrice: b.ProcessPrice.Round(2),
		Lines:        make([]domainpricing.ProcessCharge, len(b.Lines)),
	}
	for i, l := range b.Lines {
		l.Amount = l.Amount.Round(2)
		out.Lines[i] = l
	}
	return out
}

// PriceQuote calcula todas las líneas y los totales de la cotización.
func (uc *QuoteUseCase) PriceQuote(ctx context.Context, in dto.PriceQuoteRequest) (*dto.QuoteTotalsResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la cotización no tiene líneas", domain.ErrInvalidInput)
	}
	lines := make([]dto.PriceBreakdownResponse, 0, len(in.Items))
	breakdowns := make([]domainpricing.Breakdown, 0, len(in.Items))
	for i, it := range in.Items {
		out, b, err := uc.priceItem(ctx, it)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		lines = append(lines, *out)
		breakdowns = append(breakdowns, b)
	}
	totals := domainpricing.Summarize(breakdowns)
	return &dto.QuoteTotalsResponse{
		Items:        lines,
		BasePrice:    totals.BasePrice,
		ProcessPrice: totals.ProcessPrice,
		Total:        totals.Total,
	}, nil
}

func toBreakdownResponse(item entity.LineItem, b domainpricing.Breakdown) *dto.PriceBreakdownResponse {
	processes := make([]dto.ProcessChargeDTO, 0, len(b.Lines))
	for _, l := range b.Lines {
		processes = append(processes, dto.ProcessChargeDTO{
			InventoryItemID: l.InventoryItemID,
			ProcessID:       l.ProcessID,
			PriceType:       l.PriceType,
			UnitPrice:       l.UnitPrice,
			Factor:          l.Factor,
			Amount:          l.Amount,
		})
	}
	return &dto.PriceBreakdownResponse{
		ID:           item.ID,
		Area:         item.Dimensions.Area,
		UnitPrice:    item.UnitPrice,
		BasePrice:    b.BasePrice,
		ProcessPrice: b.ProcessPrice,
		Total:        b.Total(),
		Processes:    processes,
	}
}
