package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/application/pricing"
	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalog struct {
	products  map[string]entity.Product
	services  map[string]entity.Service
	processes map[string]entity.Process
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeCatalog) GetService(_ context.Context, id string) (*entity.Service, error) {
	if s, ok := f.services[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeCatalog) GetProcesses(_ context.Context, ids []string) (map[string]entity.Process, error) {
	out := make(map[string]entity.Process)
	for _, id := range ids {
		if p, ok := f.processes[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListProcesses(_ context.Context) ([]entity.Process, error) {
	out := make([]entity.Process, 0, len(f.processes))
	for _, p := range f.processes {
		out = append(out, p)
	}
	return out, nil
}

type fakeItems struct {
	items map[string]entity.InventoryItem
}

func (f *fakeItems) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	if it, ok := f.items[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (f *fakeItems) GetByIDs(_ context.Context, ids []string) (map[string]entity.InventoryItem, error) {
	out := make(map[string]entity.InventoryItem)
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (f *fakeItems) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeItems) UpdateStock(_ context.Context, item *entity.InventoryItem) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItems) ListBelowMinimum(_ context.Context) ([]entity.InventoryItem, error) {
	return nil, nil
}

type countingMetrics struct {
	priced  map[string]int
	missing map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{priced: map[string]int{}, missing: map[string]int{}}
}

func (m *countingMetrics) ObservePricedLine(kind string)       { m.priced[kind]++ }
func (m *countingMetrics) ObserveMissingReference(kind string) { m.missing[kind]++ }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: se esperaba %s, se obtuvo %s", msg, want, got.String())
}

// newFixture catálogo con una ventana de vidrio 6mm (pulido m², biselado ml con tarifa por espesor,
// corte por defecto) y un servicio de instalación.
func newFixture() (*fakeCatalog, *fakeItems) {
	six := d("6")
	catalog := &fakeCatalog{
		products: map[string]entity.Product{
			"ventana": {
				ID: "ventana", Name: "Ventana", Price: d("10"),
				Materials: []entity.ProductMaterial{{
					InventoryItemID: "v6",
					QuantityPerUnit: d("1"),
					HasProcesses:    true,
					ProcessSteps: []entity.ProcessStep{
						{ProcessID: "corte", IsDefault: true},
						{ProcessID: "pulido"},
						{ProcessID: "biselado"},
					},
				}},
			},
		},
		services: map[string]entity.Service{
			"instalacion": {
				ID: "instalacion", Name: "Instalación", Price: d("50"),
				ProcessSteps: []entity.ProcessStep{{ProcessID: "hora", IsFixed: true}},
			},
		},
		processes: map[string]entity.Process{
			"corte":  {ID: "corte", PriceType: entity.PriceTypeSquareMeter, Price: d("99")},
			"pulido": {ID: "pulido", PriceType: entity.PriceTypeSquareMeter, Price: d("4")},
			"biselado": {
				ID: "biselado", PriceType: entity.PriceTypeLinearMeter, Price: d("2"),
				ThicknessPrices: []entity.ThicknessPrice{{Thickness: d("6"), Price: d("3")}},
			},
			"hora": {ID: "hora", PriceType: entity.PriceTypeHour, Price: d("20")},
		},
	}
	items := &fakeItems{items: map[string]entity.InventoryItem{
		"v6": {ID: "v6", Name: "Float 6mm", Type: entity.InventoryItemTypeGlass, GlassThickness: &six},
	}}
	return catalog, items
}

func newUseCase(c *fakeCatalog, i *fakeItems, m pricing.Metrics) *pricing.QuoteUseCase {
	return pricing.NewQuoteUseCase(c, i, m, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// 2000×1250 mm = 2.5 m², cantidad 3, precio 10 → base 75; pulido 4 × 7.5 = 30 → total 105.
func TestPriceItem_ProductoConPulido(t *testing.T) {
	catalog, items := newFixture()
	uc := newUseCase(catalog, items, nil)

	out, err := uc.PriceItem(context.Background(), dto.PriceItemRequest{
		ProductID: "ventana",
		Quantity:  d("3"),
		Width:     d("2000"),
		Height:    d("1250"),
		Materials: []dto.LineMaterialDTO{{
			InventoryItemID: "v6",
			ProcessSteps:    []dto.SelectedStepDTO{{ProcessID: "pulido", Selected: true}},
		}},
	})
	require.NoError(t, err)
	assertDecimal(t, "2.5", out.Area, "área")
	assertDecimal(t, "75", out.BasePrice, "base")
	assertDecimal(t, "30", out.ProcessPrice, "procesos")
	assertDecimal(t, "105", out.Total, "total")
	require.Len(t, out.Processes, 1)
	assert.Equal(t, "pulido", out.Processes[0].ProcessID)
}

// Sin selección del cliente solo aplica el corte por defecto, que no se cobra.
func TestPriceItem_SeleccionPorDefectoNoSeCobra(t *testing.T) {
	catalog, items := newFixture()
	uc := newUseCase(catalog, items, nil)

	out, err := uc.PriceItem(context.Background(), dto.PriceItemRequest{
		ProductID: "ventana", Quantity: d("1"), Width: d("1000"), Height: d("1000"),
	})
	require.NoError(t, err)
	assertDecimal(t, "10", out.Total, "total")
	assert.Empty(t, out.Processes)
}

// Biselado con tarifa de espesor 6mm: 3 × perímetro 4 m × 1 = 12.
func TestPriceItem_TarifaPorEspesor(t *testing.T) {
	catalog, items := newFixture()
	uc := newUseCase(catalog, items, nil)

	out, err := uc.PriceItem(context.Background(), dto.PriceItemRequest{
		ProductID: "ventana", Quantity: d("1"), Width: d("1000"), Height: d("1000"),
		UnitPrice: dp("0"),
		Materials: []dto.LineMaterialDTO{{
			InventoryItemID: "v6",
			ProcessSteps:    []dto.SelectedStepDTO{{ProcessID: "biselado", Selected: true}},
		}},
	})
	require.NoError(t, err)
	assertDecimal(t, "0", out.BasePrice, "base con precio forzado")
	assertDecimal(t, "12", out.ProcessPrice, "biselado")
}

// Un proceso fijo no puede deseleccionarse desde el request.
func TestPriceItem_ServicioConProcesoFijo(t *testing.T) {
	catalog, items := newFixture()
	metrics := newCountingMetrics()
	uc := newUseCase(catalog, items, metrics)

	out, err := uc.PriceItem(context.Background(), dto.PriceItemRequest{
		IsService:    true,
		ServiceID:    "instalacion",
		Quantity:     d("2"),
		ProcessSteps: []dto.SelectedStepDTO{{ProcessID: "hora", Selected: false}},
	})
	require.NoError(t, err)
	assertDecimal(t, "100", out.BasePrice, "base servicio")
	assertDecimal(t, "40", out.ProcessPrice, "horas")
	assert.Equal(t, 1, metrics.priced["service"])
}

func TestPriceItem_ProcesoInexistenteValeCero(t *testing.T) {
	catalog, items := newFixture()
	delete(catalog.processes, "pulido")
	metrics := newCountingMetrics()
	uc := newUseCase(catalog, items, metrics)

	out, err := uc.PriceItem(context.Background(), dto.PriceItemRequest{
		ProductID: "ventana", Quantity: d("1"), Width: d("1000"), Height: d("1000"),
		Materials: []dto.LineMaterialDTO{{
			InventoryItemID: "v6",
			ProcessSteps:    []dto.SelectedStepDTO{{ProcessID: "pulido", Selected: true}},
		}},
	})
	require.NoError(t, err)
	assertDecimal(t, "0", out.ProcessPrice, "procesos")
	assert.Equal(t, 1, metrics.missing["process"])
}

func TestPriceItem_Errores(t *testing.T) {
	catalog, items := newFixture()
	uc := newUseCase(catalog, items, nil)
	ctx := context.Background()

	_, err := uc.PriceItem(ctx, dto.PriceItemRequest{ProductID: "ventana", Quantity: d("0"), Width: d("1"), Height: d("1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "cantidad cero")

	_, err = uc.PriceItem(ctx, dto.PriceItemRequest{ProductID: "ventana", Quantity: d("1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "producto sin medidas")

	_, err = uc.PriceItem(ctx, dto.PriceItemRequest{ProductID: "puerta", Quantity: d("1"), Width: d("1"), Height: d("1")})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "producto inexistente")

	_, err = uc.PriceItem(ctx, dto.PriceItemRequest{IsService: true, ServiceID: "x", Quantity: d("1")})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "servicio inexistente")
}

func TestPriceQuote_Totales(t *testing.T) {
	catalog, items := newFixture()
	uc := newUseCase(catalog, items, nil)

	out, err := uc.PriceQuote(context.Background(), dto.PriceQuoteRequest{Items: []dto.PriceItemRequest{
		{
			ProductID: "ventana", Quantity: d("3"), Width: d("2000"), Height: d("1250"),
			Materials: []dto.LineMaterialDTO{{
				InventoryItemID: "v6",
				ProcessSteps:    []dto.SelectedStepDTO{{ProcessID: "pulido", Selected: true}},
			}},
		},
		{IsService: true, ServiceID: "instalacion", Quantity: d("1")},
	}})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assertDecimal(t, "125", out.BasePrice, "base")
	assertDecimal(t, "50", out.ProcessPrice, "procesos")
	assertDecimal(t, "175", out.Total, "total")
}

func TestPriceQuote_ErrorIndicaLinea(t *testing.T) {
	catalog, items := newFixture()
	uc := newUseCase(catalog, items, nil)

	_, err := uc.PriceQuote(context.Background(), dto.PriceQuoteRequest{Items: []dto.PriceItemRequest{
		{IsService: true, ServiceID: "instalacion", Quantity: d("1")},
		{ProductID: "puerta", Quantity: d("1"), Width: d("1"), Height: d("1")},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.PriceQuote(context.Background(), dto.PriceQuoteRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// 50×25 mm = 0.00125 m²: base 4 × 0.00125 = 0.005 y pulido 4 × 0.00125 = 0.005.
// Cada componente redondea a 0.01; el total es la suma de lo mostrado.
func TestPriceItem_TotalSumaComponentesRedondeados(t *testing.T) {
	catalog, items := newFixture()
	uc := newUseCase(catalog, items, nil)

	four := d("4")
	line := dto.PriceItemRequest{
		ProductID: "ventana",
		Quantity:  d("1"),
		UnitPrice: &four,
		Width:     d("50"),
		Height:    d("25"),
		Materials: []dto.LineMaterialDTO{{
			InventoryItemID: "v6",
			ProcessSteps:    []dto.SelectedStepDTO{{ProcessID: "pulido", Selected: true}},
		}},
	}

	out, err := uc.PriceItem(context.Background(), line)
	require.NoError(t, err)
	assertDecimal(t, "0.01", out.BasePrice, "base")
	assertDecimal(t, "0.01", out.ProcessPrice, "procesos")
	assertDecimal(t, "0.02", out.Total, "total")
	assert.True(t, out.Total.Equal(out.BasePrice.Add(out.ProcessPrice)))

	quote, err := uc.PriceQuote(context.Background(), dto.PriceQuoteRequest{Items: []dto.PriceItemRequest{line, line, line}})
	require.NoError(t, err)
	assertDecimal(t, "0.03", quote.BasePrice, "base cotización")
	assertDecimal(t, "0.03", quote.ProcessPrice, "procesos cotización")
	assertDecimal(t, "0.06", quote.Total, "total cotización")
}

func TestPriceItem_TipoDePrecioDesconocidoValeCero(t *testing.T) {
	catalog, items := newFixture()
	catalog.processes["pulido"] = entity.Process{ID: "pulido", PriceType: "por_docena", Price: d("4")}
	metrics := newCountingMetrics()
	uc := newUseCase(catalog, items, metrics)

	out, err := uc.PriceItem(context.Background(), dto.PriceItemRequest{
		ProductID: "ventana", Quantity: d("1"), Width: d("1000"), Height: d("1000"),
		Materials: []dto.LineMaterialDTO{{
			InventoryItemID: "v6",
			ProcessSteps:    []dto.SelectedStepDTO{{ProcessID: "pulido", Selected: true}},
		}},
	})
	require.NoError(t, err)
	assertDecimal(t, "0", out.ProcessPrice, "procesos")
	assert.Empty(t, out.Processes)
	assert.Equal(t, 1, metrics.missing["process_price_type"])
	assert.Zero(t, metrics.missing["process"])
}
