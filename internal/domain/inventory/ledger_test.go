package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cost(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: se esperaba %s, se obtuvo %s", msg, want, got.String())
}

func TestWeightedAverageCost(t *testing.T) {
	assertDecimal(t, "6", inventory.WeightedAverageCost(d("10"), d("5"), d("10"), d("7")), "promedio")
	assertDecimal(t, "5", inventory.WeightedAverageCost(d("0"), d("0"), d("10"), d("5")), "desde cero")
	assertDecimal(t, "0", inventory.WeightedAverageCost(d("0"), d("9"), d("0"), d("5")), "total cero")
	// 5 / 3 se redondea a la escala de la columna de costo.
	assertDecimal(t, "1.666667", inventory.WeightedAverageCost(d("1"), d("1"), d("2"), d("2")), "periódico")
}

func TestApply_EscalaDeColumnas(t *testing.T) {
	item := entity.InventoryItem{ID: "v6", Quantity: d("10"), Price: d("1")}

	_, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeOut, Quantity: d("0.00005")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeIn, Quantity: d("1"), UnitCost: cost("2.1234567")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ceros a la derecha no cuentan como decimales.
	_, err = inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeOut, Quantity: d("1.500000")})
	require.NoError(t, err)

	res, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeIn, Quantity: d("20"), UnitCost: cost("2")})
	require.NoError(t, err)
	assertDecimal(t, "1.666667", res.Item.Price, "(10 + 40) / 30")
	assertDecimal(t, "1.666667", res.Transaction.NewPrice, "mismo valor en la transacción")
}

// Escenario completo: 0 → in(10@5) → in(10@7) → out(5) → out(20) rechazado.
func TestApply_EscenarioCompleto(t *testing.T) {
	item := entity.InventoryItem{ID: "v6", Quantity: decimal.Zero, Price: decimal.Zero}

	r1, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeIn, Quantity: d("10"), UnitCost: cost("5")})
	require.NoError(t, err)
	assertDecimal(t, "10", r1.Item.Quantity, "cantidad tras in 1")
	assertDecimal(t, "5", r1.Item.Price, "precio tras in 1")

	r2, err := inventory.Apply(r1.Item, inventory.Operation{Type: entity.TransactionTypeIn, Quantity: d("10"), UnitCost: cost("7")})
	require.NoError(t, err)
	assertDecimal(t, "20", r2.Item.Quantity, "cantidad tras in 2")
	assertDecimal(t, "6", r2.Item.Price, "precio tras in 2")

	r3, err := inventory.Apply(r2.Item, inventory.Operation{Type: entity.TransactionTypeOut, Quantity: d("5")})
	require.NoError(t, err)
	assertDecimal(t, "15", r3.Item.Quantity, "cantidad tras out")
	assertDecimal(t, "6", r3.Item.Price, "precio sin cambio tras out")

	before := r3.Item
	_, err = inventory.Apply(r3.Item, inventory.Operation{Type: entity.TransactionTypeOut, Quantity: d("20")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDecimal(t, "15", r3.Item.Quantity, "cantidad intacta tras rechazo")
	assert.Equal(t, before, r3.Item)
}

func TestApply_RastroDeAuditoria(t *testing.T) {
	item := entity.InventoryItem{ID: "v6", Quantity: d("4"), Price: d("2")}
	res, err := inventory.Apply(item, inventory.Operation{
		Type: entity.TransactionTypeIn, Quantity: d("6"), UnitCost: cost("7"),
		DocumentType: "factura", DocumentNumber: "F-001", By: "u1",
	})
	require.NoError(t, err)

	tx := res.Transaction
	assert.Equal(t, "v6", tx.InventoryItemID)
	assertDecimal(t, "4", tx.PreviousQuantity, "previa")
	assertDecimal(t, "10", tx.NewQuantity, "nueva")
	assertDecimal(t, "2", tx.PreviousPrice, "precio previo")
	assertDecimal(t, "5", tx.NewPrice, "(4×2 + 6×7) / 10")
	assert.Equal(t, "F-001", tx.DocumentNumber)
	assert.False(t, tx.CreatedAt.IsZero())

	// La transacción no comparte el puntero del costo de la operación.
	require.NotNil(t, tx.UnitCost)
	assertDecimal(t, "7", *tx.UnitCost, "costo")
}

func TestApply_Ajuste(t *testing.T) {
	item := entity.InventoryItem{ID: "x", Quantity: d("15"), Price: d("6")}

	res, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeAdjustment, Quantity: d("12")})
	require.NoError(t, err)
	assertDecimal(t, "12", res.Item.Quantity, "valor absoluto")
	assertDecimal(t, "6", res.Item.Price, "precio sin cambio")

	_, err = inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeAdjustment, Quantity: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zero, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeAdjustment, Quantity: d("0")})
	require.NoError(t, err)
	assert.True(t, zero.Item.Quantity.IsZero())
}

func TestApply_DevolucionNoMezclaPrecio(t *testing.T) {
	item := entity.InventoryItem{ID: "x", Quantity: d("10"), Price: d("6")}
	res, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeReturn, Quantity: d("2"), UnitCost: cost("100")})
	require.NoError(t, err)
	assertDecimal(t, "12", res.Item.Quantity, "cantidad")
	assertDecimal(t, "6", res.Item.Price, "precio")
}

func TestApply_EntradaSinCostoConservaPrecio(t *testing.T) {
	item := entity.InventoryItem{ID: "x", Quantity: d("10"), Price: d("6")}
	res, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeIn, Quantity: d("5")})
	require.NoError(t, err)
	assertDecimal(t, "15", res.Item.Quantity, "cantidad")
	assertDecimal(t, "6", res.Item.Price, "precio")
}

func TestApply_Validaciones(t *testing.T) {
	item := entity.InventoryItem{ID: "x", Quantity: d("10")}
	cases := []inventory.Operation{
		{Type: "transfer", Quantity: d("1")},
		{Type: entity.TransactionTypeIn, Quantity: d("0"), UnitCost: cost("1")},
		{Type: entity.TransactionTypeIn, Quantity: d("1"), UnitCost: cost("-1")},
		{Type: entity.TransactionTypeOut, Quantity: d("-3")},
		{Type: entity.TransactionTypeReturn, Quantity: d("0")},
	}
	for _, op := range cases {
		_, err := inventory.Apply(item, op)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "operación %+v", op)
	}
}

func TestApply_CantidadNuncaNegativa(t *testing.T) {
	for _, q := range []string{"10.0001", "11", "1000"} {
		item := entity.InventoryItem{ID: "x", Quantity: d("10"), Price: d("1")}
		_, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeOut, Quantity: d(q)})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock, q)
	}
	item := entity.InventoryItem{ID: "x", Quantity: d("10")}
	res, err := inventory.Apply(item, inventory.Operation{Type: entity.TransactionTypeOut, Quantity: d("10")})
	require.NoError(t, err)
	assert.True(t, res.Item.Quantity.IsZero())
}

func TestNextQuantity(t *testing.T) {
	q, err := inventory.NextQuantity(entity.TransactionTypeIn, d("3"), d("2"))
	require.NoError(t, err)
	assertDecimal(t, "5", q, "in")

	q, err = inventory.NextQuantity(entity.TransactionTypeAdjustment, d("3"), d("8"))
	require.NoError(t, err)
	assertDecimal(t, "8", q, "adjustment")

	_, err = inventory.NextQuantity("otro", d("3"), d("8"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_FechaExplicita(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	res, err := inventory.Apply(entity.InventoryItem{ID: "x"}, inventory.Operation{Type: entity.TransactionTypeIn, Quantity: d("1"), At: at})
	require.NoError(t, err)
	assert.Equal(t, at, res.Transaction.CreatedAt)
	assert.Equal(t, at, res.Item.UpdatedAt)
}
