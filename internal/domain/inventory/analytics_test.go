package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/inventory"
)

func tx(typ, qty, prev, next string, at time.Time) entity.StockTransaction {
	return entity.StockTransaction{Type: typ, Quantity: d(qty), PreviousQuantity: d(prev), NewQuantity: d(next), CreatedAt: at}
}

func TestVolumes(t *testing.T) {
	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s := inventory.Volumes([]entity.StockTransaction{
		tx(entity.TransactionTypeIn, "10", "0", "10", at),
		tx(entity.TransactionTypeOut, "4", "10", "6", at),
		tx(entity.TransactionTypeReturn, "1", "6", "7", at),
		tx(entity.TransactionTypeAdjustment, "5", "7", "5", at),
		tx("desconocido", "99", "0", "0", at),
	})
	assertDecimal(t, "11", s.Inbound, "entradas")
	assertDecimal(t, "4", s.Outbound, "salidas")
	assertDecimal(t, "-2", s.NetAdjustment, "ajuste neto")
	assert.Equal(t, 4, s.Count)

	empty := inventory.Volumes(nil)
	assert.True(t, empty.Inbound.IsZero())
	assert.Zero(t, empty.Count)
}

func TestQuantityHistory_OrdenCronologico(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	points := inventory.QuantityHistory([]entity.StockTransaction{
		tx(entity.TransactionTypeOut, "2", "10", "8", base.Add(2*time.Hour)),
		tx(entity.TransactionTypeIn, "10", "0", "10", base),
		tx(entity.TransactionTypeOut, "3", "8", "5", base.Add(5*time.Hour)),
	})
	require.Len(t, points, 3)
	assertDecimal(t, "10", points[0].Quantity, "p0")
	assertDecimal(t, "8", points[1].Quantity, "p1")
	assertDecimal(t, "5", points[2].Quantity, "p2")
	assert.True(t, points[0].At.Before(points[1].At))
}

func TestBucketStart(t *testing.T) {
	// 2025-05-15 es jueves.
	at := time.Date(2025, 5, 15, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), inventory.BucketStart(at, inventory.BucketDay))
	assert.Equal(t, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), inventory.BucketStart(at, inventory.BucketWeek))
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), inventory.BucketStart(at, inventory.BucketMonth))

	sunday := time.Date(2025, 5, 18, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), inventory.BucketStart(sunday, inventory.BucketWeek))
}

func TestTrend_PorMes(t *testing.T) {
	txs := []entity.StockTransaction{
		tx(entity.TransactionTypeIn, "10", "0", "10", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)),
		tx(entity.TransactionTypeOut, "2", "10", "8", time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)),
		tx(entity.TransactionTypeOut, "3", "8", "5", time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)),
		tx(entity.TransactionTypeAdjustment, "7", "5", "7", time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)),
	}
	buckets := inventory.Trend(txs, inventory.BucketMonth)
	require.Len(t, buckets, 2)
	assert.Equal(t, time.April, buckets[0].Start.Month())
	assertDecimal(t, "10", buckets[0].Inbound, "abril entradas")
	assertDecimal(t, "2", buckets[0].Outbound, "abril salidas")
	assertDecimal(t, "0", buckets[1].Inbound, "mayo entradas")
	assertDecimal(t, "3", buckets[1].Outbound, "mayo salidas")

	assert.Empty(t, inventory.Trend(nil, inventory.BucketDay))
}

func TestForecast(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	item := entity.InventoryItem{Quantity: d("45")}
	txs := []entity.StockTransaction{
		tx(entity.TransactionTypeOut, "30", "0", "0", now.AddDate(0, 0, -10)),
		tx(entity.TransactionTypeOut, "15", "0", "0", now.AddDate(0, 0, -1)),
		tx(entity.TransactionTypeOut, "500", "0", "0", now.AddDate(0, 0, -45)), // fuera de la ventana
		tx(entity.TransactionTypeIn, "100", "0", "0", now.AddDate(0, 0, -2)),
	}
	f := inventory.Forecast(item, txs, now)
	assert.False(t, f.NoConsumption)
	assertDecimal(t, "1.5", f.AverageDailyOutflow, "45 / 30")
	require.NotNil(t, f.DaysRemaining)
	assertDecimal(t, "30", *f.DaysRemaining, "45 / 1.5")
}

func TestForecast_SinConsumo(t *testing.T) {
	now := time.Now()
	f := inventory.Forecast(entity.InventoryItem{Quantity: d("10")}, nil, now)
	assert.True(t, f.NoConsumption)
	assert.Nil(t, f.DaysRemaining)
	assert.True(t, f.AverageDailyOutflow.IsZero())
}
