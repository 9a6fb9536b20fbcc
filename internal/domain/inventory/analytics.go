package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Agrupaciones de tendencia.
const (
	BucketDay   = "day"
	BucketWeek  = "week"
	BucketMonth = "month"
)

// ForecastWindowDays ventana de consumo usada para el pronóstico de agotamiento.
const ForecastWindowDays = 30

// VolumeSummary volúmenes totales de entrada y salida.
// Las devoluciones cuentan como entrada; los ajustes se reportan como delta neto.
type VolumeSummary struct {
	Inbound       decimal.Decimal
	Outbound      decimal.Decimal
	NetAdjustment decimal.Decimal
	Count         int
}

// HistoryPoint cantidad en existencia después de una transacción.
type HistoryPoint struct {
	At       time.Time
	Type     string
	Quantity decimal.Decimal
}

// TrendBucket volúmenes de una ventana de tiempo.
type TrendBucket struct {
	Start    time.Time
	Inbound  decimal.Decimal
	Outbound decimal.Decimal
}

// Depletion pronóstico de agotamiento. DaysRemaining es nil cuando no hay consumo.
type Depletion struct {
	AverageDailyOutflow decimal.Decimal
	DaysRemaining       *decimal.Decimal
	NoConsumption       bool
}

// Volumes suma entradas, salidas y ajustes. Tipos desconocidos se ignoran.
func Volumes(txs []entity.StockTransaction) VolumeSummary {
	s := VolumeSummary{Inbound: decimal.Zero, Outbound: decimal.Zero, NetAdjustment: decimal.Zero}
	for _, tx := range txs {
		switch tx.Type {
		case entity.TransactionTypeIn, entity.TransactionTypeReturn:
			s.Inbound = s.Inbound.Add(tx.Quantity)
		case entity.TransactionTypeOut:
			s.Outbound = s.Outbound.Add(tx.Quantity)
		case entity.TransactionTypeAdjustment:
			s.NetAdjustment = s.NetAdjustment.Add(tx.NewQuantity.Sub(tx.PreviousQuantity))
		default:
			continue
		}
		s.Count++
	}
	return s
}

// QuantityHistory reconstruye la serie de cantidades en estricto orden cronológico
// a partir de los NewQuantity registrados.
func QuantityHistory(txs []entity.StockTransaction) []HistoryPoint {
	ordered := SortChronological(txs)
	out := make([]HistoryPoint, 0, len(ordered))
	for _, tx := range ordered {
		out = append(out, HistoryPoint{At: tx.CreatedAt, Type: tx.Type, Quantity: tx.NewQuantity})
	}
	return out
}

// BucketStart inicio de la ventana que contiene t. Las semanas empiezan el lunes.
func BucketStart(t time.Time, bucket string) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch bucket {
	case BucketWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case BucketMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return day
}

// ValidBucket indica si la agrupación es conocida.
func ValidBucket(bucket string) bool {
	return bucket == BucketDay || bucket == BucketWeek || bucket == BucketMonth
}

// Trend agrupa entradas y salidas por día, semana o mes, ordenado por inicio de ventana.
func Trend(txs []entity.StockTransaction, bucket string) []TrendBucket {
	byStart := make(map[time.Time]*TrendBucket)
	for _, tx := range txs {
		var in, out decimal.Decimal
		switch tx.Type {
		case entity.TransactionTypeIn, entity.TransactionTypeReturn:
			in = tx.Quantity
		case entity.TransactionTypeOut:
			out = tx.Quantity
		default:
			continue
		}
		start := BucketStart(tx.CreatedAt, bucket)
		b, ok := byStart[start]
		if !ok {
			b = &TrendBucket{Start: start, Inbound: decimal.Zero, Outbound: decimal.Zero}
			byStart[start] = b
		}
		b.Inbound = b.Inbound.Add(in)
		b.Outbound = b.Outbound.Add(out)
	}

	out := make([]TrendBucket, 0, len(byStart))
	for _, b := range byStart {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// Forecast estima los días restantes: cantidad actual / salida diaria promedio de los últimos 30 días.
// Sin consumo en la ventana devuelve NoConsumption en vez de dividir por cero.
func Forecast(item entity.InventoryItem, txs []entity.StockTransaction, now time.Time) Depletion {
	from := now.AddDate(0, 0, -ForecastWindowDays)
	outflow := decimal.Zero
	for _, tx := range txs {
		if tx.Type != entity.TransactionTypeOut {
			continue
		}
		if tx.CreatedAt.Before(from) || tx.CreatedAt.After(now) {
			continue
		}
		outflow = outflow.Add(tx.Quantity)
	}

	avg := outflow.Div(decimal.NewFromInt(ForecastWindowDays))
	if !avg.IsPositive() {
		return Depletion{AverageDailyOutflow: decimal.Zero, NoConsumption: true}
	}
	days := item.Quantity.Div(avg).Round(2)
	return Depletion{AverageDailyOutflow: avg.Round(4), DaysRemaining: &days}
}
