package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/vidrieria-api/internal/application/dto"
	"github.com/jhoicas/vidrieria-api/internal/domain"
	"github.com/jhoicas/vidrieria-api/internal/domain/entity"
	"github.com/jhoicas/vidrieria-api/internal/domain/inventory"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
)

// HistoryUseCase arma las analíticas de un ítem a partir de su libro de transacciones.
type HistoryUseCase struct {
	itemRepo repository.InventoryItemRepository
	txRepo   repository.StockTransactionRepository
	now      func() time.Time
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(itemRepo repository.InventoryItemRepository, txRepo repository.StockTransactionRepository) *HistoryUseCase {
	return &HistoryUseCase{itemRepo: itemRepo, txRepo: txRepo, now: time.Now}
}

// GetHistory devuelve volúmenes, historial de cantidad, tendencia y pronóstico. bucket vacío = "day".
func (uc *HistoryUseCase) GetHistory(ctx context.Context, itemID, bucket string) (*dto.ItemHistoryResponse, error) {
	if bucket == "" {
		bucket = inventory.BucketDay
	}
	if !inventory.ValidBucket(bucket) {
		return nil, fmt.Errorf("%w: bucket %q (day, week, month)", domain.ErrInvalidInput, bucket)
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	txs, err := uc.txRepo.ListByItem(ctx, itemID, nil, nil)
	if err != nil {
		return nil, err
	}
	txs = inventory.SortChronological(txs)

	return &dto.ItemHistoryResponse{
		InventoryItemID: item.ID,
		Name:            item.Name,
		Quantity:        item.Quantity,
		Price:           item.Price,
		Bucket:          bucket,
		Volumes:         toVolumeDTO(inventory.Volumes(txs)),
		History:         toHistoryDTO(inventory.QuantityHistory(txs)),
		Trend:           toTrendDTO(inventory.Trend(txs, bucket)),
		Forecast:        toForecastDTO(inventory.Forecast(*item, txs, uc.now())),
	}, nil
}

func toVolumeDTO(v inventory.VolumeSummary) dto.VolumeDTO {
	return dto.VolumeDTO{Inbound: v.Inbound, Outbound: v.Outbound, NetAdjustment: v.NetAdjustment, Count: v.Count}
}

func toHistoryDTO(points []inventory.HistoryPoint) []dto.HistoryPointDTO {
	out := make([]dto.HistoryPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.HistoryPointDTO{At: p.At, Type: p.Type, Quantity: p.Quantity})
	}
	return out
}

func toTrendDTO(buckets []inventory.TrendBucket) []dto.TrendBucketDTO {
	out := make([]dto.TrendBucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.TrendBucketDTO{Start: b.Start.Format("2006-01-02"), Inbound: b.Inbound, Outbound: b.Outbound})
	}
	return out
}

func toForecastDTO(d inventory.Depletion) dto.ForecastDTO {
	return dto.ForecastDTO{AverageDailyOutflow: d.AverageDailyOutflow, DaysRemaining: d.DaysRemaining, NoConsumption: d.NoConsumption}
}

// forecastFor carga la ventana de consumo del ítem y calcula su pronóstico.
func forecastFor(ctx context.Context, txRepo repository.StockTransactionRepository, item entity.InventoryItem, now time.Time) (inventory.Depletion, error) {
	from := now.AddDate(0, 0, -inventory.ForecastWindowDays)
	txs, err := txRepo.ListByItem(ctx, item.ID, &from, &now)
	if err != nil {
		return inventory.Depletion{}, err
	}
	return inventory.Forecast(item, txs, now), nil
}
