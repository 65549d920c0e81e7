package sales

import (
	"context"
	"time"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

// StatisticsUseCase agrega el libro de ventas sobre un rango de fechas:
// facturación, conteos y desgloses por tipo de venta y estado de entrega.
// Toda la aritmética monetaria es decimal, nunca punto flotante.
type StatisticsUseCase struct {
	statsRepo   repository.StatisticsRepository
	productRepo repository.ProductRepository
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(statsRepo repository.StatisticsRepository, productRepo repository.ProductRepository) *StatisticsUseCase {
	return &StatisticsUseCase{statsRepo: statsRepo, productRepo: productRepo}
}

// Compute calcula las estadísticas del rango [start_date, end_date] inclusivo.
// El rango es obligatorio; start > end produce ErrInvalidRange. Con
// product_slug, una venta cuenta si ALGUNO de sus detalles es de ese producto.
func (uc *StatisticsUseCase) Compute(ctx context.Context, q dto.StatisticsQuery) (*dto.StatisticsResponse, error) {
	if q.StartDate == "" || q.EndDate == "" {
		return nil, domain.ErrInvalidFilter
	}
	start, err := time.Parse(query.DateLayout, q.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}
	end, err := time.Parse(query.DateLayout, q.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}
	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}
	end = end.Add(24*time.Hour - time.Nanosecond) // inclusivo: día completo

	out := &dto.StatisticsResponse{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	}

	productID := ""
	if q.ProductSlug != "" {
		product, err := uc.productRepo.GetBySlug(ctx, q.ProductSlug)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productID = product.ID
		out.ProductSlug = product.Slug
		out.ProductName = product.Name
	}

	totals, err := uc.statsRepo.Totals(ctx, start, end, productID)
	if err != nil {
		return nil, err
	}
	out.TotalRevenue = totals.Revenue
	out.SaleCount = totals.SaleCount
	out.ReturnsAmount = totals.ReturnsAmount
	out.NetRevenue = totals.Revenue.Sub(totals.ReturnsAmount)

	byType, err := uc.statsRepo.BySaleType(ctx, start, end, productID)
	if err != nil {
		return nil, err
	}
	out.BySaleType = toBreakdown(byType)

	byState, err := uc.statsRepo.ByDeliveryState(ctx, start, end, productID)
	if err != nil {
		return nil, err
	}
	out.ByDeliveryState = toBreakdown(byState)

	if productID != "" {
		qty, err := uc.statsRepo.ProductQuantitySold(ctx, start, end, productID)
		if err != nil {
			return nil, err
		}
		out.QuantitySold = &qty
	}
	return out, nil
}

func toBreakdown(buckets []repository.StatsBucket) []dto.StatsBreakdownItem {
	items := make([]dto.StatsBreakdownItem, len(buckets))
	for i, b := range buckets {
		items[i] = dto.StatsBreakdownItem{Key: b.Key, Count: b.Count, Revenue: b.Revenue}
	}
	return items
}
