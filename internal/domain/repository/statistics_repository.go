package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatsTotals agregados globales del período.
type StatsTotals struct {
	Revenue       decimal.Decimal // Σ totales de venta
	SaleCount     int
	ReturnsAmount decimal.Decimal // Σ devoluciones del período
}

// StatsBucket una fila de desglose (por sale_type o por delivery_state).
type StatsBucket struct {
	Key     string
	Count   int
	Revenue decimal.Decimal
}

// StatisticsRepository consultas de agregación de solo lectura sobre el libro
// de ventas. productID vacío = sin filtro de producto; cuando está presente,
// una venta cuenta si ALGUNO de sus detalles es de ese producto.
type StatisticsRepository interface {
	Totals(ctx context.Context, start, end time.Time, productID string) (StatsTotals, error)
	BySaleType(ctx context.Context, start, end time.Time, productID string) ([]StatsBucket, error)
	ByDeliveryState(ctx context.Context, start, end time.Time, productID string) ([]StatsBucket, error)
	// ProductQuantitySold cantidad total vendida del producto en el período.
	ProductQuantitySold(ctx context.Context, start, end time.Time, productID string) (decimal.Decimal, error)
}
