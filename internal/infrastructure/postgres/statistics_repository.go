package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

var _ repository.StatisticsRepository = (*StatisticsRepo)(nil)

// StatisticsRepo consultas de agregación sobre el libro de ventas.
type StatisticsRepo struct {
	q Querier
}

// NewStatisticsRepository construye el adaptador de estadísticas.
func NewStatisticsRepository(q Querier) *StatisticsRepo {
	return &StatisticsRepo{q: q}
}

// productExists condición de filtro por producto: la venta cuenta si alguno de
// sus detalles es del producto pedido.
const productExists = ` AND EXISTS (SELECT 1 FROM sale_details sd WHERE sd.sale_id = s.id AND sd.product_id = $3)`

// Totals agregados globales del período. El monto de devoluciones se suma por
// fecha de la devolución y no se filtra por producto: refleja la plata que
// salió en el período, no la atribución por artículo.
func (r *StatisticsRepo) Totals(ctx context.Context, start, end time.Time, productID string) (repository.StatsTotals, error) {
	var t repository.StatsTotals

	sql := `SELECT COALESCE(SUM(s.total), 0), COUNT(*) FROM sales s WHERE s.date BETWEEN $1 AND $2`
	args := []any{start, end}
	if productID != "" {
		sql += productExists
		args = append(args, productID)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&t.Revenue, &t.SaleCount); err != nil {
		return repository.StatsTotals{}, fmt.Errorf("stats totals: %w", err)
	}

	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM returns WHERE date BETWEEN $1 AND $2`,
		start, end,
	).Scan(&t.ReturnsAmount)
	if err != nil {
		return repository.StatsTotals{}, fmt.Errorf("stats returns: %w", err)
	}
	return t, nil
}

func (r *StatisticsRepo) buckets(ctx context.Context, column string, start, end time.Time, productID string) ([]repository.StatsBucket, error) {
	sql := `SELECT s.` + column + `, COUNT(*), COALESCE(SUM(s.total), 0)
		FROM sales s WHERE s.date BETWEEN $1 AND $2`
	args := []any{start, end}
	if productID != "" {
		sql += productExists
		args = append(args, productID)
	}
	sql += ` GROUP BY s.` + column + ` ORDER BY s.` + column

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("stats by %s: %w", column, err)
	}
	defer rows.Close()

	var buckets []repository.StatsBucket
	for rows.Next() {
		var b repository.StatsBucket
		if err := rows.Scan(&b.Key, &b.Count, &b.Revenue); err != nil {
			return nil, fmt.Errorf("scan stats bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// BySaleType desglose de ventas del período por tipo.
func (r *StatisticsRepo) BySaleType(ctx context.Context, start, end time.Time, productID string) ([]repository.StatsBucket, error) {
	return r.buckets(ctx, "sale_type", start, end, productID)
}

// ByDeliveryState desglose de ventas del período por estado de entrega.
func (r *StatisticsRepo) ByDeliveryState(ctx context.Context, start, end time.Time, productID string) ([]repository.StatsBucket, error) {
	return r.buckets(ctx, "delivery_state", start, end, productID)
}

// ProductQuantitySold cantidad total vendida del producto en el período.
func (r *StatisticsRepo) ProductQuantitySold(ctx context.Context, start, end time.Time, productID string) (decimal.Decimal, error) {
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(sd.quantity), 0)
		FROM sale_details sd
		JOIN sales s ON s.id = sd.sale_id
		WHERE s.date BETWEEN $1 AND $2 AND sd.product_id = $3`,
		start, end, productID,
	).Scan(&qty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("product quantity sold: %w", err)
	}
	return qty, nil
}
