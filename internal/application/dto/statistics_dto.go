package dto

import "github.com/shopspring/decimal"

// StatisticsQuery query params de GET /api/sales/statistics. El rango de
// fechas es obligatorio; product_slug restringe a ventas que contengan el
// producto en alguno de sus detalles.
type StatisticsQuery struct {
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
	ProductSlug string `query:"product_slug"`
}

// StatsBreakdownItem una fila de desglose con conteo y facturación.
type StatsBreakdownItem struct {
	Key     string          `json:"key"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// StatisticsResponse agregados del período.
type StatisticsResponse struct {
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	TotalRevenue    decimal.Decimal      `json:"total_revenue"`
	SaleCount       int                  `json:"sale_count"`
	ReturnsAmount   decimal.Decimal      `json:"returns_amount"`
	NetRevenue      decimal.Decimal      `json:"net_revenue"`
	BySaleType      []StatsBreakdownItem `json:"by_sale_type"`
	ByDeliveryState []StatsBreakdownItem `json:"by_delivery_state"`

	// Solo cuando se filtra por producto.
	ProductSlug  string           `json:"product_slug,omitempty"`
	ProductName  string           `json:"product_name,omitempty"`
	QuantitySold *decimal.Decimal `json:"quantity_sold,omitempty"`
}
