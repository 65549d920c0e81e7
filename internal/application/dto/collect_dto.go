package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCollectRequest cuerpo de POST /api/collects. Sale es opcional: sin
// venta puntual el cobro se imputa FIFO a las ventas impagas del cliente.
type CreateCollectRequest struct {
	Customer string          `json:"customer" validate:"required"`
	Sale     string          `json:"sale"`
	Amount   decimal.Decimal `json:"amount"`
}

// CollectResponse un cobro ya imputado a una venta.
type CollectResponse struct {
	ID       string          `json:"id"`
	Customer string          `json:"customer"`
	Sale     string          `json:"sale"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
}

// CollectResult resultado de registrar un cobro: las imputaciones generadas y
// el saldo restante del cliente tras aplicarlo.
type CollectResult struct {
	Collects         []CollectResponse `json:"collects"`
	RemainingBalance decimal.Decimal   `json:"remaining_balance"`
}

// CollectListQuery query params de GET /api/collects.
type CollectListQuery struct {
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
	Ordering  string `query:"ordering"`
	Customer  string `query:"customer"`
	Date      string `query:"date"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}
