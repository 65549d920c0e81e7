package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnDetailRequest una línea devuelta: producto y cantidad.
type ReturnDetailRequest struct {
	Product  string          `json:"product" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateReturnRequest cuerpo de POST /api/returns.
type CreateReturnRequest struct {
	Sale          string                `json:"sale" validate:"required"`
	Customer      string                `json:"customer" validate:"required"`
	ReturnDetails []ReturnDetailRequest `json:"return_details" validate:"required,min=1,dive"`
}

// ReturnDetailResponse una línea devuelta con su subtotal.
type ReturnDetailResponse struct {
	ID        string          `json:"id"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ReturnResponse representación pública de una devolución.
type ReturnResponse struct {
	ID            string                 `json:"id"`
	Sale          string                 `json:"sale"`
	Customer      string                 `json:"customer"`
	Date          time.Time              `json:"date"`
	Amount        decimal.Decimal        `json:"amount"`
	ReturnDetails []ReturnDetailResponse `json:"return_details"`
}

// ReturnListQuery query params de GET /api/returns.
type ReturnListQuery struct {
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
	Ordering  string `query:"ordering"`
	Customer  string `query:"customer"`
	Search    string `query:"search"`
	Date      string `query:"date"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	MinTotal  string `query:"min_total"`
	MaxTotal  string `query:"max_total"`
}
