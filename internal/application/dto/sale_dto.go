package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleDetailRequest una línea de venta entrante: producto y cantidad. El
// precio unitario jamás viene del cliente: se congela desde el catálogo.
type SaleDetailRequest struct {
	Product  string          `json:"product" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateSaleRequest cuerpo de POST /api/sales.
type CreateSaleRequest struct {
	Client        string              `json:"client" validate:"required"`
	SaleType      string              `json:"sale_type" validate:"required,oneof=retail wholesale"`
	PaymentMethod string              `json:"payment_method" validate:"omitempty,oneof=efectivo tarjeta transferencia qr cuenta_corriente"`
	SaleDetails   []SaleDetailRequest `json:"sale_details" validate:"required,min=1,dive"`
}

// SaleDetailResponse una línea de venta con su subtotal.
type SaleDetailResponse struct {
	ID        string          `json:"id"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse representación pública de una venta.
type SaleResponse struct {
	ID            string               `json:"id"`
	Customer      string               `json:"customer"`
	Date          time.Time            `json:"date"`
	SaleType      string               `json:"sale_type"`
	PaymentMethod string               `json:"payment_method"`
	DeliveryState string               `json:"delivery_state"`
	PaymentState  string               `json:"payment_state"`
	Total         decimal.Decimal      `json:"total"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	SaleDetails   []SaleDetailResponse `json:"sale_details"`
}

// SaleListQuery query params de GET /api/sales.
type SaleListQuery struct {
	Limit         int    `query:"limit"`
	Offset        int    `query:"offset"`
	Ordering      string `query:"ordering"`
	Customer      string `query:"customer"`
	SaleType      string `query:"sale_type"`
	State         string `query:"state"`
	PaymentState  string `query:"payment_state"`
	PaymentMethod string `query:"payment_method"`
	Search        string `query:"search"`
	Date          string `query:"date"`
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
	MinTotal      string `query:"min_total"`
	MaxTotal      string `query:"max_total"`
}

// PendingCollectionQuery query params de GET /api/sales/list-by-customer-for-collect.
type PendingCollectionQuery struct {
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
	Ordering string `query:"ordering"` // balance | name (con signo -)
}

// PendingCustomerResponse cliente con saldo pendiente de cobro.
type PendingCustomerResponse struct {
	Customer     string          `json:"customer"`
	Name         string          `json:"name"`
	PhoneNumber  string          `json:"phone_number"`
	Address      string          `json:"address"`
	CustomerType string          `json:"customer_type"`
	Balance      decimal.Decimal `json:"balance"`
}
