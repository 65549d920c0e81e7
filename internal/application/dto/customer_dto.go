package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest cuerpo de POST /api/customers.
type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,e164"`
	Address      string `json:"address"`
	CustomerType string `json:"customer_type" validate:"required,oneof=retail wholesale"`
}

// UpdateCustomerRequest cuerpo de PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	Address     string `json:"address"`
}

// CustomerResponse representación pública de un cliente.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	Address      string    `json:"address"`
	CustomerType string    `json:"customer_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// CustomerListQuery query params de GET /api/customers.
type CustomerListQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// CustomerBalanceResponse saldo pendiente derivado del libro del cliente.
type CustomerBalanceResponse struct {
	Customer string          `json:"customer"`
	Balance  decimal.Decimal `json:"balance"`
}
