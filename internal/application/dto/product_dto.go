package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest cuerpo de POST /api/products.
type CreateProductRequest struct {
	Barcode        string          `json:"barcode" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Weight         decimal.Decimal `json:"weight"`
	WeightUnit     string          `json:"weight_unit" validate:"omitempty,oneof=g kg"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
}

// UpdateProductRequest cuerpo de PUT /api/products/:id. Solo los precios y
// datos descriptivos; el barcode no se toca una vez creado.
type UpdateProductRequest struct {
	Name           string          `json:"name" validate:"required"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Weight         decimal.Decimal `json:"weight"`
	WeightUnit     string          `json:"weight_unit" validate:"omitempty,oneof=g kg"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Barcode        string          `json:"barcode"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Weight         decimal.Decimal `json:"weight"`
	WeightUnit     string          `json:"weight_unit"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ProductListQuery query params de GET /api/products.
type ProductListQuery struct {
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
	Ordering string `query:"ordering"`
}
