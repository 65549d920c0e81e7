package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collect es un evento de cobro: plata que entra contra el saldo de un cliente.
// Si SaleID no está vacío, el cobro quedó imputado a esa venta puntual; los
// cobros a nivel cliente se reparten FIFO entre sus ventas impagas y generan
// un registro por venta cubierta.
type Collect struct {
	ID         string
	CustomerID string
	SaleID     string // vacío solo si el cliente no tenía ventas impagas exactas (no ocurre: se rechaza el excedente)
	UserID     string
	Amount     decimal.Decimal // > 0
	Date       time.Time
	CreatedAt  time.Time
}
