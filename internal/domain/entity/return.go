package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnDetail es una línea devuelta: producto y cantidad, valuada al precio
// congelado en el detalle de la venta original (mismo snapshot, no el precio
// vigente del catálogo).
type ReturnDetail struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  decimal.Decimal // > 0
	UnitPrice decimal.Decimal
}

// Subtotal devuelve cantidad × precio unitario.
func (d ReturnDetail) Subtotal() decimal.Decimal {
	return d.Quantity.Mul(d.UnitPrice)
}

// Return es un ajuste compensatorio contra una venta previa: registra qué
// volvió y por cuánto, sin reescribir jamás la venta referenciada.
// Invariante: por producto, la cantidad devuelta acumulada entre todas las
// devoluciones de una venta nunca supera la cantidad vendida.
type Return struct {
	ID         string
	SaleID     string
	CustomerID string
	UserID     string
	Date       time.Time
	Amount     decimal.Decimal // derivado = Σ subtotales de Details
	Details    []ReturnDetail
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ComputeAmount recalcula Amount como la suma de los subtotales.
func (r *Return) ComputeAmount() decimal.Decimal {
	amount := decimal.Zero
	for _, d := range r.Details {
		amount = amount.Add(d.Subtotal())
	}
	r.Amount = amount
	return amount
}
