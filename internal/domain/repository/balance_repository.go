package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain/query"
)

// LedgerSums sumas del libro de un cliente, leídas en un único snapshot
// consistente: ventas con saldo, devoluciones contra esas ventas y cobros.
type LedgerSums struct {
	UnpaidSales decimal.Decimal // Σ totales de ventas unpaid/partially_paid
	Returns     decimal.Decimal // Σ devoluciones contra esas ventas
	Collected   decimal.Decimal // Σ cobros imputados a esas ventas
}

// PendingCustomer fila del listado de cobranza: cliente con saldo positivo.
type PendingCustomer struct {
	CustomerID   string
	Name         string
	PhoneNumber  string
	Address      string
	CustomerType string
	Balance      decimal.Decimal
}

// BalanceRepository vistas derivadas de saldo. Las implementaciones deben
// garantizar que cada llamada observa un snapshot consistente (transacción de
// solo lectura REPEATABLE READ o equivalente): jamás contar una devolución
// cuya venta no se ve, ni viceversa.
type BalanceRepository interface {
	CustomerLedgerSums(ctx context.Context, customerID string) (LedgerSums, error)
	ListPendingCollection(ctx context.Context, f query.PendingCollectionFilter) ([]PendingCustomer, int, error)
}
