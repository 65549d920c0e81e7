package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lapanasystem/lapana-api/internal/application/sales"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)

// Intentos máximos ante fallas de serialización o deadlock.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Ante fallas de serialización reintenta hasta maxTxAttempts veces y
// después devuelve domain.ErrConflict.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx Querier) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale transacción para crear ventas y cambiar su estado de entrega.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewSaleRepository(tx), NewProductRepository(tx), NewCustomerRepository(tx))
	})
}

// RunReturn transacción para registrar devoluciones (requiere el lock de la venta).
func (r *TxRunner) RunReturn(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewSaleRepository(tx), NewReturnRepository(tx), NewCustomerRepository(tx))
	})
}

// RunCollect transacción para registrar cobros e imputarlos a ventas.
func (r *TxRunner) RunCollect(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
	collectRepo repository.CollectRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewSaleRepository(tx), NewReturnRepository(tx), NewCollectRepository(tx), NewCustomerRepository(tx))
	})
}
