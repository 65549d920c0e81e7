package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo vistas de saldo sobre PostgreSQL. Cada consulta corre en una
// transacción REPEATABLE READ de solo lectura, así las tres sumas del libro
// (ventas, devoluciones, cobros) salen del mismo snapshot.
type BalanceRepo struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository construye el adaptador de consultas de saldo.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

func (r *BalanceRepo) inSnapshot(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CustomerLedgerSums lee las tres sumas del libro del cliente en un snapshot
// consistente: solo ventas con saldo (unpaid/partially_paid), las devoluciones
// contra esas ventas y los cobros imputados a ellas.
func (r *BalanceRepo) CustomerLedgerSums(ctx context.Context, customerID string) (repository.LedgerSums, error) {
	var sums repository.LedgerSums
	err := r.inSnapshot(ctx, func(tx pgx.Tx) error {
		sql := `
			SELECT
				COALESCE(SUM(s.total), 0),
				COALESCE(SUM((SELECT COALESCE(SUM(rt.amount), 0) FROM returns rt WHERE rt.sale_id = s.id)), 0),
				COALESCE(SUM(s.paid_amount), 0)
			FROM sales s
			WHERE s.customer_id = $1 AND s.payment_state IN ($2, $3)`
		return tx.QueryRow(ctx, sql, customerID,
			entity.PaymentStateUnpaid, entity.PaymentStatePartiallyPaid,
		).Scan(&sums.UnpaidSales, &sums.Returns, &sums.Collected)
	})
	if err != nil {
		return repository.LedgerSums{}, fmt.Errorf("customer ledger sums: %w", err)
	}
	return sums, nil
}

// ListPendingCollection lista clientes con saldo positivo, calculado en el
// mismo snapshot que el conteo total.
func (r *BalanceRepo) ListPendingCollection(ctx context.Context, f query.PendingCollectionFilter) ([]repository.PendingCustomer, int, error) {
	orderBy := "balance DESC"
	if f.Order.Key != "" {
		orderBy = f.Order.Key + sortDirection(f.Order.Desc)
	}

	base := `
		WITH pending AS (
			SELECT
				c.id AS customer_id,
				c.name,
				c.phone_number,
				c.address,
				c.customer_type,
				SUM(
					s.total
					- COALESCE((SELECT SUM(rt.amount) FROM returns rt WHERE rt.sale_id = s.id), 0)
					- s.paid_amount
				) AS balance
			FROM customers c
			JOIN sales s ON s.customer_id = c.id
			WHERE s.payment_state IN ($1, $2)
			GROUP BY c.id, c.name, c.phone_number, c.address, c.customer_type
			HAVING SUM(
				s.total
				- COALESCE((SELECT SUM(rt.amount) FROM returns rt WHERE rt.sale_id = s.id), 0)
				- s.paid_amount
			) > 0
		)`

	var list []repository.PendingCustomer
	var total int
	err := r.inSnapshot(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, base+` SELECT COUNT(*) FROM pending`,
			entity.PaymentStateUnpaid, entity.PaymentStatePartiallyPaid,
		).Scan(&total); err != nil {
			return fmt.Errorf("count pending collection: %w", err)
		}

		sql := base + ` SELECT customer_id, name, phone_number, address, customer_type, balance
			FROM pending ORDER BY ` + orderBy + ` LIMIT $3 OFFSET $4`
		rows, err := tx.Query(ctx, sql,
			entity.PaymentStateUnpaid, entity.PaymentStatePartiallyPaid,
			f.Page.Limit, f.Page.Offset,
		)
		if err != nil {
			return fmt.Errorf("list pending collection: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var p repository.PendingCustomer
			if err := rows.Scan(&p.CustomerID, &p.Name, &p.PhoneNumber, &p.Address, &p.CustomerType, &p.Balance); err != nil {
				return fmt.Errorf("scan pending customer: %w", err)
			}
			list = append(list, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
