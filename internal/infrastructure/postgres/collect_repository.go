package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

var _ repository.CollectRepository = (*CollectRepo)(nil)

// CollectRepo implementación del puerto CollectRepository sobre PostgreSQL.
type CollectRepo struct {
	q Querier
}

// NewCollectRepository construye el adaptador de persistencia para cobros.
func NewCollectRepository(q Querier) *CollectRepo {
	return &CollectRepo{q: q}
}

// Create persiste un cobro imputado a una venta.
func (r *CollectRepo) Create(ctx context.Context, collect *entity.Collect) error {
	sql := `
		INSERT INTO collects (id, customer_id, sale_id, user_id, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, sql,
		collect.ID, collect.CustomerID, collect.SaleID, collect.UserID,
		collect.Amount, collect.Date, collect.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert collect: %w", err)
	}
	return nil
}

// List lista cobros aplicando el filtro normalizado.
func (r *CollectRepo) List(ctx context.Context, f query.CollectFilter) ([]*entity.Collect, int, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CustomerID != "" {
		add(`customer_id = $%d`, f.CustomerID)
	}
	if f.Dates.Start != nil {
		add(`date >= $%d`, *f.Dates.Start)
	}
	if f.Dates.End != nil {
		add(`date <= $%d`, *f.Dates.End)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM collects`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count collects: %w", err)
	}

	orderBy := "date DESC, created_at DESC"
	if f.Order.Key != "" {
		col := f.Order.Key
		if col == "total" {
			col = "amount"
		}
		orderBy = col + sortDirection(f.Order.Desc)
	}
	args = append(args, f.Page.Limit, f.Page.Offset)
	sql := fmt.Sprintf(`SELECT id, customer_id, sale_id, user_id, amount, date, created_at
		FROM collects%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		where, orderBy, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list collects: %w", err)
	}
	defer rows.Close()

	var list []*entity.Collect
	for rows.Next() {
		var c entity.Collect
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.SaleID, &c.UserID, &c.Amount, &c.Date, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan collect: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}
