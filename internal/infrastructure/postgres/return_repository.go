package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

const returnColumns = `r.id, r.sale_id, r.customer_id, r.user_id, r.date, r.amount, r.created_at, r.updated_at`

// ReturnRepo implementación del puerto ReturnRepository sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de persistencia para devoluciones.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create inserta la devolución con sus detalles.
func (r *ReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	sql := `
		INSERT INTO returns (id, sale_id, customer_id, user_id, date, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, sql,
		ret.ID, ret.SaleID, ret.CustomerID, ret.UserID, ret.Date, ret.Amount, ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	for _, d := range ret.Details {
		_, err := r.q.Exec(ctx,
			`INSERT INTO return_details (id, return_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
			d.ID, d.ReturnID, d.ProductID, d.Quantity, d.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert return detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una devolución con sus detalles. Devuelve nil sin error si no existe.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.Return, error) {
	sql := `SELECT ` + returnColumns + ` FROM returns r WHERE r.id = $1`
	var ret entity.Return
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&ret.ID, &ret.SaleID, &ret.CustomerID, &ret.UserID, &ret.Date, &ret.Amount, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	details, err := r.detailsByReturn(ctx, []string{ret.ID})
	if err != nil {
		return nil, err
	}
	ret.Details = details[ret.ID]
	return &ret, nil
}

func (r *ReturnRepo) detailsByReturn(ctx context.Context, returnIDs []string) (map[string][]entity.ReturnDetail, error) {
	if len(returnIDs) == 0 {
		return map[string][]entity.ReturnDetail{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, return_id, product_id, quantity, unit_price FROM return_details WHERE return_id = ANY($1) ORDER BY id`,
		returnIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list return details: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]entity.ReturnDetail, len(returnIDs))
	for rows.Next() {
		var d entity.ReturnDetail
		if err := rows.Scan(&d.ID, &d.ReturnID, &d.ProductID, &d.Quantity, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan return detail: %w", err)
		}
		result[d.ReturnID] = append(result[d.ReturnID], d)
	}
	return result, rows.Err()
}

// List lista devoluciones aplicando el filtro normalizado.
func (r *ReturnRepo) List(ctx context.Context, f query.ReturnFilter) ([]*entity.Return, int, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CustomerID != "" {
		add(`r.customer_id = $%d`, f.CustomerID)
	}
	if f.Search != "" {
		add(`c.name ILIKE '%%' || $%d || '%%'`, f.Search)
	}
	if f.Dates.Start != nil {
		add(`r.date >= $%d`, *f.Dates.Start)
	}
	if f.Dates.End != nil {
		add(`r.date <= $%d`, *f.Dates.End)
	}
	if f.Totals.Min != nil {
		add(`r.amount >= $%d`, *f.Totals.Min)
	}
	if f.Totals.Max != nil {
		add(`r.amount <= $%d`, *f.Totals.Max)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	from := ` FROM returns r JOIN customers c ON c.id = r.customer_id`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count returns: %w", err)
	}

	orderBy := "r.date DESC, r.created_at DESC"
	if f.Order.Key != "" {
		col := f.Order.Key
		if col == "total" {
			col = "amount" // la clave pública "total" mapea a la columna amount
		}
		orderBy = "r." + col + sortDirection(f.Order.Desc)
	}
	args = append(args, f.Page.Limit, f.Page.Offset)
	sql := fmt.Sprintf(`SELECT %s%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		returnColumns, from, where, orderBy, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var list []*entity.Return
	var ids []string
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(&ret.ID, &ret.SaleID, &ret.CustomerID, &ret.UserID, &ret.Date,
			&ret.Amount, &ret.CreatedAt, &ret.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, &ret)
		ids = append(ids, ret.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	details, err := r.detailsByReturn(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, ret := range list {
		ret.Details = details[ret.ID]
	}
	return list, total, nil
}

// ReturnedQuantitiesBySale devuelve, por producto, la cantidad acumulada ya
// devuelta contra la venta.
func (r *ReturnRepo) ReturnedQuantitiesBySale(ctx context.Context, saleID string) (map[string]decimal.Decimal, error) {
	sql := `
		SELECT rd.product_id, SUM(rd.quantity)
		FROM return_details rd
		JOIN returns r ON r.id = rd.return_id
		WHERE r.sale_id = $1
		GROUP BY rd.product_id`
	rows, err := r.q.Query(ctx, sql, saleID)
	if err != nil {
		return nil, fmt.Errorf("returned quantities: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var productID string
		var qty decimal.Decimal
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("scan returned quantity: %w", err)
		}
		result[productID] = qty
	}
	return result, rows.Err()
}

// ReturnedAmountBySale devuelve el monto total ya devuelto contra la venta.
func (r *ReturnRepo) ReturnedAmountBySale(ctx context.Context, saleID string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM returns WHERE sale_id = $1`,
		saleID,
	).Scan(&amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("returned amount: %w", err)
	}
	return amount, nil
}
