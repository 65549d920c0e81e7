package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `s.id, s.customer_id, s.user_id, s.date, s.sale_type, s.payment_method, s.delivery_state, s.payment_state, s.total, s.paid_amount, s.created_at, s.updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta con todos sus detalles.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	sql := `
		INSERT INTO sales (id, customer_id, user_id, date, sale_type, payment_method, delivery_state, payment_state, total, paid_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, sql,
		sale.ID, sale.CustomerID, sale.UserID, sale.Date, sale.SaleType, sale.PaymentMethod,
		sale.DeliveryState, sale.PaymentState, sale.Total, sale.PaidAmount, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, d := range sale.Details {
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_details (id, sale_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
			d.ID, d.SaleID, d.ProductID, d.Quantity, d.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale detail: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) getByID(ctx context.Context, id string, forUpdate bool) (*entity.Sale, error) {
	sql := `SELECT ` + saleColumns + ` FROM sales s WHERE s.id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	var s entity.Sale
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&s.ID, &s.CustomerID, &s.UserID, &s.Date, &s.SaleType, &s.PaymentMethod,
		&s.DeliveryState, &s.PaymentState, &s.Total, &s.PaidAmount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	details, err := r.detailsBySale(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Details = details[s.ID]
	return &s, nil
}

// GetByID obtiene una venta con sus detalles. Devuelve nil sin error si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate obtiene la venta bloqueando su fila (SELECT ... FOR UPDATE).
func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getByID(ctx, id, true)
}

// detailsBySale carga los detalles de varias ventas en una sola consulta.
func (r *SaleRepo) detailsBySale(ctx context.Context, saleIDs []string) (map[string][]entity.SaleDetail, error) {
	if len(saleIDs) == 0 {
		return map[string][]entity.SaleDetail{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price FROM sale_details WHERE sale_id = ANY($1) ORDER BY id`,
		saleIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]entity.SaleDetail, len(saleIDs))
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.ProductID, &d.Quantity, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		result[d.SaleID] = append(result[d.SaleID], d)
	}
	return result, rows.Err()
}

// List lista ventas aplicando el filtro normalizado.
func (r *SaleRepo) List(ctx context.Context, f query.SaleFilter) ([]*entity.Sale, int, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CustomerID != "" {
		add(`s.customer_id = $%d`, f.CustomerID)
	}
	if f.SaleType != "" {
		add(`s.sale_type = $%d`, f.SaleType)
	}
	if f.DeliveryState != "" {
		add(`s.delivery_state = $%d`, f.DeliveryState)
	}
	if f.PaymentState != "" {
		add(`s.payment_state = $%d`, f.PaymentState)
	}
	if f.PaymentMethod != "" {
		add(`s.payment_method = $%d`, f.PaymentMethod)
	}
	if f.Search != "" {
		add(`c.name ILIKE '%%' || $%d || '%%'`, f.Search)
	}
	if f.Dates.Start != nil {
		add(`s.date >= $%d`, *f.Dates.Start)
	}
	if f.Dates.End != nil {
		add(`s.date <= $%d`, *f.Dates.End)
	}
	if f.Totals.Min != nil {
		add(`s.total >= $%d`, *f.Totals.Min)
	}
	if f.Totals.Max != nil {
		add(`s.total <= $%d`, *f.Totals.Max)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	from := ` FROM sales s JOIN customers c ON c.id = s.customer_id`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	orderBy := "s.date DESC, s.created_at DESC"
	if f.Order.Key != "" {
		orderBy = "s." + f.Order.Key + sortDirection(f.Order.Desc)
	}
	args = append(args, f.Page.Limit, f.Page.Offset)
	sql := fmt.Sprintf(`SELECT %s%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		saleColumns, from, where, orderBy, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.UserID, &s.Date, &s.SaleType, &s.PaymentMethod,
			&s.DeliveryState, &s.PaymentState, &s.Total, &s.PaidAmount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	details, err := r.detailsBySale(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, s := range list {
		s.Details = details[s.ID]
	}
	return list, total, nil
}

// UpdateDeliveryState persiste el estado de entrega ya validado.
func (r *SaleRepo) UpdateDeliveryState(ctx context.Context, saleID, state string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET delivery_state = $2, updated_at = now() WHERE id = $1`,
		saleID, state,
	)
	if err != nil {
		return fmt.Errorf("update delivery state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePayment persiste el contador de cobro y el estado de pago derivado.
func (r *SaleRepo) UpdatePayment(ctx context.Context, saleID string, paidAmount decimal.Decimal, paymentState string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET paid_amount = $2, payment_state = $3, updated_at = now() WHERE id = $1`,
		saleID, paidAmount, paymentState,
	)
	if err != nil {
		return fmt.Errorf("update sale payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListUnpaidByCustomerForUpdate devuelve las ventas con saldo del cliente,
// más antiguas primero, bloqueadas FOR UPDATE para la imputación de cobros.
func (r *SaleRepo) ListUnpaidByCustomerForUpdate(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	sql := `SELECT ` + saleColumns + ` FROM sales s
		WHERE s.customer_id = $1 AND s.payment_state IN ($2, $3)
		ORDER BY s.date ASC, s.created_at ASC
		FOR UPDATE`
	rows, err := r.q.Query(ctx, sql, customerID, entity.PaymentStateUnpaid, entity.PaymentStatePartiallyPaid)
	if err != nil {
		return nil, fmt.Errorf("list unpaid sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.UserID, &s.Date, &s.SaleType, &s.PaymentMethod,
			&s.DeliveryState, &s.PaymentState, &s.Total, &s.PaidAmount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
