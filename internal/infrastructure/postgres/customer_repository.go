package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, email, phone_number, address, customer_type, created_at, updated_at`

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	sql := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, sql,
		customer.ID, customer.Name, customer.Email, customer.PhoneNumber,
		customer.Address, customer.CustomerType, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil sin error si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	sql := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Address, &c.CustomerType, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista clientes con paginación, alfabético por nombre.
func (r *CustomerRepo) List(ctx context.Context, page query.Page) ([]*entity.Customer, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	sql := `SELECT ` + customerColumns + ` FROM customers ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, sql, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Address,
			&c.CustomerType, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// Update actualiza un cliente. El customer_type es inmutable.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	sql := `
		UPDATE customers
		SET name = $2, email = $3, phone_number = $4, address = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, sql,
		customer.ID, customer.Name, customer.Email, customer.PhoneNumber,
		customer.Address, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
