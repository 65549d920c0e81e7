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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, barcode, name, slug, retail_price, wholesale_price, weight, weight_unit, category, brand, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	sql := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, sql,
		product.ID, product.Barcode, product.Name, product.Slug,
		product.RetailPrice, product.WholesalePrice, product.Weight, product.WeightUnit,
		product.Category, product.Brand, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getBy(ctx context.Context, where string, arg any) (*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE ` + where
	var p entity.Product
	err := r.q.QueryRow(ctx, sql, arg).Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Slug, &p.RetailPrice, &p.WholesalePrice,
		&p.Weight, &p.WeightUnit, &p.Category, &p.Brand, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getBy(ctx, `id = $1`, id)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getBy(ctx, `barcode = $1`, barcode)
}

// GetBySlug obtiene un producto por slug.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return r.getBy(ctx, `slug = $1`, slug)
}

// GetManyByID devuelve los productos pedidos indexados por ID.
func (r *ProductRepo) GetManyByID(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	if len(ids) == 0 {
		return map[string]*entity.Product{}, nil
	}
	sql := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, sql, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*entity.Product, len(ids))
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Barcode, &p.Name, &p.Slug, &p.RetailPrice, &p.WholesalePrice,
			&p.Weight, &p.WeightUnit, &p.Category, &p.Brand, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result[p.ID] = &p
	}
	return result, rows.Err()
}

// List lista el catálogo con orden y paginación.
func (r *ProductRepo) List(ctx context.Context, order query.Ordering, page query.Page) ([]*entity.Product, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	orderBy := "created_at DESC"
	if order.Key != "" {
		orderBy = order.Key + sortDirection(order.Desc)
	}
	sql := `SELECT ` + productColumns + ` FROM products ORDER BY ` + orderBy + ` LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, sql, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Barcode, &p.Name, &p.Slug, &p.RetailPrice, &p.WholesalePrice,
			&p.Weight, &p.WeightUnit, &p.Category, &p.Brand, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Update actualiza un producto existente. El barcode es inmutable.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	sql := `
		UPDATE products
		SET name = $2, slug = $3, retail_price = $4, wholesale_price = $5,
		    weight = $6, weight_unit = $7, category = $8, brand = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, sql,
		product.ID, product.Name, product.Slug, product.RetailPrice, product.WholesalePrice,
		product.Weight, product.WeightUnit, product.Category, product.Brand, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func sortDirection(desc bool) string {
	if desc {
		return " DESC"
	}
	return " ASC"
}
