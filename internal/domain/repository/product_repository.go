package repository

import (
	"context"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
)

// ProductRepository define el puerto de persistencia para el catálogo.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	// GetManyByID devuelve los productos pedidos indexados por ID. Los IDs
	// inexistentes simplemente no aparecen en el mapa.
	GetManyByID(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context, order query.Ordering, page query.Page) ([]*entity.Product, int, error)
	Update(ctx context.Context, product *entity.Product) error
}
