package repository

import (
	"context"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
)

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, page query.Page) ([]*entity.Customer, int, error)
	Update(ctx context.Context, customer *entity.Customer) error
}
