package repository

import (
	"context"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
)

// CollectRepository define el puerto de persistencia para cobros.
type CollectRepository interface {
	Create(ctx context.Context, collect *entity.Collect) error
	List(ctx context.Context, f query.CollectFilter) ([]*entity.Collect, int, error)
}
