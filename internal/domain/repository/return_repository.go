package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
)

// ReturnRepository define el puerto de persistencia para devoluciones.
// Índice implícito "devoluciones por venta": las consultas acumuladas por
// sale_id son el corazón del chequeo de sobre-devolución.
type ReturnRepository interface {
	// Create inserta la devolución con sus detalles (misma transacción del caller).
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, id string) (*entity.Return, error)
	List(ctx context.Context, f query.ReturnFilter) ([]*entity.Return, int, error)
	// ReturnedQuantitiesBySale devuelve, por producto, la cantidad ya devuelta
	// acumulada contra la venta.
	ReturnedQuantitiesBySale(ctx context.Context, saleID string) (map[string]decimal.Decimal, error)
	// ReturnedAmountBySale devuelve el monto total ya devuelto contra la venta.
	ReturnedAmountBySale(ctx context.Context, saleID string) (decimal.Decimal, error)
}
