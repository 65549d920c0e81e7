package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
)

// SaleRepository define el puerto de persistencia para ventas y sus detalles.
type SaleRepository interface {
	// Create inserta la venta con todos sus detalles (misma transacción del caller).
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la fila de la venta (SELECT ... FOR UPDATE) para
	// serializar mutaciones concurrentes sobre la misma venta. Solo tiene
	// sentido dentro de una transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, f query.SaleFilter) ([]*entity.Sale, int, error)
	// UpdateDeliveryState persiste el estado de entrega ya validado.
	UpdateDeliveryState(ctx context.Context, saleID, state string) error
	// UpdatePayment persiste el contador de cobro y el estado de pago derivado.
	UpdatePayment(ctx context.Context, saleID string, paidAmount decimal.Decimal, paymentState string) error
	// ListUnpaidByCustomerForUpdate devuelve las ventas con saldo del cliente
	// (unpaid/partially_paid), más antiguas primero, bloqueadas FOR UPDATE.
	ListUnpaidByCustomerForUpdate(ctx context.Context, customerID string) ([]*entity.Sale, error)
}
