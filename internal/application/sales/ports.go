package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

// TxRunner ejecuta mutaciones del libro dentro de una transacción con los
// repos atados a ella. Las implementaciones reintentan fallas de
// serialización (hasta 3 veces) antes de devolver domain.ErrConflict.
type TxRunner interface {
	// RunSale transacción para crear ventas y cambiar su estado de entrega.
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error

	// RunReturn transacción para registrar devoluciones (requiere el lock de la venta).
	RunReturn(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		returnRepo repository.ReturnRepository,
		customerRepo repository.CustomerRepository,
	) error) error

	// RunCollect transacción para registrar cobros e imputarlos a ventas.
	RunCollect(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		returnRepo repository.ReturnRepository,
		collectRepo repository.CollectRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// ReceiptLine línea del comprobante con el nombre del producto resuelto.
type ReceiptLine struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptGenerator renderiza el comprobante de una venta (PDF).
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []ReceiptLine) ([]byte, error)
}
