package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
	"github.com/lapanasystem/lapana-api/pkg/validator"
)

// CreateSaleUseCase crea una venta con sus detalles en una sola transacción.
// El precio unitario de cada línea se congela desde el catálogo según el tipo
// de venta; el total es siempre la suma de los detalles.
type CreateSaleUseCase struct {
	txRunner TxRunner
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner}
}

// Create valida y persiste la venta. Reglas:
//   - al menos un detalle, cantidades > 0, sin productos repetidos
//   - el producto de cada detalle debe existir
//   - el customer_type del cliente debe coincidir con el sale_type
//
// Una venta rechazada no deja detalles huérfanos: todo ocurre en una transacción.
func (uc *CreateSaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = entity.PaymentMethodCash
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	productIDs := make([]string, 0, len(in.SaleDetails))
	seen := make(map[string]bool, len(in.SaleDetails))
	for _, d := range in.SaleDetails {
		if !d.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if seen[d.Product] {
			// un producto por línea; cantidades se consolidan del lado del caller
			return nil, domain.ErrInvalidInput
		}
		seen[d.Product] = true
		productIDs = append(productIDs, d.Product)
	}

	var out *dto.SaleResponse
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error {
		customer, err := customerRepo.GetByID(ctx, in.Client)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if customer.CustomerType != in.SaleType {
			return domain.ErrInvalidInput
		}

		products, err := productRepo.GetManyByID(ctx, productIDs)
		if err != nil {
			return err
		}

		now := time.Now()
		sale := &entity.Sale{
			ID:            uuid.New().String(),
			CustomerID:    customer.ID,
			UserID:        userID,
			Date:          now,
			SaleType:      in.SaleType,
			PaymentMethod: in.PaymentMethod,
			DeliveryState: entity.DeliveryStatePending,
			PaymentState:  entity.PaymentStateUnpaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for _, d := range in.SaleDetails {
			product, ok := products[d.Product]
			if !ok {
				return domain.ErrInvalidInput
			}
			sale.Details = append(sale.Details, entity.SaleDetail{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  d.Quantity,
				UnitPrice: product.PriceFor(in.SaleType), // snapshot, inmune a cambios de precio
			})
		}
		sale.ComputeTotal()

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		out = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
