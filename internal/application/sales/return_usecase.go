package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
	"github.com/lapanasystem/lapana-api/pkg/validator"
)

// ReturnUseCase registra devoluciones como ajustes compensatorios: la venta
// referenciada nunca se reescribe, queda el historial de qué se vendió y qué
// volvió.
type ReturnUseCase struct {
	txRunner   TxRunner
	returnRepo repository.ReturnRepository
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(txRunner TxRunner, returnRepo repository.ReturnRepository) *ReturnUseCase {
	return &ReturnUseCase{txRunner: txRunner, returnRepo: returnRepo}
}

// Create valida y persiste una devolución. El chequeo de sobre-devolución es
// atómico: se toma el lock de la venta (FOR UPDATE) antes de leer las
// cantidades ya devueltas, de modo que dos devoluciones concurrentes contra la
// misma venta no puedan pasar ambas el "acumulado ≤ vendido".
func (uc *ReturnUseCase) Create(ctx context.Context, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.ReturnDetails))
	for _, d := range in.ReturnDetails {
		if !d.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if seen[d.Product] {
			return nil, domain.ErrInvalidInput
		}
		seen[d.Product] = true
	}

	var out *dto.ReturnResponse
	err := uc.txRunner.RunReturn(ctx, func(
		saleRepo repository.SaleRepository,
		returnRepo repository.ReturnRepository,
		customerRepo repository.CustomerRepository,
	) error {
		sale, err := saleRepo.GetByIDForUpdate(ctx, in.Sale)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		customer, err := customerRepo.GetByID(ctx, in.Customer)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if sale.CustomerID != customer.ID {
			return domain.ErrInvalidInput
		}

		// Cantidades vendidas y precio congelado, por producto.
		sold := make(map[string]entity.SaleDetail, len(sale.Details))
		for _, d := range sale.Details {
			sold[d.ProductID] = d
		}
		returned, err := returnRepo.ReturnedQuantitiesBySale(ctx, sale.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		ret := &entity.Return{
			ID:         uuid.New().String(),
			SaleID:     sale.ID,
			CustomerID: customer.ID,
			UserID:     userID,
			Date:       now,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, d := range in.ReturnDetails {
			saleDetail, ok := sold[d.Product]
			if !ok {
				// producto que la venta nunca incluyó: acumulado > 0 vendido
				return domain.ErrOverReturn
			}
			cumulative := returned[d.Product].Add(d.Quantity)
			if cumulative.GreaterThan(saleDetail.Quantity) {
				return domain.ErrOverReturn
			}
			ret.Details = append(ret.Details, entity.ReturnDetail{
				ID:        uuid.New().String(),
				ReturnID:  ret.ID,
				ProductID: d.Product,
				Quantity:  d.Quantity,
				UnitPrice: saleDetail.UnitPrice, // mismo snapshot que la venta original
			})
		}
		ret.ComputeAmount()

		if err := returnRepo.Create(ctx, ret); err != nil {
			return err
		}

		// Lo devuelto reduce lo que se debe de la venta: re-derivar payment_state.
		returnedAmount, err := returnRepo.ReturnedAmountBySale(ctx, sale.ID)
		if err != nil {
			return err
		}
		sale.RecomputePaymentState(returnedAmount)
		if err := saleRepo.UpdatePayment(ctx, sale.ID, sale.PaidAmount, sale.PaymentState); err != nil {
			return err
		}

		out = toReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve una página de devoluciones según el filtro normalizado.
func (uc *ReturnUseCase) List(ctx context.Context, raw dto.ReturnListQuery) (*dto.PageResponse[*dto.ReturnResponse], error) {
	f, err := query.ParseReturnFilter(query.RawReturnQuery{
		Limit:     raw.Limit,
		Offset:    raw.Offset,
		Ordering:  raw.Ordering,
		Customer:  raw.Customer,
		Search:    raw.Search,
		Date:      raw.Date,
		StartDate: raw.StartDate,
		EndDate:   raw.EndDate,
		MinTotal:  raw.MinTotal,
		MaxTotal:  raw.MaxTotal,
	})
	if err != nil {
		return nil, err
	}

	items, total, err := uc.returnRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.PageResponse[*dto.ReturnResponse]{
		Total:  total,
		Limit:  f.Page.Limit,
		Offset: f.Page.Offset,
		Items:  make([]*dto.ReturnResponse, len(items)),
	}
	for i, r := range items {
		out.Items[i] = toReturnResponse(r)
	}
	return out, nil
}
