package sales

import (
	"context"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

// SaleUseCase lecturas del libro de ventas y máquina de estados de entrega.
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	receipts     ReceiptGenerator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	receipts ReceiptGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		receipts:     receipts,
	}
}

// GetByID devuelve una venta con sus detalles.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// List devuelve una página de ventas según el filtro normalizado.
func (uc *SaleUseCase) List(ctx context.Context, raw dto.SaleListQuery) (*dto.PageResponse[*dto.SaleResponse], error) {
	f, err := query.ParseSaleFilter(query.RawSaleQuery{
		Limit:         raw.Limit,
		Offset:        raw.Offset,
		Ordering:      raw.Ordering,
		Customer:      raw.Customer,
		SaleType:      raw.SaleType,
		State:         raw.State,
		PaymentState:  raw.PaymentState,
		PaymentMethod: raw.PaymentMethod,
		Search:        raw.Search,
		Date:          raw.Date,
		StartDate:     raw.StartDate,
		EndDate:       raw.EndDate,
		MinTotal:      raw.MinTotal,
		MaxTotal:      raw.MaxTotal,
	})
	if err != nil {
		return nil, err
	}

	items, total, err := uc.saleRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.PageResponse[*dto.SaleResponse]{
		Total:  total,
		Limit:  f.Page.Limit,
		Offset: f.Page.Offset,
		Items:  make([]*dto.SaleResponse, len(items)),
	}
	for i, s := range items {
		out.Items[i] = toSaleResponse(s)
	}
	return out, nil
}

// MarkAsDelivered aplica la única transición legal del estado de entrega
// (pending_delivery → delivered) bajo el lock de la venta. Repetir la
// transición falla limpio con ErrInvalidStateTransition, sin efectos dobles.
func (uc *SaleUseCase) MarkAsDelivered(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	var out *dto.SaleResponse
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.ProductRepository,
		_ repository.CustomerRepository,
	) error {
		sale, err := saleRepo.GetByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if err := sale.TransitionDelivery(entity.DeliveryStateDelivered); err != nil {
			return err
		}
		if err := saleRepo.UpdateDeliveryState(ctx, sale.ID, sale.DeliveryState); err != nil {
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

// Receipt genera el comprobante PDF de la venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, sale.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	ids := make([]string, len(sale.Details))
	for i, d := range sale.Details {
		ids[i] = d.ProductID
	}
	products, err := uc.productRepo.GetManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, len(sale.Details))
	for i, d := range sale.Details {
		name := d.ProductID
		if p, ok := products[d.ProductID]; ok {
			name = p.Name
		}
		lines[i] = ReceiptLine{
			ProductName: name,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal(),
		}
	}
	return uc.receipts.GenerateReceipt(ctx, sale, customer, lines)
}
