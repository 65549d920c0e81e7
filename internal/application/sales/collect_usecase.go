package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
	"github.com/lapanasystem/lapana-api/pkg/validator"
)

// CollectUseCase registra cobros. Un cobro sobre una venta puntual se imputa
// directo; un cobro a nivel cliente se reparte FIFO (venta impaga más antigua
// primero). Un cobro que excede el saldo pendiente se rechaza, nunca se capea:
// el saldo de un cliente no puede quedar negativo.
type CollectUseCase struct {
	txRunner    TxRunner
	collectRepo repository.CollectRepository
}

// NewCollectUseCase construye el caso de uso.
func NewCollectUseCase(txRunner TxRunner, collectRepo repository.CollectRepository) *CollectUseCase {
	return &CollectUseCase{txRunner: txRunner, collectRepo: collectRepo}
}

// Create registra el cobro y actualiza el estado de pago de las ventas
// cubiertas, todo en una transacción con las ventas bloqueadas FOR UPDATE.
func (uc *CollectUseCase) Create(ctx context.Context, userID string, in dto.CreateCollectRequest) (*dto.CollectResult, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.CollectResult
	err := uc.txRunner.RunCollect(ctx, func(
		saleRepo repository.SaleRepository,
		returnRepo repository.ReturnRepository,
		collectRepo repository.CollectRepository,
		customerRepo repository.CustomerRepository,
	) error {
		customer, err := customerRepo.GetByID(ctx, in.Customer)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		// Ventas objetivo: una puntual o todas las impagas del cliente (FIFO).
		var targets []*entity.Sale
		if in.Sale != "" {
			sale, err := saleRepo.GetByIDForUpdate(ctx, in.Sale)
			if err != nil {
				return err
			}
			if sale == nil {
				return domain.ErrNotFound
			}
			if sale.CustomerID != customer.ID {
				return domain.ErrInvalidInput
			}
			targets = []*entity.Sale{sale}
		} else {
			targets, err = saleRepo.ListUnpaidByCustomerForUpdate(ctx, customer.ID)
			if err != nil {
				return err
			}
		}

		// Saldo cubrible por venta (total − devuelto − cobrado, piso 0).
		outstanding := make([]decimal.Decimal, len(targets))
		returned := make([]decimal.Decimal, len(targets))
		available := decimal.Zero
		for i, sale := range targets {
			returned[i], err = returnRepo.ReturnedAmountBySale(ctx, sale.ID)
			if err != nil {
				return err
			}
			outstanding[i] = sale.OutstandingAmount(returned[i])
			available = available.Add(outstanding[i])
		}
		if in.Amount.GreaterThan(available) {
			return domain.ErrPaymentExceedsBalance
		}

		now := time.Now()
		remaining := in.Amount
		result := &dto.CollectResult{}
		for i, sale := range targets {
			if !remaining.IsPositive() {
				break
			}
			applied := decimal.Min(remaining, outstanding[i])
			if !applied.IsPositive() {
				continue
			}
			collect := &entity.Collect{
				ID:         uuid.New().String(),
				CustomerID: customer.ID,
				SaleID:     sale.ID,
				UserID:     userID,
				Amount:     applied,
				Date:       now,
				CreatedAt:  now,
			}
			if err := collectRepo.Create(ctx, collect); err != nil {
				return err
			}

			sale.PaidAmount = sale.PaidAmount.Add(applied)
			sale.RecomputePaymentState(returned[i])
			if err := saleRepo.UpdatePayment(ctx, sale.ID, sale.PaidAmount, sale.PaymentState); err != nil {
				return err
			}

			remaining = remaining.Sub(applied)
			result.Collects = append(result.Collects, toCollectResponse(collect))
		}
		result.RemainingBalance = available.Sub(in.Amount)
		out = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve una página de cobros según el filtro normalizado.
func (uc *CollectUseCase) List(ctx context.Context, raw dto.CollectListQuery) (*dto.PageResponse[dto.CollectResponse], error) {
	f, err := query.ParseCollectFilter(query.RawCollectQuery{
		Limit:     raw.Limit,
		Offset:    raw.Offset,
		Ordering:  raw.Ordering,
		Customer:  raw.Customer,
		Date:      raw.Date,
		StartDate: raw.StartDate,
		EndDate:   raw.EndDate,
	})
	if err != nil {
		return nil, err
	}

	items, total, err := uc.collectRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.PageResponse[dto.CollectResponse]{
		Total:  total,
		Limit:  f.Page.Limit,
		Offset: f.Page.Offset,
		Items:  make([]dto.CollectResponse, len(items)),
	}
	for i, c := range items {
		out.Items[i] = toCollectResponse(c)
	}
	return out, nil
}
