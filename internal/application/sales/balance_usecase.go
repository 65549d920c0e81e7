package sales

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

// BalanceUseCase deriva saldos pendientes desde el libro de ventas,
// devoluciones y cobros. Nunca hay un campo de saldo editable: siempre se
// recomputa desde el historial, en un snapshot de lectura consistente.
type BalanceUseCase struct {
	balanceRepo  repository.BalanceRepository
	customerRepo repository.CustomerRepository
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(balanceRepo repository.BalanceRepository, customerRepo repository.CustomerRepository) *BalanceUseCase {
	return &BalanceUseCase{balanceRepo: balanceRepo, customerRepo: customerRepo}
}

// OutstandingBalance devuelve el saldo pendiente del cliente:
// Σ(totales de ventas unpaid/partially_paid) − Σ(devoluciones contra esas
// ventas) − Σ(cobros). Si devoluciones+cobros superan las ventas, se informa 0
// y se registra la anomalía; jamás un saldo negativo.
func (uc *BalanceUseCase) OutstandingBalance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	if customer == nil {
		return decimal.Zero, domain.ErrNotFound
	}

	sums, err := uc.balanceRepo.CustomerLedgerSums(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	balance := sums.UnpaidSales.Sub(sums.Returns).Sub(sums.Collected)
	if balance.IsNegative() {
		log.Warn().
			Str("customer_id", customerID).
			Str("balance", balance.String()).
			Msg("saldo negativo derivado del libro; se informa 0")
		return decimal.Zero, nil
	}
	return balance, nil
}

// ListPendingCollection lista los clientes con saldo > 0, ordenados por saldo
// o nombre, paginados. Refleja el estado del libro al momento de la consulta
// (un único snapshot de lectura, sin caches).
func (uc *BalanceUseCase) ListPendingCollection(ctx context.Context, raw dto.PendingCollectionQuery) (*dto.PageResponse[dto.PendingCustomerResponse], error) {
	f, err := query.ParsePendingCollectionFilter(raw.Limit, raw.Offset, raw.Ordering)
	if err != nil {
		return nil, err
	}

	items, total, err := uc.balanceRepo.ListPendingCollection(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.PageResponse[dto.PendingCustomerResponse]{
		Total:  total,
		Limit:  f.Page.Limit,
		Offset: f.Page.Offset,
		Items:  make([]dto.PendingCustomerResponse, len(items)),
	}
	for i, p := range items {
		out.Items[i] = toPendingCustomerResponse(p)
	}
	return out, nil
}
