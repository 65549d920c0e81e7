package sales_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

// fakeStore es la "base de datos" en memoria compartida por los fakes.
type fakeStore struct {
	customers map[string]*entity.Customer
	products  map[string]*entity.Product
	sales     map[string]*entity.Sale
	returns   map[string]*entity.Return
	collects  []*entity.Collect
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: make(map[string]*entity.Customer),
		products:  make(map[string]*entity.Product),
		sales:     make(map[string]*entity.Sale),
		returns:   make(map[string]*entity.Return),
	}
}

// ── Product ──────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.store.products[id], nil
}

func (r *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetManyByID(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ query.Ordering, _ query.Page) ([]*entity.Product, int, error) {
	var list []*entity.Product
	for _, p := range r.store.products {
		list = append(list, p)
	}
	return list, len(list), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

// ── Customer ─────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct{ store *fakeStore }

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.store.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.store.customers[id], nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ query.Page) ([]*entity.Customer, int, error) {
	var list []*entity.Customer
	for _, c := range r.store.customers {
		list = append(list, c)
	}
	return list, len(list), nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.store.customers[c.ID] = c
	return nil
}

// ── Sale ─────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct{ store *fakeStore }

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.store.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	return r.store.sales[id], nil
}

func (r *fakeSaleRepo) GetByIDForUpdate(_ context.Context, id string) (*entity.Sale, error) {
	return r.store.sales[id], nil
}

func (r *fakeSaleRepo) List(_ context.Context, f query.SaleFilter) ([]*entity.Sale, int, error) {
	var list []*entity.Sale
	for _, s := range r.store.sales {
		if f.CustomerID != "" && s.CustomerID != f.CustomerID {
			continue
		}
		if f.PaymentState != "" && s.PaymentState != f.PaymentState {
			continue
		}
		list = append(list, s)
	}
	return list, len(list), nil
}

func (r *fakeSaleRepo) UpdateDeliveryState(_ context.Context, saleID, state string) error {
	r.store.sales[saleID].DeliveryState = state
	return nil
}

func (r *fakeSaleRepo) UpdatePayment(_ context.Context, saleID string, paidAmount decimal.Decimal, paymentState string) error {
	s := r.store.sales[saleID]
	s.PaidAmount = paidAmount
	s.PaymentState = paymentState
	return nil
}

func (r *fakeSaleRepo) ListUnpaidByCustomerForUpdate(_ context.Context, customerID string) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, s := range r.store.sales {
		if s.CustomerID != customerID {
			continue
		}
		if s.PaymentState != entity.PaymentStateUnpaid && s.PaymentState != entity.PaymentStatePartiallyPaid {
			continue
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

// ── Return ───────────────────────────────────────────────────────────────────

type fakeReturnRepo struct{ store *fakeStore }

func (r *fakeReturnRepo) Create(_ context.Context, ret *entity.Return) error {
	r.store.returns[ret.ID] = ret
	return nil
}

func (r *fakeReturnRepo) GetByID(_ context.Context, id string) (*entity.Return, error) {
	return r.store.returns[id], nil
}

func (r *fakeReturnRepo) List(_ context.Context, f query.ReturnFilter) ([]*entity.Return, int, error) {
	var list []*entity.Return
	for _, ret := range r.store.returns {
		if f.CustomerID != "" && ret.CustomerID != f.CustomerID {
			continue
		}
		list = append(list, ret)
	}
	return list, len(list), nil
}

func (r *fakeReturnRepo) ReturnedQuantitiesBySale(_ context.Context, saleID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, ret := range r.store.returns {
		if ret.SaleID != saleID {
			continue
		}
		for _, d := range ret.Details {
			out[d.ProductID] = out[d.ProductID].Add(d.Quantity)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) ReturnedAmountBySale(_ context.Context, saleID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, ret := range r.store.returns {
		if ret.SaleID == saleID {
			total = total.Add(ret.Amount)
		}
	}
	return total, nil
}

// ── Collect ──────────────────────────────────────────────────────────────────

type fakeCollectRepo struct{ store *fakeStore }

func (r *fakeCollectRepo) Create(_ context.Context, c *entity.Collect) error {
	r.store.collects = append(r.store.collects, c)
	return nil
}

func (r *fakeCollectRepo) List(_ context.Context, f query.CollectFilter) ([]*entity.Collect, int, error) {
	var list []*entity.Collect
	for _, c := range r.store.collects {
		if f.CustomerID != "" && c.CustomerID != f.CustomerID {
			continue
		}
		list = append(list, c)
	}
	return list, len(list), nil
}

// ── Balance ──────────────────────────────────────────────────────────────────

// fakeBalanceRepo deriva las sumas del libro directamente del store, igual que
// lo haría la consulta SQL sobre un snapshot.
type fakeBalanceRepo struct{ store *fakeStore }

func (r *fakeBalanceRepo) CustomerLedgerSums(ctx context.Context, customerID string) (repository.LedgerSums, error) {
	returnRepo := &fakeReturnRepo{store: r.store}
	var sums repository.LedgerSums
	for _, s := range r.store.sales {
		if s.CustomerID != customerID {
			continue
		}
		if s.PaymentState != entity.PaymentStateUnpaid && s.PaymentState != entity.PaymentStatePartiallyPaid {
			continue
		}
		sums.UnpaidSales = sums.UnpaidSales.Add(s.Total)
		ret, _ := returnRepo.ReturnedAmountBySale(ctx, s.ID)
		sums.Returns = sums.Returns.Add(ret)
		sums.Collected = sums.Collected.Add(s.PaidAmount)
	}
	return sums, nil
}

func (r *fakeBalanceRepo) ListPendingCollection(ctx context.Context, f query.PendingCollectionFilter) ([]repository.PendingCustomer, int, error) {
	var list []repository.PendingCustomer
	for id, c := range r.store.customers {
		sums, _ := r.CustomerLedgerSums(ctx, id)
		balance := sums.UnpaidSales.Sub(sums.Returns).Sub(sums.Collected)
		if !balance.IsPositive() {
			continue
		}
		list = append(list, repository.PendingCustomer{
			CustomerID:   id,
			Name:         c.Name,
			PhoneNumber:  c.PhoneNumber,
			Address:      c.Address,
			CustomerType: c.CustomerType,
			Balance:      balance,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if f.Order.Key == "name" {
			if f.Order.Desc {
				return list[i].Name > list[j].Name
			}
			return list[i].Name < list[j].Name
		}
		if f.Order.Desc {
			return list[i].Balance.GreaterThan(list[j].Balance)
		}
		return list[i].Balance.LessThan(list[j].Balance)
	})
	return list, len(list), nil
}

// ── Statistics ───────────────────────────────────────────────────────────────

// fakeStatsRepo agrega el store en memoria con la misma semántica que las
// consultas SQL: las devoluciones se suman por fecha y sin filtro de producto.
type fakeStatsRepo struct{ store *fakeStore }

func (r *fakeStatsRepo) saleMatches(s *entity.Sale, start, end time.Time, productID string) bool {
	if s.Date.Before(start) || s.Date.After(end) {
		return false
	}
	if productID == "" {
		return true
	}
	for _, d := range s.Details {
		if d.ProductID == productID {
			return true
		}
	}
	return false
}

func (r *fakeStatsRepo) Totals(_ context.Context, start, end time.Time, productID string) (repository.StatsTotals, error) {
	var t repository.StatsTotals
	for _, s := range r.store.sales {
		if r.saleMatches(s, start, end, productID) {
			t.Revenue = t.Revenue.Add(s.Total)
			t.SaleCount++
		}
	}
	for _, ret := range r.store.returns {
		if !ret.Date.Before(start) && !ret.Date.After(end) {
			t.ReturnsAmount = t.ReturnsAmount.Add(ret.Amount)
		}
	}
	return t, nil
}

func (r *fakeStatsRepo) bucketsBy(start, end time.Time, productID string, key func(*entity.Sale) string) []repository.StatsBucket {
	agg := make(map[string]*repository.StatsBucket)
	for _, s := range r.store.sales {
		if !r.saleMatches(s, start, end, productID) {
			continue
		}
		k := key(s)
		b, ok := agg[k]
		if !ok {
			b = &repository.StatsBucket{Key: k}
			agg[k] = b
		}
		b.Count++
		b.Revenue = b.Revenue.Add(s.Total)
	}
	keys := make([]string, 0, len(agg))
	for k := range agg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]repository.StatsBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *agg[k])
	}
	return out
}

func (r *fakeStatsRepo) BySaleType(_ context.Context, start, end time.Time, productID string) ([]repository.StatsBucket, error) {
	return r.bucketsBy(start, end, productID, func(s *entity.Sale) string { return s.SaleType }), nil
}

func (r *fakeStatsRepo) ByDeliveryState(_ context.Context, start, end time.Time, productID string) ([]repository.StatsBucket, error) {
	return r.bucketsBy(start, end, productID, func(s *entity.Sale) string { return s.DeliveryState }), nil
}

func (r *fakeStatsRepo) ProductQuantitySold(_ context.Context, start, end time.Time, productID string) (decimal.Decimal, error) {
	qty := decimal.Zero
	for _, s := range r.store.sales {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		for _, d := range s.Details {
			if d.ProductID == productID {
				qty = qty.Add(d.Quantity)
			}
		}
	}
	return qty, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta los callbacks directamente sobre el store, sin
// transacción real.
type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) RunSale(_ context.Context, fn func(
	repository.SaleRepository,
	repository.ProductRepository,
	repository.CustomerRepository,
) error) error {
	return fn(&fakeSaleRepo{r.store}, &fakeProductRepo{r.store}, &fakeCustomerRepo{r.store})
}

func (r *fakeTxRunner) RunReturn(_ context.Context, fn func(
	repository.SaleRepository,
	repository.ReturnRepository,
	repository.CustomerRepository,
) error) error {
	return fn(&fakeSaleRepo{r.store}, &fakeReturnRepo{r.store}, &fakeCustomerRepo{r.store})
}

func (r *fakeTxRunner) RunCollect(_ context.Context, fn func(
	repository.SaleRepository,
	repository.ReturnRepository,
	repository.CollectRepository,
	repository.CustomerRepository,
) error) error {
	return fn(&fakeSaleRepo{r.store}, &fakeReturnRepo{r.store}, &fakeCollectRepo{r.store}, &fakeCustomerRepo{r.store})
}
