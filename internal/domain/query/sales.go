package query

import (
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
)

// Listas blancas de ordenamiento por entidad. Cualquier otra clave se rechaza
// para no exponer campos internos por accidente.
var (
	saleOrderKeys    = []string{"date", "total", "created_at"}
	returnOrderKeys  = []string{"date", "total", "created_at"}
	collectOrderKeys = []string{"date", "total"}
	pendingOrderKeys = []string{"balance", "name"}
	productOrderKeys = []string{"name", "retail_price", "created_at"}
)

// SaleFilter criterios normalizados para listar ventas.
type SaleFilter struct {
	CustomerID    string
	SaleType      string
	DeliveryState string
	PaymentState  string
	PaymentMethod string
	Search        string // matchea nombre del cliente (icontains)
	Dates         DateRange
	Totals        TotalRange
	Order         Ordering
	Page          Page
}

// RawSaleQuery valores crudos tal como llegan por query string.
type RawSaleQuery struct {
	Limit         int
	Offset        int
	Ordering      string
	Customer      string
	SaleType      string
	State         string // delivery_state
	PaymentState  string
	PaymentMethod string
	Search        string
	Date          string
	StartDate     string
	EndDate       string
	MinTotal      string
	MaxTotal      string
}

// ParseSaleFilter normaliza y valida el filtro de ventas.
func ParseSaleFilter(raw RawSaleQuery) (SaleFilter, error) {
	f := SaleFilter{
		CustomerID: raw.Customer,
		Search:     raw.Search,
		Page:       DefaultPage(raw.Limit, raw.Offset),
	}

	switch raw.SaleType {
	case "", entity.SaleTypeRetail, entity.SaleTypeWholesale:
		f.SaleType = raw.SaleType
	default:
		return SaleFilter{}, domain.ErrInvalidFilter
	}
	switch raw.State {
	case "", entity.DeliveryStatePending, entity.DeliveryStateDelivered:
		f.DeliveryState = raw.State
	default:
		return SaleFilter{}, domain.ErrInvalidFilter
	}
	switch raw.PaymentState {
	case "", entity.PaymentStateUnpaid, entity.PaymentStatePartiallyPaid, entity.PaymentStatePaid:
		f.PaymentState = raw.PaymentState
	default:
		return SaleFilter{}, domain.ErrInvalidFilter
	}
	if raw.PaymentMethod != "" && !entity.ValidPaymentMethod(raw.PaymentMethod) {
		return SaleFilter{}, domain.ErrInvalidFilter
	}
	f.PaymentMethod = raw.PaymentMethod

	var err error
	if f.Order, err = ParseOrdering(raw.Ordering, saleOrderKeys...); err != nil {
		return SaleFilter{}, err
	}
	if f.Dates, err = ParseDateRange(raw.StartDate, raw.EndDate, raw.Date); err != nil {
		return SaleFilter{}, err
	}
	if f.Totals, err = ParseTotalRange(raw.MinTotal, raw.MaxTotal); err != nil {
		return SaleFilter{}, err
	}
	return f, nil
}

// ReturnFilter criterios normalizados para listar devoluciones.
type ReturnFilter struct {
	CustomerID string
	Search     string // matchea nombre del cliente
	Dates      DateRange
	Totals     TotalRange
	Order      Ordering
	Page       Page
}

// RawReturnQuery valores crudos del listado de devoluciones.
type RawReturnQuery struct {
	Limit     int
	Offset    int
	Ordering  string
	Customer  string
	Search    string
	Date      string
	StartDate string
	EndDate   string
	MinTotal  string
	MaxTotal  string
}

// ParseReturnFilter normaliza y valida el filtro de devoluciones.
func ParseReturnFilter(raw RawReturnQuery) (ReturnFilter, error) {
	f := ReturnFilter{
		CustomerID: raw.Customer,
		Search:     raw.Search,
		Page:       DefaultPage(raw.Limit, raw.Offset),
	}
	var err error
	if f.Order, err = ParseOrdering(raw.Ordering, returnOrderKeys...); err != nil {
		return ReturnFilter{}, err
	}
	if f.Dates, err = ParseDateRange(raw.StartDate, raw.EndDate, raw.Date); err != nil {
		return ReturnFilter{}, err
	}
	if f.Totals, err = ParseTotalRange(raw.MinTotal, raw.MaxTotal); err != nil {
		return ReturnFilter{}, err
	}
	return f, nil
}

// CollectFilter criterios normalizados para listar cobros.
type CollectFilter struct {
	CustomerID string
	Dates      DateRange
	Order      Ordering
	Page       Page
}

// RawCollectQuery valores crudos del listado de cobros.
type RawCollectQuery struct {
	Limit     int
	Offset    int
	Ordering  string
	Customer  string
	Date      string
	StartDate string
	EndDate   string
}

// ParseCollectFilter normaliza y valida el filtro de cobros.
func ParseCollectFilter(raw RawCollectQuery) (CollectFilter, error) {
	f := CollectFilter{
		CustomerID: raw.Customer,
		Page:       DefaultPage(raw.Limit, raw.Offset),
	}
	var err error
	if f.Order, err = ParseOrdering(raw.Ordering, collectOrderKeys...); err != nil {
		return CollectFilter{}, err
	}
	if f.Dates, err = ParseDateRange(raw.StartDate, raw.EndDate, raw.Date); err != nil {
		return CollectFilter{}, err
	}
	return f, nil
}

// PendingCollectionFilter paginación y orden del listado de clientes con saldo.
type PendingCollectionFilter struct {
	Order Ordering
	Page  Page
}

// ParsePendingCollectionFilter valida ordenamiento ("balance" o "name") y página.
func ParsePendingCollectionFilter(limit, offset int, ordering string) (PendingCollectionFilter, error) {
	o, err := ParseOrdering(ordering, pendingOrderKeys...)
	if err != nil {
		return PendingCollectionFilter{}, err
	}
	if o.Key == "" {
		o = Ordering{Key: "balance", Desc: true} // mayor deuda primero
	}
	return PendingCollectionFilter{Order: o, Page: DefaultPage(limit, offset)}, nil
}

// ProductOrdering valida la clave de orden del catálogo.
func ProductOrdering(ordering string) (Ordering, error) {
	return ParseOrdering(ordering, productOrderKeys...)
}
