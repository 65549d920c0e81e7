package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain"
)

// Tipos de venta (nivel de precio aplicado al congelar los detalles).
const (
	SaleTypeRetail    = "retail"
	SaleTypeWholesale = "wholesale"
)

// Estados de entrega. La transición es de un solo sentido:
// pending_delivery → delivered.
const (
	DeliveryStatePending   = "pending_delivery"
	DeliveryStateDelivered = "delivered"
)

// Estados de pago, derivados del cobro acumulado y las devoluciones.
const (
	PaymentStateUnpaid        = "unpaid"
	PaymentStatePartiallyPaid = "partially_paid"
	PaymentStatePaid          = "paid"
)

// Métodos de pago aceptados. cuenta_corriente alimenta el circuito de cobranza.
const (
	PaymentMethodCash     = "efectivo"
	PaymentMethodCard     = "tarjeta"
	PaymentMethodTransfer = "transferencia"
	PaymentMethodQR       = "qr"
	PaymentMethodAccount  = "cuenta_corriente"
)

// ValidPaymentMethod indica si el método de pago es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodQR, PaymentMethodAccount:
		return true
	}
	return false
}

// SaleDetail es una línea de venta: producto, cantidad y precio congelado.
// El precio se copia del catálogo (retail o wholesale según el tipo de venta)
// al momento de crear la venta y nunca se recalcula.
type SaleDetail struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal // > 0; admite fracciones (productos por peso)
	UnitPrice decimal.Decimal
}

// Subtotal devuelve cantidad × precio unitario.
func (d SaleDetail) Subtotal() decimal.Decimal {
	return d.Quantity.Mul(d.UnitPrice)
}

// Sale representa una venta con sus detalles.
// Total siempre es la suma de los subtotales de Details; nunca lo fija el caller.
// PaidAmount es un contador derivado de los cobros, mantenido en la misma
// transacción que los registra (nunca editable desde afuera).
type Sale struct {
	ID            string
	CustomerID    string
	UserID        string // vendedor que registró la venta
	Date          time.Time
	SaleType      string // "retail" | "wholesale"
	PaymentMethod string
	DeliveryState string
	PaymentState  string
	Total         decimal.Decimal
	PaidAmount    decimal.Decimal
	Details       []SaleDetail
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComputeTotal recalcula Total como Σ(quantity × unit_price) sobre los detalles.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.Details {
		total = total.Add(d.Subtotal())
	}
	s.Total = total
	return total
}

// TransitionDelivery valida y aplica un cambio de estado de entrega.
// Única transición legal: pending_delivery → delivered.
func (s *Sale) TransitionDelivery(newState string) error {
	if newState != DeliveryStatePending && newState != DeliveryStateDelivered {
		return domain.ErrInvalidInput
	}
	if s.DeliveryState == DeliveryStatePending && newState == DeliveryStateDelivered {
		s.DeliveryState = DeliveryStateDelivered
		return nil
	}
	return domain.ErrInvalidStateTransition
}

// RecomputePaymentState deriva el estado de pago a partir del cobro acumulado
// y el monto devuelto contra la venta. Una venta queda "paid" cuando ya no se
// le debe nada (cobrado + devuelto ≥ total).
func (s *Sale) RecomputePaymentState(returnedAmount decimal.Decimal) {
	covered := s.PaidAmount.Add(returnedAmount)
	switch {
	case covered.GreaterThanOrEqual(s.Total) && s.Total.IsPositive():
		s.PaymentState = PaymentStatePaid
	case s.PaidAmount.IsPositive():
		s.PaymentState = PaymentStatePartiallyPaid
	default:
		s.PaymentState = PaymentStateUnpaid
	}
}

// OutstandingAmount devuelve lo que aún se debe de la venta (nunca negativo).
func (s *Sale) OutstandingAmount(returnedAmount decimal.Decimal) decimal.Decimal {
	owed := s.Total.Sub(returnedAmount).Sub(s.PaidAmount)
	if owed.IsNegative() {
		return decimal.Zero
	}
	return owed
}
