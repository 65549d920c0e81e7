package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/application/sales"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
)

func TestCollect_VentaPuntual(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	uc := sales.NewCollectUseCase(&fakeTxRunner{store}, &fakeCollectRepo{store})

	out, err := uc.Create(context.Background(), "u1", dto.CreateCollectRequest{
		Customer: "c1",
		Sale:     "s1",
		Amount:   dec("200"),
	})
	require.NoError(t, err)
	require.Len(t, out.Collects, 1)
	assert.True(t, dec("200").Equal(out.Collects[0].Amount))
	assert.Equal(t, "s1", out.Collects[0].Sale)
	assert.True(t, dec("450").Equal(out.RemainingBalance), "650 − 200 pendientes")

	s := store.sales["s1"]
	assert.True(t, dec("200").Equal(s.PaidAmount))
	assert.Equal(t, entity.PaymentStatePartiallyPaid, s.PaymentState)
}

func TestCollect_FIFOEntreVentas(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	// Dos ventas impagas: la más antigua de 100, la más nueva de 200.
	newSale(store, "s-vieja", "c1", time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		entity.SaleDetail{ID: "d1", ProductID: "p1", Quantity: dec("1"), UnitPrice: dec("100")},
	)
	newSale(store, "s-nueva", "c1", time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
		entity.SaleDetail{ID: "d2", ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("100")},
	)
	uc := sales.NewCollectUseCase(&fakeTxRunner{store}, &fakeCollectRepo{store})

	out, err := uc.Create(context.Background(), "u1", dto.CreateCollectRequest{
		Customer: "c1",
		Amount:   dec("150"),
	})
	require.NoError(t, err)

	// La venta más antigua se salda primero; el resto va a la siguiente.
	require.Len(t, out.Collects, 2)
	assert.Equal(t, "s-vieja", out.Collects[0].Sale)
	assert.True(t, dec("100").Equal(out.Collects[0].Amount))
	assert.Equal(t, "s-nueva", out.Collects[1].Sale)
	assert.True(t, dec("50").Equal(out.Collects[1].Amount))
	assert.True(t, dec("150").Equal(out.RemainingBalance), "300 − 150 pendientes")

	assert.Equal(t, entity.PaymentStatePaid, store.sales["s-vieja"].PaymentState)
	assert.Equal(t, entity.PaymentStatePartiallyPaid, store.sales["s-nueva"].PaymentState)
	assert.True(t, dec("50").Equal(store.sales["s-nueva"].PaidAmount))
}

func TestCollect_ExcedeSaldoPendiente(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	uc := sales.NewCollectUseCase(&fakeTxRunner{store}, &fakeCollectRepo{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateCollectRequest{
		Customer: "c1",
		Amount:   dec("651"),
	})
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
	assert.Empty(t, store.collects, "el cobro rechazado no persiste nada")
	assert.True(t, store.sales["s1"].PaidAmount.IsZero())
	assert.Equal(t, entity.PaymentStateUnpaid, store.sales["s1"].PaymentState)
}

func TestCollect_DescuentaDevoluciones(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	returnUC := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})
	collectUC := sales.NewCollectUseCase(&fakeTxRunner{store}, &fakeCollectRepo{store})

	// Devolución de 2×p1 = 200: el saldo cobrable de la venta baja a 450.
	_, err := returnUC.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)

	_, err = collectUC.Create(context.Background(), "u1", dto.CreateCollectRequest{
		Customer: "c1",
		Amount:   dec("500"),
	})
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance, "solo hay 450 cobrables")

	out, err := collectUC.Create(context.Background(), "u1", dto.CreateCollectRequest{
		Customer: "c1",
		Amount:   dec("450"),
	})
	require.NoError(t, err)
	assert.True(t, out.RemainingBalance.IsZero())
	assert.Equal(t, entity.PaymentStatePaid, store.sales["s1"].PaymentState)
}

func TestCollect_MontoNoPositivo(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	uc := sales.NewCollectUseCase(&fakeTxRunner{store}, &fakeCollectRepo{store})

	for _, amount := range []string{"0", "-50"} {
		_, err := uc.Create(context.Background(), "u1", dto.CreateCollectRequest{
			Customer: "c1",
			Amount:   dec(amount),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto %s debe rechazarse", amount)
	}
}

func TestCollect_ClienteInexistente(t *testing.T) {
	store := newFakeStore()
	uc := sales.NewCollectUseCase(&fakeTxRunner{store}, &fakeCollectRepo{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateCollectRequest{
		Customer: "fantasma",
		Amount:   dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollect_VentaDeOtroCliente(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	store.customers["c2"] = &entity.Customer{ID: "c2", Name: "Otro", CustomerType: entity.CustomerTypeWholesale}
	uc := sales.NewCollectUseCase(&fakeTxRunner{store}, &fakeCollectRepo{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateCollectRequest{
		Customer: "c2",
		Sale:     "s1",
		Amount:   dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
