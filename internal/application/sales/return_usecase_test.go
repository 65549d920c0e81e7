package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/application/sales"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
)

// seedLedger arma el escenario base de los tests de devoluciones y cobros:
// una venta de 5×p1@100 + 3×p2@50 = 650 a cuenta corriente.
func seedLedger(store *fakeStore) *entity.Sale {
	seedCatalog(store)
	return newSale(store, "s1", "c1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		entity.SaleDetail{ID: "sd1", ProductID: "p1", Quantity: dec("5"), UnitPrice: dec("100")},
		entity.SaleDetail{ID: "sd2", ProductID: "p2", Quantity: dec("3"), UnitPrice: dec("50")},
	)
}

func TestReturn_ValoraAlPrecioCongelado(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	uc := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})

	// El catálogo cambió después de la venta: la devolución usa el precio de
	// la venta, no el vigente.
	store.products["p1"].WholesalePrice = dec("999")

	out, err := uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(out.Amount), "2×100 al precio congelado, obtuvo %s", out.Amount)
	require.Len(t, out.ReturnDetails, 1)
	assert.True(t, dec("100").Equal(out.ReturnDetails[0].UnitPrice))
}

func TestReturn_SobreDevolucionAcumulada(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	uc := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)

	// Quedan 3 unidades de p1: devolver 4 más excede lo vendido.
	_, err = uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("4")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOverReturn)
	assert.Len(t, store.returns, 1, "la devolución rechazada no persiste")

	// Devolver exactamente las 3 restantes sí es válido.
	_, err = uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("3")},
		},
	})
	assert.NoError(t, err)
}

func TestReturn_ProductoFueraDeLaVenta(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	store.products["p3"] = &entity.Product{ID: "p3", Name: "Factura", Slug: "factura", WholesalePrice: dec("80")}
	uc := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p3", Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOverReturn)
}

func TestReturn_VentaInexistente(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	uc := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "no-existe",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReturn_VentaDeOtroCliente(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	store.customers["c2"] = &entity.Customer{ID: "c2", Name: "Otro", CustomerType: entity.CustomerTypeWholesale}
	uc := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c2",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReturn_CantidadNoPositiva(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	uc := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReturn_RederivaEstadoDePago(t *testing.T) {
	store := newFakeStore()
	sale := seedLedger(store)
	uc := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})

	// Con 450 ya cobrados, una devolución de 200 salda los 650 de la venta.
	sale.PaidAmount = dec("450")
	sale.PaymentState = entity.PaymentStatePartiallyPaid

	_, err := uc.Create(context.Background(), "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatePaid, store.sales["s1"].PaymentState)
	assert.True(t, dec("450").Equal(store.sales["s1"].PaidAmount), "la devolución no toca lo cobrado")
}
