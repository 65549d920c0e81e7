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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedCatalog carga un cliente mayorista y dos productos con precios
// diferenciados por nivel.
func seedCatalog(store *fakeStore) {
	store.customers["c1"] = &entity.Customer{
		ID:           "c1",
		Name:         "Almacén Don Pepe",
		CustomerType: entity.CustomerTypeWholesale,
	}
	store.products["p1"] = &entity.Product{
		ID:             "p1",
		Name:           "Pan Francés",
		Slug:           "pan-frances",
		RetailPrice:    dec("120"),
		WholesalePrice: dec("100"),
	}
	store.products["p2"] = &entity.Product{
		ID:             "p2",
		Name:           "Medialunas",
		Slug:           "medialunas",
		RetailPrice:    dec("60"),
		WholesalePrice: dec("50"),
	}
}

func TestCreateSale_CongelaPreciosYCalculaTotal(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store})

	out, err := uc.Create(context.Background(), "u1", dto.CreateSaleRequest{
		Client:   "c1",
		SaleType: entity.SaleTypeWholesale,
		SaleDetails: []dto.SaleDetailRequest{
			{Product: "p1", Quantity: dec("5")},
			{Product: "p2", Quantity: dec("3")},
		},
	})
	require.NoError(t, err)

	// 5×100 + 3×50 = 650 al precio mayorista congelado.
	assert.True(t, dec("650").Equal(out.Total), "total esperado 650, obtuvo %s", out.Total)
	assert.Equal(t, entity.DeliveryStatePending, out.DeliveryState)
	assert.Equal(t, entity.PaymentStateUnpaid, out.PaymentState)
	assert.Equal(t, entity.PaymentMethodCash, out.PaymentMethod, "método por defecto: efectivo")
	require.Len(t, out.SaleDetails, 2)
	assert.True(t, dec("100").Equal(out.SaleDetails[0].UnitPrice))

	// Cambiar el precio del catálogo NO toca la venta ya registrada.
	store.products["p1"].WholesalePrice = dec("900")
	stored := store.sales[out.ID]
	require.NotNil(t, stored)
	assert.True(t, dec("650").Equal(stored.Total), "la venta congeló sus precios")
	assert.True(t, dec("100").Equal(stored.Details[0].UnitPrice))
}

func TestCreateSale_ClienteInexistente(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateSaleRequest{
		Client:   "fantasma",
		SaleType: entity.SaleTypeWholesale,
		SaleDetails: []dto.SaleDetailRequest{
			{Product: "p1", Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.sales, "no debe quedar venta registrada")
}

func TestCreateSale_TipoDeClienteNoCoincide(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store})

	// c1 es mayorista: una venta retail a su nombre se rechaza.
	_, err := uc.Create(context.Background(), "u1", dto.CreateSaleRequest{
		Client:   "c1",
		SaleType: entity.SaleTypeRetail,
		SaleDetails: []dto.SaleDetailRequest{
			{Product: "p1", Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CantidadNoPositiva(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store})

	for _, qty := range []string{"0", "-2"} {
		_, err := uc.Create(context.Background(), "u1", dto.CreateSaleRequest{
			Client:   "c1",
			SaleType: entity.SaleTypeWholesale,
			SaleDetails: []dto.SaleDetailRequest{
				{Product: "p1", Quantity: dec(qty)},
			},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s debe rechazarse", qty)
	}
}

func TestCreateSale_ProductoRepetido(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateSaleRequest{
		Client:   "c1",
		SaleType: entity.SaleTypeWholesale,
		SaleDetails: []dto.SaleDetailRequest{
			{Product: "p1", Quantity: dec("1")},
			{Product: "p1", Quantity: dec("2")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateSaleRequest{
		Client:   "c1",
		SaleType: entity.SaleTypeWholesale,
		SaleDetails: []dto.SaleDetailRequest{
			{Product: "producto-borrado", Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.sales, "la transacción no deja detalles huérfanos")
}

func TestCreateSale_SinDetalles(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.Create(context.Background(), "u1", dto.CreateSaleRequest{
		Client:   "c1",
		SaleType: entity.SaleTypeWholesale,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkAsDelivered_TransicionUnica(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	txRunner := &fakeTxRunner{store}
	createUC := sales.NewCreateSaleUseCase(txRunner)
	saleUC := sales.NewSaleUseCase(txRunner, &fakeSaleRepo{store}, &fakeCustomerRepo{store}, &fakeProductRepo{store}, nil)

	created, err := createUC.Create(context.Background(), "u1", dto.CreateSaleRequest{
		Client:   "c1",
		SaleType: entity.SaleTypeWholesale,
		SaleDetails: []dto.SaleDetailRequest{
			{Product: "p1", Quantity: dec("1")},
		},
	})
	require.NoError(t, err)

	out, err := saleUC.MarkAsDelivered(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStateDelivered, out.DeliveryState)

	// Marcarla de nuevo es una transición ilegal, y el estado no cambia.
	_, err = saleUC.MarkAsDelivered(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, entity.DeliveryStateDelivered, store.sales[created.ID].DeliveryState)
}

func TestMarkAsDelivered_VentaInexistente(t *testing.T) {
	store := newFakeStore()
	txRunner := &fakeTxRunner{store}
	saleUC := sales.NewSaleUseCase(txRunner, &fakeSaleRepo{store}, &fakeCustomerRepo{store}, &fakeProductRepo{store}, nil)

	_, err := saleUC.MarkAsDelivered(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// newSale inserta una venta directamente en el store, con fecha y detalles dados.
func newSale(store *fakeStore, id, customerID string, date time.Time, details ...entity.SaleDetail) *entity.Sale {
	s := &entity.Sale{
		ID:            id,
		CustomerID:    customerID,
		UserID:        "u1",
		Date:          date,
		SaleType:      entity.SaleTypeWholesale,
		PaymentMethod: entity.PaymentMethodAccount,
		DeliveryState: entity.DeliveryStatePending,
		PaymentState:  entity.PaymentStateUnpaid,
		PaidAmount:    decimal.Zero,
		Details:       details,
		CreatedAt:     date,
		UpdatedAt:     date,
	}
	for i := range s.Details {
		s.Details[i].SaleID = id
	}
	s.ComputeTotal()
	store.sales[id] = s
	return s
}
