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

func TestBalance_DerivadoDelLibro(t *testing.T) {
	store := newFakeStore()
	seedLedger(store)
	returnUC := sales.NewReturnUseCase(&fakeTxRunner{store}, &fakeReturnRepo{store})
	collectUC := sales.NewCollectUseCase(&fakeTxRunner{store}, &fakeCollectRepo{store})
	balanceUC := sales.NewBalanceUseCase(&fakeBalanceRepo{store}, &fakeCustomerRepo{store})

	ctx := context.Background()

	// Venta de 650, sin devoluciones ni cobros.
	balance, err := balanceUC.OutstandingBalance(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, dec("650").Equal(balance))

	// Devolución de 2×p1 = 200.
	_, err = returnUC.Create(ctx, "u1", dto.CreateReturnRequest{
		Sale:     "s1",
		Customer: "c1",
		ReturnDetails: []dto.ReturnDetailRequest{
			{Product: "p1", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)

	balance, err = balanceUC.OutstandingBalance(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, dec("450").Equal(balance), "650 − 200, obtuvo %s", balance)

	// Cobro de 450 salda al cliente.
	_, err = collectUC.Create(ctx, "u1", dto.CreateCollectRequest{
		Customer: "c1",
		Amount:   dec("450"),
	})
	require.NoError(t, err)

	balance, err = balanceUC.OutstandingBalance(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestBalance_ClienteInexistente(t *testing.T) {
	store := newFakeStore()
	balanceUC := sales.NewBalanceUseCase(&fakeBalanceRepo{store}, &fakeCustomerRepo{store})

	_, err := balanceUC.OutstandingBalance(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBalance_NegativoSeInformaCero(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	// Libro inconsistente a propósito: devoluciones por más que la venta.
	newSale(store, "s1", "c1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		entity.SaleDetail{ID: "d1", ProductID: "p1", Quantity: dec("1"), UnitPrice: dec("100")},
	)
	store.returns["r1"] = &entity.Return{
		ID:         "r1",
		SaleID:     "s1",
		CustomerID: "c1",
		Date:       time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		Amount:     dec("150"),
	}
	balanceUC := sales.NewBalanceUseCase(&fakeBalanceRepo{store}, &fakeCustomerRepo{store})

	balance, err := balanceUC.OutstandingBalance(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "el saldo nunca se informa negativo")
}

func TestBalance_ListPendingCollection(t *testing.T) {
	store := newFakeStore()
	seedCatalog(store)
	store.customers["c2"] = &entity.Customer{ID: "c2", Name: "Bar La Esquina", CustomerType: entity.CustomerTypeWholesale}
	store.customers["c3"] = &entity.Customer{ID: "c3", Name: "Cliente al día", CustomerType: entity.CustomerTypeWholesale}

	// c1 debe 300, c2 debe 100, c3 nada (venta pagada).
	newSale(store, "s1", "c1", time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		entity.SaleDetail{ID: "d1", ProductID: "p1", Quantity: dec("3"), UnitPrice: dec("100")},
	)
	newSale(store, "s2", "c2", time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		entity.SaleDetail{ID: "d2", ProductID: "p1", Quantity: dec("1"), UnitPrice: dec("100")},
	)
	paid := newSale(store, "s3", "c3", time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC),
		entity.SaleDetail{ID: "d3", ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("100")},
	)
	paid.PaidAmount = dec("200")
	paid.PaymentState = entity.PaymentStatePaid

	balanceUC := sales.NewBalanceUseCase(&fakeBalanceRepo{store}, &fakeCustomerRepo{store})

	// Orden por defecto: saldo descendente. El cliente al día no aparece.
	page, err := balanceUC.ListPendingCollection(context.Background(), dto.PendingCollectionQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c1", page.Items[0].Customer)
	assert.True(t, dec("300").Equal(page.Items[0].Balance))
	assert.Equal(t, "c2", page.Items[1].Customer)
	assert.True(t, dec("100").Equal(page.Items[1].Balance))

	// Orden por nombre ascendente.
	page, err = balanceUC.ListPendingCollection(context.Background(), dto.PendingCollectionQuery{Ordering: "name"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Almacén Don Pepe", page.Items[0].Name)
	assert.Equal(t, "Bar La Esquina", page.Items[1].Name)
}

func TestBalance_OrdenamientoInvalido(t *testing.T) {
	store := newFakeStore()
	balanceUC := sales.NewBalanceUseCase(&fakeBalanceRepo{store}, &fakeCustomerRepo{store})

	_, err := balanceUC.ListPendingCollection(context.Background(), dto.PendingCollectionQuery{Ordering: "telefono"})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
