package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/registry"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func newRegistryFixture(t *testing.T) (*memory.Store, *registry.SaleUseCase, *registry.OrderUseCase) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Providers().Create(ctx, &entity.Provider{ID: "prov-1", Name: "Distribuidora Sur", LeadDays: 3}))
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Lácteos"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p1", CategoryID: "cat-1", ProviderID: "prov-1", Name: "Leche",
		Sale: 2000, Cost: 1200,
	}))

	// Balance previo de 10 unidades
	require.NoError(t, store.Ledger().Append(ctx, &entity.InventoryTransaction{
		ID: "tx0", ProductID: "p1", Date: testNow.AddDate(0, 0, -2),
		Quantity: 10, StockBalance: 10,
		Origin: entity.TransactionOrigin{Kind: entity.OriginOrder, ID: "o0"},
	}))

	runner := memory.NewTxRunner(store)
	clk := clock.Fixed{T: testNow}
	saleUC := registry.NewSaleUseCase(runner, clk, logger.Nop())
	orderUC := registry.NewOrderUseCase(runner, store.Providers(), clk, logger.Nop())
	return store, saleUC, orderUC
}

func TestCreateSale_DescuentaStockYTotaliza(t *testing.T) {
	store, saleUC, _ := newRegistryFixture(t)
	ctx := context.Background()

	sale, err := saleUC.Create(ctx, registry.SaleInput{
		Lines: []registry.SaleLineInput{{ProductID: "p1", Quantity: 5}},
	})
	require.NoError(t, err)

	// Precios tomados del producto: 5 × 20.00 = 100.00
	require.Len(t, sale.Items, 1)
	assert.Equal(t, int64(2000), sale.Items[0].UnitSale)
	assert.Equal(t, int64(10000), sale.Items[0].TotalSale)
	assert.Equal(t, int64(10000), sale.Sale)
	assert.Equal(t, testNow, sale.Date)

	// El libro registra una transacción negativa con balance corrido 10-5=5
	tx, err := store.Ledger().LatestBefore(ctx, "p1", testNow)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, int64(-5), tx.Quantity)
	assert.Equal(t, int64(5), tx.StockBalance)
	assert.Equal(t, entity.OriginSale, tx.Origin.Kind)
	assert.Equal(t, sale.ID, tx.Origin.ID)

	// La venta queda consultable por rango
	sales, err := store.Sales().ListByDateRange(ctx, testNow.AddDate(0, 0, -1), testNow)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)
}

func TestCreateSale_PermiteSobreventa(t *testing.T) {
	store, saleUC, _ := newRegistryFixture(t)
	ctx := context.Background()

	// Vender más que el balance no es error: el libro refleja el negativo
	_, err := saleUC.Create(ctx, registry.SaleInput{
		Lines: []registry.SaleLineInput{{ProductID: "p1", Quantity: 13}},
	})
	require.NoError(t, err)

	tx, err := store.Ledger().LatestBefore(ctx, "p1", testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), tx.StockBalance)
}

func TestCreateSale_ValidaEntrada(t *testing.T) {
	_, saleUC, _ := newRegistryFixture(t)
	ctx := context.Background()

	_, err := saleUC.Create(ctx, registry.SaleInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = saleUC.Create(ctx, registry.SaleInput{
		Lines: []registry.SaleLineInput{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = saleUC.Create(ctx, registry.SaleInput{
		Lines: []registry.SaleLineInput{{ProductID: "nope", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateOrder_AumentaStock(t *testing.T) {
	store, _, orderUC := newRegistryFixture(t)
	ctx := context.Background()

	order, err := orderUC.Create(ctx, registry.OrderInput{
		ProviderID: "prov-1",
		Lines:      []registry.OrderLineInput{{ProductID: "p1", Quantity: 8}},
	})
	require.NoError(t, err)

	// 8 × 12.00 de costo
	assert.Equal(t, int64(9600), order.Cost)

	tx, err := store.Ledger().LatestBefore(ctx, "p1", testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(8), tx.Quantity)
	assert.Equal(t, int64(18), tx.StockBalance)
	assert.Equal(t, entity.OriginOrder, tx.Origin.Kind)
	assert.Equal(t, order.ID, tx.Origin.ID)
}

func TestCreateOrder_ProveedorInexistente(t *testing.T) {
	_, _, orderUC := newRegistryFixture(t)

	_, err := orderUC.Create(context.Background(), registry.OrderInput{
		ProviderID: "nope",
		Lines:      []registry.OrderLineInput{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestCreateSale_LineasRepetidasSeConsolidan(t *testing.T) {
	store, saleUC, _ := newRegistryFixture(t)
	ctx := context.Background()

	// Dos líneas del mismo producto: deben quedar como una sola, con una única
	// transacción en el libro y el balance corrido correcto
	sale, err := saleUC.Create(ctx, registry.SaleInput{
		Lines: []registry.SaleLineInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p1", Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.Equal(t, int64(5), sale.Items[0].Quantity)
	assert.Equal(t, int64(10000), sale.Sale)

	tx, err := store.Ledger().LatestBefore(ctx, "p1", testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), tx.Quantity)
	assert.Equal(t, int64(5), tx.StockBalance)
}

func TestCreateOrder_LineasRepetidasSeConsolidan(t *testing.T) {
	store, _, orderUC := newRegistryFixture(t)
	ctx := context.Background()

	order, err := orderUC.Create(ctx, registry.OrderInput{
		ProviderID: "prov-1",
		Lines: []registry.OrderLineInput{
			{ProductID: "p1", Quantity: 4},
			{ProductID: "p1", Quantity: 6},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(10), order.Items[0].Quantity)

	tx, err := store.Ledger().LatestBefore(ctx, "p1", testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(10), tx.Quantity)
	assert.Equal(t, int64(20), tx.StockBalance)
}

func TestCreateSale_VariasLineasUnaTransaccionPorLinea(t *testing.T) {
	store, saleUC, _ := newRegistryFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p2", CategoryID: "cat-1", ProviderID: "prov-1", Name: "Queso",
		Sale: 3000, Cost: 2000,
	}))

	sale, err := saleUC.Create(ctx, registry.SaleInput{
		Lines: []registry.SaleLineInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2*2000+3000), sale.Sale)

	// p2 arrancaba sin libro: su balance corrido queda en -1
	tx, err := store.Ledger().LatestBefore(ctx, "p2", testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), tx.StockBalance)
}
