package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// newProductsFixture arma tres productos con ventas de distinta magnitud:
//   - Leche: 10 unidades, 40.00
//   - Queso: 2 unidades, 30.00
//   - Yogur: 5 unidades, 10.00
func newProductsFixture(t *testing.T) (*memory.Store, *analytics.ProductsMetrics) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Lácteos"}))
	require.NoError(t, store.Providers().Create(ctx, &entity.Provider{ID: "prov-1", Name: "Distribuidora Sur", LeadDays: 3}))

	products := []struct {
		id, name string
		sale     int64
	}{
		{"p1", "Leche", 400},
		{"p2", "Queso", 1500},
		{"p3", "Yogur", 200},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Create(ctx, &entity.Product{
			ID: p.id, CategoryID: "cat-1", ProviderID: "prov-1", Name: p.name, Sale: p.sale,
		}))
	}

	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
		ID: "v1", Date: time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC), Sale: 7000,
		Items: []entity.SaleItem{
			{ProductID: "p1", Quantity: 10, UnitSale: 400, TotalSale: 4000},
			{ProductID: "p2", Quantity: 2, UnitSale: 1500, TotalSale: 3000},
		},
	}))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
		ID: "v2", Date: time.Date(2026, 8, 11, 11, 0, 0, 0, time.UTC), Sale: 1000,
		Items: []entity.SaleItem{
			{ProductID: "p3", Quantity: 5, UnitSale: 200, TotalSale: 1000},
		},
	}))

	reader := ledger.NewReader(store.Products(), store.Ledger())
	metrics := analytics.NewProductsMetrics(
		store.Sales(), store.Products(), store.Categories(), store.Providers(), reader, logger.Nop(),
	)
	return store, metrics
}

func augRange() (time.Time, time.Time) {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
}

func TestProductsOverview_Rankings(t *testing.T) {
	_, metrics := newProductsFixture(t)

	start, end := augRange()
	overview, err := metrics.Overview(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, overview.TopSellingProducts, 3)
	assert.Equal(t, "Leche", overview.TopSellingProducts[0].Name) // 10 unidades
	assert.Equal(t, "Yogur", overview.TopSellingProducts[1].Name) // 5
	assert.Equal(t, "Queso", overview.TopSellingProducts[2].Name) // 2

	assert.Equal(t, "Queso", overview.LeastSellingProducts[0].Name)

	assert.Equal(t, "Leche", overview.HighestRevenueProducts[0].Name) // 40.00
	assert.Equal(t, "40", overview.HighestRevenueProducts[0].TotalRevenue.String())
	assert.Equal(t, "Yogur", overview.LowestRevenueProducts[0].Name) // 10.00
}

func TestProductsOverview_RangoSinActividad(t *testing.T) {
	_, metrics := newProductsFixture(t)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	overview, err := metrics.Overview(context.Background(), start, end)
	require.NoError(t, err)
	assert.Empty(t, overview.TopSellingProducts)
	assert.Empty(t, overview.HighestRevenueProducts)
}

func TestProductsDetail_BalancesInicialYFinal(t *testing.T) {
	store, metrics := newProductsFixture(t)
	ctx := context.Background()

	// Balance 20 antes del rango, 8 dentro del rango
	require.NoError(t, store.Ledger().Append(ctx, &entity.InventoryTransaction{
		ID: "tx1", ProductID: "p1", Date: time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC),
		Quantity: 20, StockBalance: 20,
		Origin: entity.TransactionOrigin{Kind: entity.OriginOrder, ID: "o1"},
	}))
	require.NoError(t, store.Ledger().Append(ctx, &entity.InventoryTransaction{
		ID: "tx2", ProductID: "p1", Date: time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC),
		Quantity: -12, StockBalance: 8,
		Origin: entity.TransactionOrigin{Kind: entity.OriginSale, ID: "v1"},
	}))

	start, end := augRange()
	details, err := metrics.Detail(ctx, "cat-1", start, end)
	require.NoError(t, err)
	require.Len(t, details, 3)

	leche := details[0] // orden por nombre
	assert.Equal(t, "Leche", leche.Name)
	assert.Equal(t, "Distribuidora Sur", leche.Provider)
	assert.Equal(t, int64(10), leche.TotalQuantitySold)
	assert.Equal(t, "40", leche.TotalSalesRevenue.String())
	assert.Equal(t, int64(20), leche.InitialStockBalance)
	assert.Equal(t, int64(8), leche.FinalStockBalance)
}

func TestProductsDetail_ProveedorRotoSeOmite(t *testing.T) {
	store, metrics := newProductsFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p4", CategoryID: "cat-1", ProviderID: "prov-roto", Name: "Crema", Sale: 600,
	}))

	start, end := augRange()
	details, err := metrics.Detail(ctx, "cat-1", start, end)
	require.NoError(t, err)
	// Crema no aparece, los otros tres sí
	assert.Len(t, details, 3)
}

func TestProductSeries_TresSeriesDensas(t *testing.T) {
	store, metrics := newProductsFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Ledger().Append(ctx, &entity.InventoryTransaction{
		ID: "tx1", ProductID: "p1", Date: time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC),
		Quantity: -10, StockBalance: 10,
		Origin: entity.TransactionOrigin{Kind: entity.OriginSale, ID: "v1"},
	}))

	start := time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 11, 23, 59, 59, 0, time.UTC)
	series, err := metrics.Series(ctx, "p1", start, end)
	require.NoError(t, err)

	// Las tres series cubren los tres días del rango
	require.Len(t, series.QuantitySold, 3)
	require.Len(t, series.SalesRevenue, 3)
	require.Len(t, series.StockBalance, 3)

	assert.Equal(t, "2026-08-09", series.QuantitySold[0].Date)
	assert.True(t, series.QuantitySold[0].Amount.IsZero())
	assert.Equal(t, "10", series.QuantitySold[1].Amount.String())
	assert.Equal(t, "40", series.SalesRevenue[1].Amount.String())
	assert.Equal(t, "10", series.StockBalance[1].Amount.String())
	assert.True(t, series.StockBalance[2].Amount.IsZero())
}
