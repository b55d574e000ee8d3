package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Analitica-api/pkg/clock"
)

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

// newStockFixture arma un catálogo con dos productos y balances conocidos:
// p1 con balance 10 (cost 2.50), p2 sin transacciones (balance 0).
func newStockFixture(t *testing.T) (*memory.Store, *analytics.StockMetrics) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Lácteos"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p1", CategoryID: "cat-1", ProviderID: "prov-1", Name: "Leche",
		MinStockLevel: 5, MaxStockLevel: 15, Cost: 250, Sale: 400,
	}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p2", CategoryID: "cat-1", ProviderID: "prov-1", Name: "Queso",
		MinStockLevel: 2, MaxStockLevel: 8, Cost: 1000, Sale: 1500,
	}))
	require.NoError(t, store.Ledger().Append(ctx, &entity.InventoryTransaction{
		ID: "tx1", ProductID: "p1", Date: testNow.AddDate(0, 0, -5),
		Quantity: 10, StockBalance: 10,
		Origin: entity.TransactionOrigin{Kind: entity.OriginOrder, ID: "o1"},
	}))

	reader := ledger.NewReader(store.Products(), store.Ledger())
	metrics := analytics.NewStockMetrics(store.Products(), store.Categories(), reader, clock.Fixed{T: testNow})
	return store, metrics
}

func TestStockStatus_BordesSonWithinRange(t *testing.T) {
	// Con min 5 y max 15, la igualdad en cualquiera de los dos bordes queda dentro
	assert.Equal(t, dto.StockStatusWithinRange, analytics.StockStatus(5, 5, 15))
	assert.Equal(t, dto.StockStatusWithinRange, analytics.StockStatus(15, 5, 15))
	assert.Equal(t, dto.StockStatusOverstocked, analytics.StockStatus(16, 5, 15))
	assert.Equal(t, dto.StockStatusUnderstocked, analytics.StockStatus(4, 5, 15))
}

func TestStockOverview_ValorYConteos(t *testing.T) {
	_, metrics := newStockFixture(t)

	overview, err := metrics.Overview(context.Background())
	require.NoError(t, err)

	// 10 unidades × 2.50 = 25.00; p2 no aporta
	assert.Equal(t, "25", overview.InventoryValue.String())
	assert.Equal(t, int64(10), overview.TotalItemsInStock)
	assert.Equal(t, 1, overview.ProductsInStockCount)
	assert.Equal(t, 1, overview.ProductsOutOfStockCount)
	assert.Equal(t, 2, overview.ProductCount)

	// p2 con balance 0 < min 2 está bajo stock; p1 dentro de rango
	require.Len(t, overview.LowStockProducts, 1)
	assert.Equal(t, "p2", overview.LowStockProducts[0].ID)
	assert.Empty(t, overview.ExcessiveStockProducts)
}

func TestStockOverview_CatalogoVacio(t *testing.T) {
	store := memory.NewStore()
	reader := ledger.NewReader(store.Products(), store.Ledger())
	metrics := analytics.NewStockMetrics(store.Products(), store.Categories(), reader, clock.Fixed{T: testNow})

	overview, err := metrics.Overview(context.Background())
	require.NoError(t, err)
	assert.True(t, overview.InventoryValue.IsZero())
	assert.Equal(t, 0, overview.ProductCount)
	assert.NotNil(t, overview.LowStockProducts)
	assert.NotNil(t, overview.ExcessiveStockProducts)
}

func TestStockDetail_ClasificaCadaProducto(t *testing.T) {
	_, metrics := newStockFixture(t)

	detail, err := metrics.Detail(context.Background(), "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Lácteos", detail.Category.Name)
	require.Len(t, detail.Products, 2)

	// Ordenados por nombre: Leche, Queso
	leche := detail.Products[0]
	assert.Equal(t, "p1", leche.ID)
	assert.Equal(t, int64(10), leche.Current)
	assert.Equal(t, int64(10), leche.Range)
	assert.Equal(t, dto.StockStatusWithinRange, leche.Status)

	queso := detail.Products[1]
	assert.Equal(t, int64(0), queso.Current)
	assert.Equal(t, dto.StockStatusUnderstocked, queso.Status)
}

func TestStockDetail_CategoriaInexistente(t *testing.T) {
	_, metrics := newStockFixture(t)

	_, err := metrics.Detail(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
