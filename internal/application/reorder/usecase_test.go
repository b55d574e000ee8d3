package reorder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/application/reorder"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func TestSafetyStock(t *testing.T) {
	// Brecha (max - avg) sostenida durante el lead time
	assert.Equal(t, int64(50), reorder.SafetyStock(20, 10, 5))
	// Sin brecha no hay colchón
	assert.Equal(t, int64(0), reorder.SafetyStock(10, 10, 5))
	// Nunca negativo aunque el promedio supere al máximo (no debería pasar)
	assert.Equal(t, int64(0), reorder.SafetyStock(5, 10, 3))
	// Redondeo al entero más cercano
	assert.Equal(t, int64(8), reorder.SafetyStock(3.5, 1, 3)) // 2.5 * 3 = 7.5
}

func TestReorderAmount(t *testing.T) {
	// Demanda 20 + colchón 0 - stock 10 = 10... con colchón 20: 30
	assert.Equal(t, int64(30), reorder.ReorderAmount(20, 20, 10))
	// Stock suficiente: nada que pedir
	assert.Equal(t, int64(0), reorder.ReorderAmount(5, 2, 100))
	// Balance negativo (sobreventa) aumenta lo sugerido
	assert.Equal(t, int64(27), reorder.ReorderAmount(20, 2, -5))
}

// newReorderFixture arma un proveedor con lead time de 5 días, una categoría y
// un producto con historial de ventas, predicciones y balance conocidos.
func newReorderFixture(t *testing.T) (*memory.Store, *reorder.UseCase) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Providers().Create(ctx, &entity.Provider{ID: "prov-1", Name: "Distribuidora Sur", LeadDays: 5}))
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Lácteos"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p1", CategoryID: "cat-1", ProviderID: "prov-1", Name: "Leche",
		Unit: "caja", AmountPerUnit: 12, Cost: 250, Sale: 400,
	}))

	// Líneas históricas: cantidades 10 y 20 -> max 20, avg 15
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
		ID: "v1", Date: testNow.AddDate(0, 0, -10), Sale: 4000,
		Items: []entity.SaleItem{{ProductID: "p1", Quantity: 10, UnitSale: 400, TotalSale: 4000}},
	}))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
		ID: "v2", Date: testNow.AddDate(0, 0, -5), Sale: 8000,
		Items: []entity.SaleItem{{ProductID: "p1", Quantity: 20, UnitSale: 400, TotalSale: 8000}},
	}))

	// Balance actual 10
	require.NoError(t, store.Ledger().Append(ctx, &entity.InventoryTransaction{
		ID: "tx1", ProductID: "p1", Date: testNow.AddDate(0, 0, -1),
		Quantity: 10, StockBalance: 10,
		Origin: entity.TransactionOrigin{Kind: entity.OriginOrder, ID: "o1"},
	}))

	// Demanda pronosticada: 4 por día dentro de la ventana [hoy+5, hoy+12),
	// más un día fuera de la ventana que no debe contar
	window := clock.Today(clock.Fixed{T: testNow}).AddDate(0, 0, 5)
	var preds []entity.Prediction
	for i := 0; i < 5; i++ {
		preds = append(preds, entity.Prediction{ProductID: "p1", Date: window.AddDate(0, 0, i), Value: 4})
	}
	preds = append(preds, entity.Prediction{ProductID: "p1", Date: window.AddDate(0, 0, 7), Value: 100})
	require.NoError(t, store.Predictions().UpsertBatch(ctx, preds))

	reader := ledger.NewReader(store.Products(), store.Ledger())
	uc := reorder.NewUseCase(
		store.Products(), store.Providers(), store.Categories(), store.Sales(),
		store.Predictions(), reader, clock.Fixed{T: testNow}, logger.Nop(),
	)
	return store, uc
}

func TestSuggestions_CalculaCantidadAPedir(t *testing.T) {
	_, uc := newReorderFixture(t)

	suggestions, err := uc.Suggestions(context.Background(), "prov-1", "cat-1")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.Equal(t, "p1", s.ProductID)
	assert.Equal(t, int64(10), s.StockBalance)
	// 5 días × 4 = 20 dentro de la ventana; el día fuera de la ventana no suma
	assert.Equal(t, int64(20), s.PredictedDemand)
	// (max 20 - avg 15) × lead 5 = 25
	assert.Equal(t, int64(25), s.SafetyStock)
	// 20 + 25 - 10 = 35
	assert.Equal(t, int64(35), s.ReorderAmount)
	// 35 × 2.50 = 87.50
	assert.Equal(t, "2.5", s.CostPerUnit.String())
	assert.Equal(t, "87.5", s.TotalCost.String())
}

func TestSuggestions_BalanceNegativoAumentaElPedido(t *testing.T) {
	store, uc := newReorderFixture(t)
	ctx := context.Background()

	// Sobreventa: el balance queda en -3
	require.NoError(t, store.Ledger().Append(ctx, &entity.InventoryTransaction{
		ID: "tx2", ProductID: "p1", Date: testNow.Add(-time.Hour),
		Quantity: -13, StockBalance: -3,
		Origin: entity.TransactionOrigin{Kind: entity.OriginSale, ID: "v9"},
	}))

	suggestions, err := uc.Suggestions(ctx, "prov-1", "cat-1")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	// 20 + 25 - (-3) = 48
	assert.Equal(t, int64(48), suggestions[0].ReorderAmount)
}

func TestSuggestions_ProveedorOCategoriaInexistente(t *testing.T) {
	_, uc := newReorderFixture(t)

	_, err := uc.Suggestions(context.Background(), "nope", "cat-1")
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)

	_, err = uc.Suggestions(context.Background(), "prov-1", "nope")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestSuggestions_SinProductosDevuelveListaVacia(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Providers().Create(ctx, &entity.Provider{ID: "prov-1", Name: "Sur", LeadDays: 2}))
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Lácteos"}))

	reader := ledger.NewReader(store.Products(), store.Ledger())
	uc := reorder.NewUseCase(
		store.Products(), store.Providers(), store.Categories(), store.Sales(),
		store.Predictions(), reader, clock.Fixed{T: testNow}, logger.Nop(),
	)

	suggestions, err := uc.Suggestions(ctx, "prov-1", "cat-1")
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}
