package forecast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/forecast"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Analitica-api/pkg/clock"
)

// newQueryFixture arma dos categorías con un producto cada una y predicciones
// para hoy y mañana, más una predicción de ayer que las vistas deben ignorar.
func newQueryFixture(t *testing.T) *forecast.QueryService {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Lácteos"}))
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-2", Name: "Panadería"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p1", CategoryID: "cat-1", ProviderID: "prov-1", Name: "Leche",
	}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p2", CategoryID: "cat-2", ProviderID: "prov-1", Name: "Pan",
	}))

	today := clock.Today(clock.Fixed{T: testNow})
	require.NoError(t, store.Predictions().UpsertBatch(ctx, []entity.Prediction{
		{ProductID: "p1", Date: today.AddDate(0, 0, -1), Value: 99}, // ayer: fuera
		{ProductID: "p1", Date: today, Value: 5},
		{ProductID: "p1", Date: today.AddDate(0, 0, 1), Value: 6},
		{ProductID: "p2", Date: today, Value: 2},
	}))

	return forecast.NewQueryService(store.Predictions(), store.Categories(), clock.Fixed{T: testNow})
}

func TestCategoryForecasts_AgrupaPorCategoriaDesdeHoy(t *testing.T) {
	svc := newQueryFixture(t)

	groups, err := svc.CategoryForecasts(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byName := make(map[string][]float64)
	for _, g := range groups {
		for _, p := range g.Predictions {
			byName[g.Name] = append(byName[g.Name], p.Value)
		}
	}
	assert.Equal(t, []float64{5, 6}, byName["Lácteos"])
	assert.Equal(t, []float64{2}, byName["Panadería"])

	// Fechas en formato del dashboard
	for _, g := range groups {
		if g.Name == "Lácteos" {
			assert.Equal(t, "20-08-2026", g.Predictions[0].Date)
		}
	}
}

func TestProductForecasts_SoloLaCategoriaPedida(t *testing.T) {
	svc := newQueryFixture(t)

	result, err := svc.ProductForecasts(context.Background(), "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Lácteos", result.Category)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Leche", result.Products[0].Name)
	require.Len(t, result.Products[0].Predictions, 2)
}

func TestProductForecasts_CategoriaInexistente(t *testing.T) {
	svc := newQueryFixture(t)

	_, err := svc.ProductForecasts(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestWeeklyTotals_AgrupaPorSemanaDesdeElProximoLunes(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Lácteos"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p1", CategoryID: "cat-1", ProviderID: "prov-1", Name: "Leche",
	}))

	// testNow es jueves 20-08-2026: el próximo lunes es el 24-08 y la ventana
	// de cuatro semanas termina (exclusivo) el 21-09
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Predictions().UpsertBatch(ctx, []entity.Prediction{
		{ProductID: "p1", Date: monday.AddDate(0, 0, -1), Value: 100}, // domingo previo: fuera
		{ProductID: "p1", Date: monday, Value: 1},
		{ProductID: "p1", Date: monday.AddDate(0, 0, 6), Value: 2}, // domingo de la misma semana
		{ProductID: "p1", Date: monday.AddDate(0, 0, 7), Value: 4},
		{ProductID: "p1", Date: monday.AddDate(0, 0, 27), Value: 8},  // último día de la ventana
		{ProductID: "p1", Date: monday.AddDate(0, 0, 28), Value: 50}, // quinta semana: fuera
	}))
	svc := forecast.NewQueryService(store.Predictions(), store.Categories(), clock.Fixed{T: testNow})

	result, err := svc.WeeklyTotals(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Lácteos", result.Name)

	// Solo las semanas con predicciones, en orden cronológico
	require.Len(t, result.Weeks, 3)
	assert.Equal(t, "Semana del 24-08-2026", result.Weeks[0].Name)
	assert.Equal(t, 3.0, result.Weeks[0].Value)
	assert.Equal(t, "Semana del 31-08-2026", result.Weeks[1].Name)
	assert.Equal(t, 4.0, result.Weeks[1].Value)
	assert.Equal(t, "Semana del 14-09-2026", result.Weeks[2].Name)
	assert.Equal(t, 8.0, result.Weeks[2].Value)
}

func TestWeeklyTotals_CategoriaInexistente(t *testing.T) {
	svc := newQueryFixture(t)

	_, err := svc.WeeklyTotals(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestMonthlyTotals_OrdenadoPorDemanda(t *testing.T) {
	svc := newQueryFixture(t)

	totals, err := svc.MonthlyTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 2)
	// Lácteos 5+6=11 por encima de Panadería 2
	assert.Equal(t, "Lácteos", totals[0].Name)
	assert.Equal(t, 11.0, totals[0].Value)
	assert.Equal(t, 2.0, totals[1].Value)
}

func TestMonthlyTotals_SinPredicciones(t *testing.T) {
	store := memory.NewStore()
	svc := forecast.NewQueryService(store.Predictions(), store.Categories(), clock.Fixed{T: time.Now()})

	totals, err := svc.MonthlyTotals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, totals)
}
