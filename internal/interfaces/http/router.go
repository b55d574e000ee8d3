package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/application/forecast"
	"github.com/jhoicas/Analitica-api/internal/application/reorder"
	"github.com/jhoicas/Analitica-api/internal/application/registry"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/worker"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Overview        *analytics.OverviewMetrics
	Stock           *analytics.StockMetrics
	Sales           *analytics.SalesMetrics
	Products        *analytics.ProductsMetrics
	ForecastRuns    *forecast.Pipeline
	ForecastQueries *forecast.QueryService
	Reorder         *reorder.UseCase
	SaleRegistry    *registry.SaleUseCase
	OrderRegistry   *registry.OrderUseCase
	Runner          *worker.Runner
	Clock           clock.Clock
	ML              config.MLConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Métricas descriptivas
	analyticsGroup := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.Overview, deps.Stock, deps.Sales, deps.Products, deps.Clock)
	analyticsGroup.Get("/overview", analyticsHandler.GetOverview)
	analyticsGroup.Get("/stock", analyticsHandler.GetStockOverview)
	analyticsGroup.Get("/stock/:categoryID", analyticsHandler.GetStockDetail)
	analyticsGroup.Get("/sales", analyticsHandler.GetSalesOverview)
	analyticsGroup.Get("/sales/detail", analyticsHandler.GetSalesDetail)
	analyticsGroup.Get("/products", analyticsHandler.GetProductsOverview)
	analyticsGroup.Get("/products/category/:categoryID", analyticsHandler.GetProductsDetail)
	analyticsGroup.Get("/products/:productID/series", analyticsHandler.GetProductSeries)

	// Pronóstico de demanda
	forecastGroup := api.Group("/forecast")
	forecastHandler := NewForecastHandler(deps.ForecastRuns, deps.ForecastQueries, deps.Runner, deps.Clock, deps.ML)
	forecastGroup.Post("/run", forecastHandler.RunForecast)
	forecastGroup.Post("/export", forecastHandler.ExportSales)
	forecastGroup.Get("/categories", forecastHandler.GetCategoryForecasts)
	forecastGroup.Get("/categories/:categoryID", forecastHandler.GetProductForecasts)
	forecastGroup.Get("/weekly", forecastHandler.GetWeeklyTotals)
	forecastGroup.Get("/monthly", forecastHandler.GetMonthlyTotals)

	// Reorden
	reorderHandler := NewReorderHandler(deps.Reorder)
	api.Get("/reorder", reorderHandler.GetSuggestions)

	// Registro de ventas y pedidos
	registryGroup := api.Group("/registry")
	registryHandler := NewRegistryHandler(deps.SaleRegistry, deps.OrderRegistry)
	registryGroup.Post("/sales", registryHandler.CreateSale)
	registryGroup.Post("/orders", registryHandler.CreateOrder)
}
