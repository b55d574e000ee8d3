package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/application/forecast"
	appledger "github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/application/reorder"
	"github.com/jhoicas/Analitica-api/internal/application/registry"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/ml"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/worker"
	httpRouter "github.com/jhoicas/Analitica-api/internal/interfaces/http"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/config"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clk := clock.System{}

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	predictionRepo := postgres.NewPredictionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reader := appledger.NewReader(productRepo, ledgerRepo)

	stockMetrics := analytics.NewStockMetrics(productRepo, categoryRepo, reader, clk)
	salesMetrics := analytics.NewSalesMetrics(saleRepo, productRepo, categoryRepo, log)
	productsMetrics := analytics.NewProductsMetrics(saleRepo, productRepo, categoryRepo, providerRepo, reader, log)
	overviewMetrics := analytics.NewOverviewMetrics(stockMetrics, salesMetrics, productsMetrics)

	mlClient := ml.NewClient(cfg.ML, log)
	pipeline := forecast.NewPipeline(
		productRepo, categoryRepo, predictionRepo, reader,
		mlClient, clk, log, cfg.ML.ChunkSize,
	)
	forecastQueries := forecast.NewQueryService(predictionRepo, categoryRepo, clk)

	reorderUC := reorder.NewUseCase(
		productRepo, providerRepo, categoryRepo, saleRepo,
		predictionRepo, reader, clk, log,
	)

	saleUC := registry.NewSaleUseCase(txRunner, clk, log)
	orderUC := registry.NewOrderUseCase(txRunner, providerRepo, clk, log)

	runner := worker.NewRunner(2, 16, log)
	runner.Start(ctx)
	defer runner.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Analitica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Overview:        overviewMetrics,
		Stock:           stockMetrics,
		Sales:           salesMetrics,
		Products:        productsMetrics,
		ForecastRuns:    pipeline,
		ForecastQueries: forecastQueries,
		Reorder:         reorderUC,
		SaleRegistry:    saleUC,
		OrderRegistry:   orderUC,
		Runner:          runner,
		Clock:           clk,
		ML:              cfg.ML,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando aplicación")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
