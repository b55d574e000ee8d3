package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/forecast"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/worker"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/config"
)

// taskTimeout tope de ejecución de una tarea en segundo plano.
const taskTimeout = 10 * time.Minute

// ForecastHandler maneja los endpoints de pronóstico de demanda. Las
// operaciones que llaman al servicio de ML se despachan al runner de tareas
// y el handler responde 202 de inmediato.
type ForecastHandler struct {
	pipeline *forecast.Pipeline
	queries  *forecast.QueryService
	runner   *worker.Runner
	clk      clock.Clock
	mlCfg    config.MLConfig
}

// NewForecastHandler construye el handler.
func NewForecastHandler(
	pipeline *forecast.Pipeline,
	queries *forecast.QueryService,
	runner *worker.Runner,
	clk clock.Clock,
	mlCfg config.MLConfig,
) *ForecastHandler {
	return &ForecastHandler{pipeline: pipeline, queries: queries, runner: runner, clk: clk, mlCfg: mlCfg}
}

// RunForecast godoc
// @Summary      Lanzar una corrida de pronóstico de demanda
// @Description  Encola la corrida (recolectar historia, llamar al servicio de ML,
//               persistir predicciones) y responde de inmediato.
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunForecastRequest  false  "days_to_predict e historical_days (defaults de configuración)"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/forecast/run [post]
func (h *ForecastHandler) RunForecast(c *fiber.Ctx) error {
	var req dto.RunForecastRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	days := req.DaysToPredict
	if days == 0 {
		days = h.mlCfg.DaysToPredict
	}
	historical := req.HistoricalDays
	if historical == 0 {
		historical = h.mlCfg.HistoricalDays
	}
	if days < 0 || historical < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "los días deben ser positivos"})
	}

	err := h.runner.Submit(worker.Task{
		Name: "forecast-run",
		Fn: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, taskTimeout)
			defer cancel()
			return h.pipeline.Run(ctx, days, historical)
		},
	})
	if err != nil {
		if errors.Is(err, worker.ErrQueueFull) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BUSY", Message: "cola de tareas llena, reintentar más tarde"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "corrida de pronóstico encolada"})
}

// ExportSales godoc
// @Summary      Exportar historia de ventas al servicio de ML
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExportSalesRequest  true  "type, format y rango opcional"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/forecast/export [post]
func (h *ForecastHandler) ExportSales(c *fiber.Ctx) error {
	var req dto.ExportSalesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if req.Type == "" || req.Format == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type y format son obligatorios"})
	}

	// Rango por defecto: la misma ventana de historia que usa la corrida.
	var start, end time.Time
	if req.StartDate != "" || req.EndDate != "" {
		var err error
		start, end, err = dto.ParseRange(req.StartDate, req.EndDate)
		if err != nil {
			return respondError(c, err)
		}
	} else {
		now := h.clk.Now()
		end = now.AddDate(0, 0, -1)
		start = now.AddDate(0, 0, -h.mlCfg.HistoricalDays)
	}

	err := h.runner.Submit(worker.Task{
		Name: "sales-export",
		Fn: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, taskTimeout)
			defer cancel()
			return h.pipeline.Export(ctx, req.Type, req.Format, start, end)
		},
	})
	if err != nil {
		if errors.Is(err, worker.ErrQueueFull) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BUSY", Message: "cola de tareas llena, reintentar más tarde"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "exportación encolada"})
}

// GetCategoryForecasts godoc
// @Summary      Demanda pronosticada por categoría desde hoy
// @Tags         forecast
// @Produce      json
// @Success      200  {array}   dto.GroupForecastDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/forecast/categories [get]
func (h *ForecastHandler) GetCategoryForecasts(c *fiber.Ctx) error {
	result, err := h.queries.CategoryForecasts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetProductForecasts godoc
// @Summary      Demanda pronosticada por producto de una categoría
// @Tags         forecast
// @Produce      json
// @Param        categoryID  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryForecastDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/forecast/categories/{categoryID} [get]
func (h *ForecastHandler) GetProductForecasts(c *fiber.Ctx) error {
	result, err := h.queries.ProductForecasts(c.Context(), c.Params("categoryID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetWeeklyTotals godoc
// @Summary      Demanda pronosticada por semana de una categoría
// @Description  Cuatro semanas a partir del próximo lunes, agregadas por semana calendario.
// @Tags         forecast
// @Produce      json
// @Param        category_id  query  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryWeeklyForecastDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/forecast/weekly [get]
func (h *ForecastHandler) GetWeeklyTotals(c *fiber.Ctx) error {
	categoryID := c.Query("category_id")
	if categoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "category_id es obligatorio"})
	}
	result, err := h.queries.WeeklyTotals(c.Context(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetMonthlyTotals godoc
// @Summary      Demanda total pronosticada por categoría en los próximos 30 días
// @Tags         forecast
// @Produce      json
// @Success      200  {array}   dto.CategoryDemandTotalDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/forecast/monthly [get]
func (h *ForecastHandler) GetMonthlyTotals(c *fiber.Ctx) error {
	result, err := h.queries.MonthlyTotals(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
