package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/pkg/clock"
)

// AnalyticsHandler maneja los endpoints de métricas descriptivas.
type AnalyticsHandler struct {
	overview *analytics.OverviewMetrics
	stock    *analytics.StockMetrics
	sales    *analytics.SalesMetrics
	products *analytics.ProductsMetrics
	clk      clock.Clock
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(
	overview *analytics.OverviewMetrics,
	stock *analytics.StockMetrics,
	sales *analytics.SalesMetrics,
	products *analytics.ProductsMetrics,
	clk clock.Clock,
) *AnalyticsHandler {
	return &AnalyticsHandler{overview: overview, stock: stock, sales: sales, products: products, clk: clk}
}

// parseRange lee start_date y end_date del query string. Sin parámetros usa
// el mes en curso: del primer día del mes hasta ahora.
func (h *AnalyticsHandler) parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	var req dto.DateRangeRequest
	if err := c.QueryParser(&req); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if req.StartDate == "" && req.EndDate == "" {
		now := h.clk.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, now, nil
	}
	return dto.ParseRange(req.StartDate, req.EndDate)
}

// GetOverview godoc
// @Summary      Resumen combinado de stock, ventas y productos
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: ahora."
// @Success      200  {object}  dto.OverviewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	start, end, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.overview.Metrics(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetStockOverview godoc
// @Summary      Métricas de stock: valor total, conteos y productos fuera de rango
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.StockOverviewDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/stock [get]
func (h *AnalyticsHandler) GetStockOverview(c *fiber.Ctx) error {
	result, err := h.stock.Overview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetStockDetail godoc
// @Summary      Detalle de stock por producto de una categoría
// @Tags         analytics
// @Produce      json
// @Param        categoryID  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.StockDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/stock/{categoryID} [get]
func (h *AnalyticsHandler) GetStockDetail(c *fiber.Ctx) error {
	result, err := h.stock.Detail(c.Context(), c.Params("categoryID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetSalesOverview godoc
// @Summary      Métricas de ventas del período: totales, promedios y extremos diarios
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.SalesOverviewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales [get]
func (h *AnalyticsHandler) GetSalesOverview(c *fiber.Ctx) error {
	start, end, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.sales.Overview(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetSalesDetail godoc
// @Summary      Serie diaria de ventas del período, global y por categoría
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.SalesDetailDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/detail [get]
func (h *AnalyticsHandler) GetSalesDetail(c *fiber.Ctx) error {
	start, end, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.sales.Detail(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetProductsOverview godoc
// @Summary      Rankings de productos del período (más/menos vendidos y facturados)
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductsOverviewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/products [get]
func (h *AnalyticsHandler) GetProductsOverview(c *fiber.Ctx) error {
	start, end, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.products.Overview(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetProductsDetail godoc
// @Summary      Detalle por producto de una categoría: vendido, facturado y balances
// @Tags         analytics
// @Produce      json
// @Param        categoryID  path   string  true   "ID de la categoría"
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {array}   dto.ProductDetailDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/products/category/{categoryID} [get]
func (h *AnalyticsHandler) GetProductsDetail(c *fiber.Ctx) error {
	start, end, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.products.Detail(c.Context(), c.Params("categoryID"), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetProductSeries godoc
// @Summary      Series diarias densas de un producto: vendido, facturado y balance
// @Tags         analytics
// @Produce      json
// @Param        productID   path   string  true   "ID del producto"
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductSeriesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/products/{productID}/series [get]
func (h *AnalyticsHandler) GetProductSeries(c *fiber.Ctx) error {
	start, end, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.products.Series(c.Context(), c.Params("productID"), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
