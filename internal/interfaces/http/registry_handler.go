package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/registry"
)

// RegistryHandler maneja el registro de ventas y pedidos.
type RegistryHandler struct {
	sales  *registry.SaleUseCase
	orders *registry.OrderUseCase
}

// NewRegistryHandler construye el handler.
func NewRegistryHandler(sales *registry.SaleUseCase, orders *registry.OrderUseCase) *RegistryHandler {
	return &RegistryHandler{sales: sales, orders: orders}
}

// CreateSale godoc
// @Summary      Registrar una venta
// @Description  Crea la venta con sus líneas y descuenta stock en el libro de
//               inventario, todo en una sola transacción.
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "fecha opcional y líneas (product_id, quantity)"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/registry/sales [post]
func (h *RegistryHandler) CreateSale(c *fiber.Ctx) error {
	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return respondError(c, err)
	}

	input := registry.SaleInput{Date: date}
	for _, item := range req.Items {
		input.Lines = append(input.Lines, registry.SaleLineInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	sale, err := h.sales.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    sale.ID,
		"total": dto.Money(sale.Sale),
	})
}

// CreateOrder godoc
// @Summary      Registrar un pedido a proveedor
// @Description  Crea el pedido con sus líneas y aumenta stock en el libro de
//               inventario, todo en una sola transacción.
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "provider_id, fecha opcional y líneas"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/registry/orders [post]
func (h *RegistryHandler) CreateOrder(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return respondError(c, err)
	}

	input := registry.OrderInput{ProviderID: req.ProviderID, Date: date}
	for _, item := range req.Items {
		input.Lines = append(input.Lines, registry.OrderLineInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orders.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   order.ID,
		"cost": dto.Money(order.Cost),
	})
}

// parseOptionalDate parsea la fecha si viene; vacía devuelve el cero de time.Time
// (el caso de uso la reemplaza por ahora).
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dto.ParseDate(s)
}
