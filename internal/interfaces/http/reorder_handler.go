package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/reorder"
)

// ReorderHandler maneja el endpoint de sugerencias de reorden.
type ReorderHandler struct {
	uc *reorder.UseCase
}

// NewReorderHandler construye el handler.
func NewReorderHandler(uc *reorder.UseCase) *ReorderHandler {
	return &ReorderHandler{uc: uc}
}

// GetSuggestions godoc
// @Summary      Sugerencias de reorden por proveedor y categoría
// @Description  Cruza demanda pronosticada, stock de seguridad y balance actual
//               para proponer la cantidad a pedir de cada producto.
// @Tags         reorder
// @Produce      json
// @Param        provider_id  query  string  true  "ID del proveedor"
// @Param        category_id  query  string  true  "ID de la categoría"
// @Success      200  {array}   dto.ReorderSuggestionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reorder [get]
func (h *ReorderHandler) GetSuggestions(c *fiber.Ctx) error {
	providerID := c.Query("provider_id")
	categoryID := c.Query("category_id")
	if providerID == "" || categoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "provider_id y category_id son obligatorios",
		})
	}

	result, err := h.uc.Suggestions(c.Context(), providerID, categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
