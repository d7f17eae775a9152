package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/matie/internal/services"
)

// InventoryHandler answers storefront stock availability checks.
type InventoryHandler struct {
	warehouse *services.WarehouseService
}

// NewInventoryHandler constructs InventoryHandler.
func NewInventoryHandler(warehouse *services.WarehouseService) *InventoryHandler {
	return &InventoryHandler{warehouse: warehouse}
}

// Check returns current stock for the requested product names. Levels
// include not-yet-flushed stock adjustments; unknown products report zero.
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	var req struct {
		ProductNames []string `json:"product_names"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.ProductNames) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "product_names required")
	}

	stock, err := h.warehouse.CheckStock(req.ProductNames)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": stock})
}
