package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// AdjustStock sets a product's stock to an absolute quantity and records
// the delta in the movement ledger.
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req struct {
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
		Note     string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.inventoryService.AdjustStock(productID, req.Quantity, model.MovementReason(req.Reason), req.Note)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, product)
}

func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	page, perPage := pageParams(c)

	movements, total, err := h.inventoryService.Movements(productID, page, perPage)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, movements, total, page, perPage)
}
