package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, cart)
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	item, err := h.cartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return created(c, item)
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	item, err := h.cartService.UpdateItem(userID, itemID, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, item)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	if err := h.cartService.RemoveItem(userID, itemID); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Item removed")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.cartService.ClearCart(userID); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Cart cleared")
}

// Validate reports price and stock discrepancies without mutating the
// cart. Clients call it before checkout.
func (h *CartHandler) Validate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	discrepancies, err := h.cartService.ValidateCart(userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"valid": len(discrepancies) == 0, "discrepancies": discrepancies})
}
