package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler covers the admin user management endpoints. Self-service
// profile operations live in AuthHandler.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, perPage := pageParams(c)

	users, total, err := h.userService.List(page, perPage)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, users, total, page, perPage)
}

func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return badRequest(c, "Field 'is_active' is required")
	}

	if err := h.userService.SetActive(userID, *req.IsActive); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "User status updated")
}

func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if err := h.userService.SetRole(userID, req.Role); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "User role updated")
}
