package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.authService.UpdateProfile(userID, req.FullName, req.Phone)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if err := h.authService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Password changed")
}

func (h *AuthHandler) Deactivate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.authService.Deactivate(userID); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Account deactivated")
}
