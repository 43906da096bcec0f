package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AddressHandler struct {
	addressService service.AddressService
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req model.Address
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	address, err := h.addressService.Create(userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, address)
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	addresses, err := h.addressService.List(userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, addresses)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	addressID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid address ID")
	}

	var req model.Address
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	address, err := h.addressService.Update(userID, addressID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, address)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	addressID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid address ID")
	}

	if err := h.addressService.Delete(userID, addressID); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Address deleted")
}

func (h *AddressHandler) SetDefault(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	addressID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid address ID")
	}

	if err := h.addressService.SetDefault(userID, addressID); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Default address updated")
}
