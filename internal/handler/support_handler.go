package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupportHandler struct {
	supportService service.SupportService
}

func NewSupportHandler(supportService service.SupportService) *SupportHandler {
	return &SupportHandler{supportService: supportService}
}

func isAgent(c *fiber.Ctx) bool {
	role := currentRole(c)
	return role == model.RoleSupport || role == model.RoleAdmin
}

func (h *SupportHandler) CreateTicket(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	ticket, err := h.supportService.CreateTicket(userID, req.Subject, req.Body)
	if err != nil {
		return fail(c, err)
	}
	return created(c, ticket)
}

func (h *SupportHandler) ListMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	page, perPage := pageParams(c)

	tickets, total, err := h.supportService.ListMine(userID, page, perPage)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, tickets, total, page, perPage)
}

func (h *SupportHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	ticketID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid ticket ID")
	}

	ticket, err := h.supportService.GetTicket(userID, ticketID, isAgent(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ticket)
}

func (h *SupportHandler) Reply(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	ticketID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid ticket ID")
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	message, err := h.supportService.Reply(userID, ticketID, req.Body, isAgent(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, message)
}

func (h *SupportHandler) ListAll(c *fiber.Ctx) error {
	page, perPage := pageParams(c)
	status := model.TicketStatus(c.Query("status"))

	tickets, total, err := h.supportService.ListAll(page, perPage, status)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, tickets, total, page, perPage)
}

func (h *SupportHandler) UpdateStatus(c *fiber.Ctx) error {
	ticketID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid ticket ID")
	}

	var req struct {
		Status     string     `json:"status"`
		AssigneeID *uuid.UUID `json:"assignee_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	ticket, err := h.supportService.UpdateStatus(ticketID, model.TicketStatus(req.Status), req.AssigneeID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ticket)
}
