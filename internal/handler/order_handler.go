package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	order, err := h.orderService.CreateOrder(userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, order)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	page, perPage := pageParams(c)

	orders, total, err := h.orderService.ListOrders(userID, page, perPage)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, orders, total, page, perPage)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid order ID")
	}

	isAdmin := currentRole(c) == model.RoleAdmin
	order, err := h.orderService.GetOrder(userID, orderID, isAdmin)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid order ID")
	}

	order, err := h.orderService.CancelOrder(userID, orderID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	page, perPage := pageParams(c)
	status := model.OrderStatus(c.Query("status"))

	orders, total, err := h.orderService.ListAllOrders(page, perPage, status)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, orders, total, page, perPage)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid order ID")
	}

	var req struct {
		Status         string `json:"status"`
		Carrier        string `json:"carrier"`
		TrackingNumber string `json:"tracking_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	order, err := h.orderService.UpdateStatus(orderID, model.OrderStatus(req.Status), &service.StatusUpdateRequest{
		Carrier:        req.Carrier,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}
