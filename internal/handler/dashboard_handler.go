package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, stats)
}

// StockMovement returns daily inbound/outbound totals for charts.
// Query param: days (default 7).
func (h *DashboardHandler) StockMovement(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}

	data, err := h.dashboardService.GetStockMovement(days)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"period": days, "data": data})
}
