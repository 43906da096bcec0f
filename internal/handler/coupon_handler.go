package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CouponHandler struct {
	couponService service.CouponService
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var req model.Coupon
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	coupon, err := h.couponService.Create(&req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, coupon)
}

func (h *CouponHandler) List(c *fiber.Ctx) error {
	coupons, err := h.couponService.List()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, coupons)
}

func (h *CouponHandler) Disable(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return badRequest(c, "Coupon code is required")
	}

	if err := h.couponService.Disable(code); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Coupon disabled")
}
