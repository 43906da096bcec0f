package handler

import (
	"errors"

	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Every handler responds with the same envelope:
// { success, message?, data?, errors? }

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func paged(c *fiber.Ctx, data interface{}, total int64, page, perPage int) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"meta":    fiber.Map{"total": total, "page": page, "per_page": perPage},
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}

// fail maps domain errors onto HTTP status codes. Unknown errors become a
// 500 with the detail withheld.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Internal Server Error"
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrAddressNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		return fiber.StatusUnauthorized

	case errors.Is(err, service.ErrReviewNotAllowed):
		return fiber.StatusForbidden

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrSKUTaken),
		errors.Is(err, service.ErrAlreadyReviewed):
		return fiber.StatusConflict

	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidCoupon),
		errors.Is(err, service.ErrCouponExhausted),
		errors.Is(err, service.ErrInvalidPayMethod),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrOrderNotCancelable),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidTicketStatus),
		errors.Is(err, service.ErrIllegalTicketTransition):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// Identity helpers; values are set by the RequireAuth middleware.

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	return uuid.Parse(raw)
}

func currentRole(c *fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func pageParams(c *fiber.Ctx) (page, perPage int) {
	page = c.QueryInt("page", 1)
	perPage = c.QueryInt("per_page", 20)
	return page, perPage
}
