package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Add(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	review, err := h.reviewService.AddReview(userID, productID, req.Rating, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return created(c, review)
}

func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	page, perPage := pageParams(c)

	reviews, total, err := h.reviewService.ListByProduct(productID, page, perPage)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, reviews, total, page, perPage)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid review ID")
	}

	if err := h.reviewService.Delete(userID, reviewID); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Review deleted")
}
