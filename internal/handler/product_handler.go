package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, perPage := pageParams(c)
	category := c.Query("category")

	products, total, err := h.productService.List(page, perPage, category)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, products, total, page, perPage)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, product)
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return badRequest(c, "Query parameter 'q' is required")
	}
	page, perPage := pageParams(c)

	products, total, err := h.productService.Search(c.Context(), query, page, perPage)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, products, total, page, perPage)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req model.Product
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req service.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.productService.Update(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	if err := h.productService.Delete(id); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Product deleted")
}
