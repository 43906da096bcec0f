package service

import (
	"context"
	"errors"
	"fmt"

	"go-storefront-api/internal/events"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/search"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(req *model.Product) (*model.Product, error)
	Update(id uuid.UUID, req *ProductUpdateRequest) (*model.Product, error)
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*model.Product, error)
	List(page, perPage int, category string) ([]model.Product, int64, error)
	Search(ctx context.Context, query string, page, perPage int) ([]model.Product, int64, error)
}

// ProductUpdateRequest enumerates the updatable catalog fields. Stock is
// deliberately absent: stock changes go through the inventory service so
// the counter and the movement ledger stay paired.
type ProductUpdateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}

type productService struct {
	productRepo repository.ProductRepository
	index       *search.ProductIndex
	producer    *events.Producer
}

func NewProductService(productRepo repository.ProductRepository, index *search.ProductIndex, producer *events.Producer) ProductService {
	return &productService{
		productRepo: productRepo,
		index:       index,
		producer:    producer,
	}
}

func (s *productService) Create(req *model.Product) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrSKUTaken
	}

	req.IsActive = true
	if err := s.productRepo.Create(req); err != nil {
		return nil, err
	}

	go s.index.IndexProduct(context.Background(), req)
	s.producer.Publish(events.TopicStock, req.ID.String(), map[string]interface{}{
		"type":    "product_created",
		"product": req.ID.String(),
		"sku":     req.SKU,
		"stock":   req.Stock,
	})

	return req, nil
}

func (s *productService) Update(id uuid.UUID, req *ProductUpdateRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	go s.index.IndexProduct(context.Background(), product)
	return product, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	go s.index.RemoveProduct(context.Background(), id.String())
	return nil
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) List(page, perPage int, category string) ([]model.Product, int64, error) {
	offset, limit := paginate(page, perPage)
	return s.productRepo.FindAll(offset, limit, category)
}

// Search prefers the Elasticsearch index and falls back to a SQL LIKE scan
// when no cluster is configured or the query fails.
func (s *productService) Search(ctx context.Context, query string, page, perPage int) ([]model.Product, int64, error) {
	offset, limit := paginate(page, perPage)

	if s.index.Enabled() {
		total, products, err := s.index.Search(ctx, query, offset, limit)
		if err == nil {
			return products, total, nil
		}
	}

	return s.productRepo.SearchSQL(query, offset, limit)
}

// paginate clamps paging inputs to sane bounds.
func paginate(page, perPage int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return (page - 1) * perPage, perPage
}
