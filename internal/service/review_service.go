package service

import (
	"errors"
	"fmt"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	AddReview(userID, productID uuid.UUID, rating int, comment string) (*model.Review, error)
	ListByProduct(productID uuid.UUID, page, perPage int) ([]model.Review, int64, error)
	Delete(userID, reviewID uuid.UUID) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, orderRepo repository.OrderRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// AddReview is gated on a delivered order containing the product and
// allows one review per (user, product) pair.
func (s *reviewService) AddReview(userID, productID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, ErrProductNotFound
	}

	purchased, err := s.orderRepo.HasDeliveredProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrReviewNotAllowed
	}

	if _, err := s.reviewRepo.FindByUserAndProduct(userID, productID); err == nil {
		return nil, ErrAlreadyReviewed
	}

	review := &model.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if errs := validator.ValidateStruct(review); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByProduct(productID uuid.UUID, page, perPage int) ([]model.Review, int64, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, 0, ErrProductNotFound
	}
	offset, limit := paginate(page, perPage)
	return s.reviewRepo.FindByProduct(productID, offset, limit)
}

func (s *reviewService) Delete(userID, reviewID uuid.UUID) error {
	if err := s.reviewRepo.Delete(reviewID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
