package service

import (
	"fmt"
	"strings"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/validator"
)

// CouponService covers admin coupon management. Redemption happens inside
// the order transaction, not here.
type CouponService interface {
	Create(req *model.Coupon) (*model.Coupon, error)
	List() ([]model.Coupon, error)
	Disable(code string) error
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) Create(req *model.Coupon) (*model.Coupon, error) {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	if req.Type == model.CouponPercent && req.Value > 100 {
		return nil, fmt.Errorf("%w: percent coupon value cannot exceed 100", ErrValidation)
	}

	if existing, _ := s.couponRepo.FindByCode(req.Code); existing != nil {
		return nil, fmt.Errorf("%w: coupon code %s already exists", ErrValidation, req.Code)
	}

	req.IsActive = true
	if err := s.couponRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *couponService) List() ([]model.Coupon, error) {
	return s.couponRepo.FindAll()
}

func (s *couponService) Disable(code string) error {
	coupon, err := s.couponRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return ErrInvalidCoupon
	}
	coupon.IsActive = false
	return s.couponRepo.Update(coupon)
}
