package repository

import (
	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	FindByCode(code string) (*model.Coupon, error)
	FindAll() ([]model.Coupon, error)
	Update(coupon *model.Coupon) error
	IncrementUsage(tx *gorm.DB, id uuid.UUID) (bool, error)
}

type couponRepo struct {
	db *gorm.DB
}

func NewCouponRepo(db *gorm.DB) CouponRepository {
	return &couponRepo{db}
}

func (r *couponRepo) Create(coupon *model.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *couponRepo) FindByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.First(&coupon, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepo) FindAll() ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.db.Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *couponRepo) Update(coupon *model.Coupon) error {
	return r.db.Save(coupon).Error
}

// IncrementUsage bumps used_count only while under the limit, in one
// conditional statement, so concurrent checkouts cannot overshoot max_uses.
// Returns false when the coupon is exhausted.
func (r *couponRepo) IncrementUsage(tx *gorm.DB, id uuid.UUID) (bool, error) {
	res := tx.Model(&model.Coupon{}).
		Where("id = ? AND used_count < max_uses", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
