package model

import "time"

type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponFixed   CouponType = "fixed"
)

// Coupon is a named discount rule with a usage limit and validity window.
// Value is a percentage (0-100) for percent coupons and cents for fixed.
type Coupon struct {
	BaseModel
	Code       string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Type       CouponType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=percent fixed"`
	Value      int64      `gorm:"not null" json:"value" validate:"gt=0"`
	MaxUses    int        `gorm:"not null" json:"max_uses" validate:"gt=0"`
	UsedCount  int        `gorm:"not null;default:0" json:"used_count"`
	ValidFrom  time.Time  `json:"valid_from"`
	ValidUntil time.Time  `json:"valid_until"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
}

// DiscountFor computes the discount in cents for a given subtotal,
// capped at the subtotal so totals cannot go negative.
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	var discount int64
	switch c.Type {
	case CouponPercent:
		discount = subtotal * c.Value / 100
	case CouponFixed:
		discount = c.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// UsableAt reports whether the coupon may still be redeemed at t.
func (c *Coupon) UsableAt(t time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.UsedCount >= c.MaxUses {
		return false
	}
	if !c.ValidFrom.IsZero() && t.Before(c.ValidFrom) {
		return false
	}
	if !c.ValidUntil.IsZero() && t.After(c.ValidUntil) {
		return false
	}
	return true
}
