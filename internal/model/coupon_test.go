package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCouponDiscountFor(t *testing.T) {
	percent := &Coupon{Type: CouponPercent, Value: 10}
	require.Equal(t, int64(1000), percent.DiscountFor(10000))
	require.Equal(t, int64(0), percent.DiscountFor(0))

	fixed := &Coupon{Type: CouponFixed, Value: 500}
	require.Equal(t, int64(500), fixed.DiscountFor(10000))

	// A fixed discount never exceeds the subtotal.
	require.Equal(t, int64(300), fixed.DiscountFor(300))
}

func TestCouponUsableAt(t *testing.T) {
	now := time.Now()

	fresh := &Coupon{IsActive: true, MaxUses: 5}
	require.True(t, fresh.UsableAt(now))

	require.False(t, (&Coupon{IsActive: false, MaxUses: 5}).UsableAt(now))
	require.False(t, (&Coupon{IsActive: true, MaxUses: 5, UsedCount: 5}).UsableAt(now))

	windowed := &Coupon{
		IsActive:   true,
		MaxUses:    5,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
	}
	require.True(t, windowed.UsableAt(now))
	require.False(t, windowed.UsableAt(now.Add(-2*time.Hour)))
	require.False(t, windowed.UsableAt(now.Add(2*time.Hour)))
}
