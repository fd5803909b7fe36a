package utils

import (
	"testing"
	"time"

	"github.com/TranHuy-99/FoodNest/models"
	"github.com/stretchr/testify/assert"
)

func activeCoupon() models.Coupon {
	now := time.Now()
	return models.Coupon{
		ID:        1,
		Code:      "TENOFF",
		Type:      models.CouponTypePercent,
		Value:     10,
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
		Active:    true,
	}
}

func TestCheckCouponValidity(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		mutate     func(*models.Coupon)
		subtotal   int64
		userUsage  int
		wantReason string
	}{
		{
			name:     "valid coupon passes",
			mutate:   func(c *models.Coupon) {},
			subtotal: 200000,
		},
		{
			name:       "inactive",
			mutate:     func(c *models.Coupon) { c.Active = false },
			subtotal:   200000,
			wantReason: ReasonCouponInactive,
		},
		{
			name:       "not started yet",
			mutate:     func(c *models.Coupon) { c.StartDate = now.Add(time.Hour) },
			subtotal:   200000,
			wantReason: ReasonCouponNotStarted,
		},
		{
			name:       "expired",
			mutate:     func(c *models.Coupon) { c.EndDate = now.Add(-time.Hour) },
			subtotal:   200000,
			wantReason: ReasonCouponExpired,
		},
		{
			name: "global cap exhausted",
			mutate: func(c *models.Coupon) {
				c.UsageLimit = 100
				c.UsedCount = 100
			},
			subtotal:   200000,
			wantReason: ReasonCouponExhausted,
		},
		{
			name:       "per-user cap reached",
			mutate:     func(c *models.Coupon) { c.PerUserLimit = 2 },
			subtotal:   200000,
			userUsage:  2,
			wantReason: ReasonCouponUserLimit,
		},
		{
			name:       "below minimum order",
			mutate:     func(c *models.Coupon) { c.MinOrderAmount = 300000 },
			subtotal:   200000,
			wantReason: ReasonBelowMinimum,
		},
		{
			name: "inactive reported before expiry",
			mutate: func(c *models.Coupon) {
				c.Active = false
				c.EndDate = now.Add(-time.Hour)
			},
			subtotal:   200000,
			wantReason: ReasonCouponInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := activeCoupon()
			tt.mutate(&coupon)
			reason := CheckCouponValidity(&coupon, now, tt.subtotal, tt.userUsage)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestCalculateCouponDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   models.Coupon
		subtotal int64
		want     int64
	}{
		{
			name:     "percent without cap",
			coupon:   models.Coupon{Type: models.CouponTypePercent, Value: 10},
			subtotal: 200000,
			want:     20000,
		},
		{
			name:     "percent capped at max discount",
			coupon:   models.Coupon{Type: models.CouponTypePercent, Value: 10, MaxDiscount: 15000},
			subtotal: 200000,
			want:     15000,
		},
		{
			name:     "fixed amount",
			coupon:   models.Coupon{Type: models.CouponTypeAmount, Value: 30000},
			subtotal: 200000,
			want:     30000,
		},
		{
			name:     "fixed amount larger than subtotal clamps",
			coupon:   models.Coupon{Type: models.CouponTypeAmount, Value: 500000},
			subtotal: 200000,
			want:     200000,
		},
		{
			name:     "hundred percent",
			coupon:   models.Coupon{Type: models.CouponTypePercent, Value: 100},
			subtotal: 200000,
			want:     200000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateCouponDiscount(&tt.coupon, tt.subtotal))
		})
	}
}

func TestCalculatePointsDiscount(t *testing.T) {
	tests := []struct {
		name       string
		points     int64
		balance    int64
		total      int64
		coupon     int64
		want       int64
		wantReason string
	}{
		{
			name:    "5000 points on a 100000 order",
			points:  5000,
			balance: 8000,
			total:   100000,
			want:    5000,
		},
		{
			name:       "more points than balance",
			points:     10000,
			balance:    8000,
			total:      100000,
			wantReason: ReasonInsufficientPoints,
		},
		{
			name:       "points exceed remaining payable",
			points:     8000,
			balance:    8000,
			total:      10000,
			coupon:     5000,
			wantReason: ReasonPointsExceedOrder,
		},
		{
			name:    "zero points is a no-op",
			points:  0,
			balance: 8000,
			total:   100000,
		},
		{
			name:    "points equal to remaining payable allowed",
			points:  5000,
			balance: 5000,
			total:   10000,
			coupon:  5000,
			want:    5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := CalculatePointsDiscount(tt.points, tt.balance, tt.total, tt.coupon)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestFinalAmountNeverNegative(t *testing.T) {
	assert.Equal(t, int64(80000), FinalAmount(100000, 15000, 5000))
	assert.Equal(t, int64(0), FinalAmount(100000, 100000, 0))
	assert.Equal(t, int64(0), FinalAmount(100000, 90000, 20000))
}

func TestFinalAmountWorkedExample(t *testing.T) {
	// 200,000 subtotal, free-shipping threshold not reached: 15,000 fee.
	subtotal := int64(200000)
	shipping := CalculateShippingFee(subtotal)
	assert.Equal(t, int64(DefaultShippingFee), shipping)

	coupon := models.Coupon{Type: models.CouponTypePercent, Value: 10, MaxDiscount: 15000}
	couponDiscount := CalculateCouponDiscount(&coupon, subtotal)
	assert.Equal(t, int64(15000), couponDiscount)

	pointsDiscount, reason := CalculatePointsDiscount(5000, 8000, subtotal+shipping, couponDiscount)
	assert.Empty(t, reason)

	assert.Equal(t, int64(195000), FinalAmount(subtotal+shipping, couponDiscount, pointsDiscount))
}
