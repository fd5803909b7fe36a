package utils

import (
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"gorm.io/gorm"
)

// Discount failure reason codes. Each validation step fails with its own
// code so the checkout boundary can surface a precise message.
const (
	ReasonCouponNotFound     = "COUPON_NOT_FOUND"
	ReasonCouponInactive     = "COUPON_INACTIVE"
	ReasonCouponNotStarted   = "COUPON_NOT_STARTED"
	ReasonCouponExpired      = "COUPON_EXPIRED"
	ReasonCouponExhausted    = "COUPON_EXHAUSTED"
	ReasonCouponNotAllowed   = "COUPON_NOT_ALLOWED"
	ReasonCouponUserLimit    = "COUPON_USER_LIMIT_REACHED"
	ReasonCouponScope        = "COUPON_NOT_APPLICABLE"
	ReasonBelowMinimum       = "ORDER_BELOW_MINIMUM"
	ReasonInsufficientPoints = "INSUFFICIENT_POINTS"
	ReasonPointsExceedOrder  = "POINTS_EXCEED_ORDER"
)

// DiscountResult is the outcome of applying a coupon/points combination to
// a checkout. On failure, FailureReason carries one of the reason codes
// above and the amounts are zero.
type DiscountResult struct {
	Success        bool   `json:"success"`
	FinalAmount    int64  `json:"final_amount"`
	CouponDiscount int64  `json:"coupon_discount"`
	PointsDiscount int64  `json:"points_discount"`
	FailureReason  string `json:"failure_reason,omitempty"`
}

// CheckCouponValidity runs the stateless coupon checks in validation order
// and returns the first failing reason code, or "" when the coupon passes.
// Allow-list and applicability scope need DB lookups and are checked by
// ApplyDiscount.
func CheckCouponValidity(coupon *models.Coupon, now time.Time, subtotal int64, userUsageCount int) string {
	if !coupon.Active {
		return ReasonCouponInactive
	}
	if now.Before(coupon.StartDate) {
		return ReasonCouponNotStarted
	}
	if now.After(coupon.EndDate) {
		return ReasonCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return ReasonCouponExhausted
	}
	if coupon.PerUserLimit > 0 && userUsageCount >= coupon.PerUserLimit {
		return ReasonCouponUserLimit
	}
	if subtotal < coupon.MinOrderAmount {
		return ReasonBelowMinimum
	}
	return ""
}

// CalculateCouponDiscount computes the coupon discount for a subtotal.
// Percent coupons are capped at MaxDiscount when set; every coupon is
// capped at the subtotal itself.
func CalculateCouponDiscount(coupon *models.Coupon, subtotal int64) int64 {
	var discount int64
	if coupon.Type == models.CouponTypePercent {
		discount = subtotal * coupon.Value / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	} else {
		discount = coupon.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// CalculatePointsDiscount validates a points redemption against the user's
// balance and the remaining payable amount. Points can never drive the
// payable amount negative.
func CalculatePointsDiscount(pointsToUse, balance, totalBeforeDiscount, couponDiscount int64) (int64, string) {
	if pointsToUse <= 0 {
		return 0, ""
	}
	if pointsToUse > balance {
		return 0, ReasonInsufficientPoints
	}
	remaining := totalBeforeDiscount - couponDiscount
	if remaining < 0 {
		remaining = 0
	}
	if pointsToUse > remaining {
		return 0, ReasonPointsExceedOrder
	}
	return pointsToUse, ""
}

// FinalAmount computes the payable amount, clamped at zero.
func FinalAmount(totalBeforeDiscount, couponDiscount, pointsDiscount int64) int64 {
	final := totalBeforeDiscount - couponDiscount - pointsDiscount
	if final < 0 {
		final = 0
	}
	return final
}

// ApplyDiscount validates and computes the discount breakdown for a
// checkout. It reads coupon and points state but performs no writes: the
// coupon-usage and points ledger entries are deferred to payment
// confirmation so an abandoned checkout never consumes a limited-use coupon
// or spends real points.
func ApplyDiscount(userID uint, subtotal, shippingFee int64, items []models.OrderItem, couponCode string, pointsToUse int64) (*DiscountResult, error) {
	totalBeforeDiscount := subtotal + shippingFee
	result := &DiscountResult{}

	fail := func(reason string) *DiscountResult {
		return &DiscountResult{Success: false, FailureReason: reason}
	}

	var couponDiscount int64
	if couponCode != "" {
		var coupon models.Coupon
		if err := config.DB.Where("code = ?", couponCode).First(&coupon).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fail(ReasonCouponNotFound), nil
			}
			return nil, err
		}

		var userUsage int64
		if err := config.DB.Model(&models.CouponUsage{}).
			Where("coupon_id = ? AND user_id = ?", coupon.ID, userID).
			Count(&userUsage).Error; err != nil {
			return nil, err
		}

		if reason := CheckCouponValidity(&coupon, time.Now(), subtotal, int(userUsage)); reason != "" {
			return fail(reason), nil
		}

		if coupon.Visibility == models.CouponVisibilityPrivate {
			var allowed int64
			if err := config.DB.Model(&models.CouponAllowedUser{}).
				Where("coupon_id = ? AND user_id = ?", coupon.ID, userID).
				Count(&allowed).Error; err != nil {
				return nil, err
			}
			if allowed == 0 {
				return fail(ReasonCouponNotAllowed), nil
			}
		}

		if coupon.CategoryID != nil {
			if !itemsContainCategory(items, *coupon.CategoryID) {
				return fail(ReasonCouponScope), nil
			}
		}

		couponDiscount = CalculateCouponDiscount(&coupon, subtotal)
	}

	var pointsDiscount int64
	if pointsToUse > 0 {
		balance, err := GetPointsBalance(userID)
		if err != nil {
			return nil, err
		}
		discount, reason := CalculatePointsDiscount(pointsToUse, balance, totalBeforeDiscount, couponDiscount)
		if reason != "" {
			return fail(reason), nil
		}
		pointsDiscount = discount
	}

	result.Success = true
	result.CouponDiscount = couponDiscount
	result.PointsDiscount = pointsDiscount
	result.FinalAmount = FinalAmount(totalBeforeDiscount, couponDiscount, pointsDiscount)
	return result, nil
}

func itemsContainCategory(items []models.OrderItem, categoryID uint) bool {
	for _, item := range items {
		if item.Food.CategoryID == categoryID {
			return true
		}
	}
	return false
}
