package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount types
const (
	CouponTypePercent = "percent"
	CouponTypeAmount  = "amount"
)

// Coupon visibility
const (
	CouponVisibilityPublic  = "public"
	CouponVisibilityPrivate = "private"
)

type Coupon struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Code           string         `gorm:"uniqueIndex" json:"code"`
	Type           string         `json:"type"` // percent or amount
	Value          int64          `json:"value"`
	MinOrderAmount int64          `json:"min_order_amount"`
	MaxDiscount    int64          `json:"max_discount"` // cap for percent type, 0 = uncapped
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	UsageLimit     int            `json:"usage_limit"`
	PerUserLimit   int            `json:"per_user_limit"` // 0 = unlimited
	UsedCount      int            `json:"used_count"`
	Visibility     string         `json:"visibility" gorm:"default:'public'"`
	CategoryID     *uint          `json:"category_id,omitempty"` // optional scope: order must contain this category
	Active         bool           `json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// CouponAllowedUser is the allow-list for private coupons.
type CouponAllowedUser struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CouponID uint `json:"coupon_id" gorm:"index"`
	UserID   uint `json:"user_id" gorm:"index"`
}

// CouponUsage is the append-only ledger of confirmed coupon redemptions.
// A row is written only when an order's payment is confirmed, never at
// apply time, so abandoned checkouts do not consume limited-use coupons.
type CouponUsage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CouponID       uint      `json:"coupon_id" gorm:"index"`
	UserID         uint      `json:"user_id" gorm:"index"`
	OrderID        uint      `json:"order_id" gorm:"uniqueIndex"`
	DiscountAmount int64     `json:"discount_amount"`
	UsedAt         time.Time `json:"used_at"`
}
