package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusConfirmed  = "Confirmed"
	OrderStatusDelivering = "Delivering"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// PaymentMethodCOD is the only payment method that needs no gateway.
// Gateway methods are named by the gateway constants in payment.go.
const PaymentMethodCOD = "cod"

// Payment status constants
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Actor roles for status transitions
const (
	RoleUser   = "user"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
	RoleSystem = "system"
)

type Order struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	OrderCode            string      `gorm:"uniqueIndex" json:"order_code"`
	UserID               uint        `json:"user_id"`
	AddressID            uint        `json:"address_id"`
	Address              Address     `json:"address" gorm:"foreignKey:AddressID"`
	SubtotalAmount       int64       `json:"subtotal_amount"`
	ShippingFee          int64       `json:"shipping_fee"`
	TotalBeforeDiscount  int64       `json:"total_before_discount"`
	CouponCode           string      `json:"coupon_code,omitempty"`
	CouponDiscount       int64       `json:"coupon_discount"`
	PointsUsed           int64       `json:"points_used"`
	PointsDiscount       int64       `json:"points_discount"`
	FinalAmount          int64       `json:"final_amount"`
	PaymentMethod        string      `json:"payment_method"`
	Status               string      `json:"status"`
	PaymentStatus        string      `json:"payment_status"`
	PaymentTransactionID string      `gorm:"uniqueIndex;default:null" json:"payment_transaction_id,omitempty"`
	PaymentTime          *time.Time  `json:"payment_time,omitempty"`
	CancellationReason   string      `json:"cancellation_reason,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
	OrderItems           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	OrderID  uint  `json:"order_id"`
	FoodID   uint  `json:"food_id"`
	Food     Food  `json:"food"`
	Quantity int   `json:"quantity"`
	Price    int64 `json:"price"` // unit price snapshot at order time
	Total    int64 `json:"total"`
}

// orderTransitions is the single allow-list of status transitions, keyed by
// from-status, then to-status, mapping to the roles permitted to perform it.
// Every status change in the system goes through CanTransition; callers never
// check transitions themselves.
var orderTransitions = map[string]map[string][]string{
	OrderStatusPending: {
		OrderStatusProcessing: {RoleSystem},
		OrderStatusCancelled:  {RoleSystem, RoleUser, RoleAdmin},
	},
	OrderStatusProcessing: {
		OrderStatusConfirmed: {RoleStaff, RoleAdmin},
		OrderStatusCancelled: {RoleStaff, RoleAdmin},
	},
	OrderStatusConfirmed: {
		OrderStatusDelivering: {RoleStaff, RoleAdmin},
		OrderStatusCancelled:  {RoleAdmin},
	},
	OrderStatusDelivering: {
		OrderStatusCompleted: {RoleStaff, RoleAdmin},
	},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// CanTransition reports whether the given actor role may move an order from
// one status to another.
func CanTransition(from, to, role string) bool {
	targets, ok := orderTransitions[from]
	if !ok {
		return false
	}
	roles, ok := targets[to]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether the given string is a known order status.
func ValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}
