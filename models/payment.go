package models

import (
	"time"
)

// Payment gateways
const (
	GatewayZaloPay  = "zalopay"
	GatewayRazorpay = "razorpay"
)

// Reconciliation outcomes
const (
	PaymentOutcomePaid   = "PAID"
	PaymentOutcomeFailed = "FAILED"
)

// Reconciliation sources, in decreasing order of authority. Gateway
// callbacks and queries are authoritative; a frontend report only exists to
// surface failures the gateway never notifies about and can never override
// a paid state.
const (
	ReconcileSourceCallback       = "CALLBACK"
	ReconcileSourceQuery          = "QUERY"
	ReconcileSourceFrontendReport = "FRONTEND_REPORT"
)

// PaymentTransaction is the audit record for one outbound payment request
// and its eventual callback. AppTransID is deterministic per order so that
// re-issuing a payment link for a pending order is idempotent at the
// gateway; ExtTransID is the gateway's own transaction id, recorded once a
// callback or query reports it.
type PaymentTransaction struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	OrderID         uint       `json:"order_id" gorm:"index"`
	Gateway         string     `json:"gateway"`
	AppTransID      string     `json:"app_trans_id" gorm:"uniqueIndex"`
	ExtTransID      string     `json:"ext_trans_id" gorm:"index;default:null"`
	Amount          int64      `json:"amount"`
	RequestPayload  string     `json:"request_payload"`
	CallbackPayload string     `json:"callback_payload"`
	VerifyResult    string     `json:"verify_result"`
	Status          string     `json:"status"` // pending, paid, failed
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Notification is a persisted order-status event, written by the
// notification worker. Delivery beyond this row (email) is best-effort.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"index"`
	OrderID   uint      `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Message   string    `json:"message"`
	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
