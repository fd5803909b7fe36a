package models

import (
	"time"

	"gorm.io/gorm"
)

// PointHistory entry types
const (
	PointTypeEarn   = "EARN"
	PointTypeUse    = "USE"
	PointTypeRefund = "REFUND"
)

// PointsBalance holds a user's loyalty point balance. Points redeem 1:1
// against VND at checkout. Balance never goes negative; debits are applied
// with a conditional update.
type PointsBalance struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex"`
	Balance   int64          `json:"balance" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PointHistory is the append-only transaction log for a user's points.
// A USE entry is written only on confirmed payment; a REFUND entry restores
// spent points when a confirmed order is cancelled.
type PointHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"` // EARN, USE, REFUND
	Description string    `json:"description"`
	OrderID     *uint     `json:"order_id"`
	Reference   string    `json:"reference"`
	CreatedAt   time.Time `json:"created_at"`
}
