package utils

import (
	"fmt"
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReconcileAction is the decision the planner reaches for one reconcile
// call. The planner is evaluated inside the per-order row lock so the
// check and the act cannot be separated by a racing call.
type ReconcileAction int

const (
	// ReconcileApplyPaid applies the PAID outcome and confirms the
	// deferred coupon/points ledger writes.
	ReconcileApplyPaid ReconcileAction = iota
	// ReconcileApplyFailed marks the payment failed and cancels a still
	// pending order.
	ReconcileApplyFailed
	// ReconcileNoop means this outcome was already applied for the same
	// external transaction; the call succeeds without side effects.
	ReconcileNoop
	// ReconcileDropConflict drops a report that contradicts an
	// authoritative terminal state (logged, not an error).
	ReconcileDropConflict
	// ReconcileDropUntrusted drops a self-reported success; only the
	// gateway may confirm a payment.
	ReconcileDropUntrusted
)

// PlanReconcile decides what a reconcile call should do given the order's
// current payment state. Pure function; callers evaluate it while holding
// the order's row lock.
func PlanReconcile(order *models.Order, extTransID, outcome, source string) ReconcileAction {
	switch order.PaymentStatus {
	case models.PaymentStatusPaid:
		if outcome == models.PaymentOutcomePaid && order.PaymentTransactionID == extTransID {
			return ReconcileNoop
		}
		// Anything else contradicts an authoritative paid state: a
		// duplicate callback with a different transaction id, or a
		// late FAILED report. Paid is terminal.
		return ReconcileDropConflict
	case models.PaymentStatusFailed:
		if outcome == models.PaymentOutcomeFailed {
			return ReconcileNoop
		}
		if source == models.ReconcileSourceFrontendReport {
			return ReconcileDropUntrusted
		}
		// A gateway-confirmed success outranks an earlier failure
		// (e.g. a frontend-reported abandonment the user then
		// completed).
		return ReconcileApplyPaid
	default: // pending
		if outcome == models.PaymentOutcomePaid {
			if source == models.ReconcileSourceFrontendReport {
				return ReconcileDropUntrusted
			}
			return ReconcileApplyPaid
		}
		return ReconcileApplyFailed
	}
}

// ReconcilePayment applies an external payment outcome to an order exactly
// once. Safe under at-least-once delivery: the order row is locked for the
// whole unit of work, the idempotency decision is taken inside the lock,
// and the order update, coupon usage and points usage commit atomically.
// Different orders reconcile fully in parallel.
func ReconcilePayment(orderID uint, extTransID, outcome, source, rawPayload string) error {
	db := config.DB
	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("OrderItems").
		Where("id = ?", orderID).First(&order).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("order %d not found for reconciliation: %w", orderID, err)
	}

	action := PlanReconcile(&order, extTransID, outcome, source)

	switch action {
	case ReconcileNoop:
		tx.Rollback()
		LogInfo("Reconcile no-op for order ID: %d, transaction %s already applied", orderID, extTransID)
		return nil

	case ReconcileDropConflict:
		tx.Rollback()
		LogInfo("Reconcile conflict dropped for order ID: %d: %s/%s against paymentStatus=%s (txn %s)",
			orderID, outcome, source, order.PaymentStatus, extTransID)
		return nil

	case ReconcileDropUntrusted:
		tx.Rollback()
		LogInfo("Dropped self-reported %s for order ID: %d; awaiting gateway confirmation", outcome, orderID)
		return nil

	case ReconcileApplyPaid:
		oldStatus := order.Status
		if err := applyPaid(tx, &order, extTransID); err != nil {
			tx.Rollback()
			return err
		}
		markTransactionProcessed(tx, order.ID, extTransID, models.PaymentStatusPaid, rawPayload)
		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit reconciliation: %w", err)
		}
		if order.Status != oldStatus {
			PublishOrderStatusEvent(OrderStatusEvent{
				OrderID:   order.ID,
				UserID:    order.UserID,
				OrderCode: order.OrderCode,
				OldStatus: oldStatus,
				NewStatus: order.Status,
			})
		}
		LogInfo("Reconciled order ID: %d as PAID (txn %s, source %s)", orderID, extTransID, source)
		return nil

	default: // ReconcileApplyFailed
		oldStatus := order.Status
		if err := applyFailed(tx, &order, extTransID); err != nil {
			tx.Rollback()
			return err
		}
		markTransactionProcessed(tx, order.ID, extTransID, models.PaymentStatusFailed, rawPayload)
		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit reconciliation: %w", err)
		}
		if order.Status != oldStatus {
			PublishOrderStatusEvent(OrderStatusEvent{
				OrderID:   order.ID,
				UserID:    order.UserID,
				OrderCode: order.OrderCode,
				OldStatus: oldStatus,
				NewStatus: order.Status,
			})
		}
		LogInfo("Reconciled order ID: %d as FAILED (txn %s, source %s)", orderID, extTransID, source)
		return nil
	}
}

// applyPaid records the payment and confirms the deferred discount ledger
// writes inside the caller's transaction.
func applyPaid(tx *gorm.DB, order *models.Order, extTransID string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"payment_status":         models.PaymentStatusPaid,
		"payment_time":           now,
		"payment_transaction_id": extTransID,
	}
	if order.Status == models.OrderStatusPending &&
		models.CanTransition(order.Status, models.OrderStatusProcessing, models.RoleSystem) {
		updates["status"] = models.OrderStatusProcessing
		order.Status = models.OrderStatusProcessing
	}
	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update order %d: %w", order.ID, err)
	}
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentTransactionID = extTransID
	order.PaymentTime = &now

	if err := confirmCouponUsage(tx, order); err != nil {
		// The payment is authoritative; an exhausted cap surfaces as an
		// operational alert, never as a blocked reconciliation. The
		// compare-and-increment above guarantees used_count stays within
		// its cap either way.
		if err == ErrCouponExhausted {
			LogError("ALERT: coupon %s exhausted at confirmation time for paid order ID: %d; no usage recorded, manual follow-up required",
				order.CouponCode, order.ID)
		} else {
			return err
		}
	}

	if err := confirmPointsUsage(tx, order); err != nil {
		if err == ErrInsufficientPoints {
			LogError("ALERT: points balance short at confirmation time for paid order ID: %d (user %d, %d points); no debit recorded, manual follow-up required",
				order.ID, order.UserID, order.PointsUsed)
		} else {
			return err
		}
	}

	for _, item := range order.OrderItems {
		if err := tx.Model(&models.Food{}).Where("id = ?", item.FoodID).
			UpdateColumn("sold_count", gorm.Expr("sold_count + ?", item.Quantity)).Error; err != nil {
			return fmt.Errorf("failed to update sold count for food %d: %w", item.FoodID, err)
		}
	}

	return nil
}

// ConfirmDiscountLedger confirms both discount legs inside the caller's
// transaction. Used by the cash-on-delivery placement path, where there is
// no later gateway confirmation: unlike a paid reconciliation, a failing
// leg here fails the whole placement so the user gets a clean rejection.
func ConfirmDiscountLedger(tx *gorm.DB, order *models.Order) error {
	if err := confirmCouponUsage(tx, order); err != nil {
		return err
	}
	return confirmPointsUsage(tx, order)
}

// confirmCouponUsage writes the usage ledger row and increments the
// coupon's used_count with a conditional update so the cap can never be
// exceeded by racing confirmations.
func confirmCouponUsage(tx *gorm.DB, order *models.Order) error {
	if order.CouponCode == "" {
		return nil
	}

	var coupon models.Coupon
	if err := tx.Where("code = ?", order.CouponCode).First(&coupon).Error; err != nil {
		return fmt.Errorf("coupon %s not found at confirmation: %w", order.CouponCode, err)
	}

	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", coupon.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponExhausted
	}

	usage := models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         order.UserID,
		OrderID:        order.ID,
		DiscountAmount: order.CouponDiscount,
		UsedAt:         time.Now(),
	}
	if err := tx.Create(&usage).Error; err != nil {
		return fmt.Errorf("failed to record coupon usage for order %d: %w", order.ID, err)
	}
	return nil
}

// confirmPointsUsage debits the reserved points and writes the USE ledger
// entry.
func confirmPointsUsage(tx *gorm.DB, order *models.Order) error {
	if order.PointsUsed <= 0 {
		return nil
	}
	if err := DebitPoints(tx, order.UserID, order.PointsUsed); err != nil {
		return err
	}
	orderID := order.ID
	return CreatePointHistory(tx, order.UserID, -order.PointsUsed, models.PointTypeUse,
		fmt.Sprintf("Points used on order %s", order.OrderCode), &orderID,
		fmt.Sprintf("ORDER-%d", order.ID))
}

// applyFailed marks the payment failed, cancels a still pending order and
// restores its stock. The discount ledger was never written, so there is
// nothing to roll back.
func applyFailed(tx *gorm.DB, order *models.Order, extTransID string) error {
	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusFailed,
	}
	if order.Status == models.OrderStatusPending &&
		models.CanTransition(order.Status, models.OrderStatusCancelled, models.RoleSystem) {
		updates["status"] = models.OrderStatusCancelled
		updates["cancellation_reason"] = "Payment failed"
		order.Status = models.OrderStatusCancelled

		for _, item := range order.OrderItems {
			if err := tx.Model(&models.Food{}).Where("id = ?", item.FoodID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to restore stock for food %d: %w", item.FoodID, err)
			}
		}
	}
	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update order %d: %w", order.ID, err)
	}
	order.PaymentStatus = models.PaymentStatusFailed
	return nil
}

// markTransactionProcessed stamps the audit record for the app transaction.
// Best-effort: a missing audit row is logged, not fatal.
func markTransactionProcessed(tx *gorm.DB, orderID uint, extTransID, status, rawPayload string) {
	now := time.Now()
	updates := map[string]interface{}{
		"ext_trans_id": extTransID,
		"status":       status,
		"processed_at": now,
	}
	if rawPayload != "" {
		updates["callback_payload"] = rawPayload
	}
	res := tx.Model(&models.PaymentTransaction{}).Where("order_id = ?", orderID).Updates(updates)
	if res.Error != nil || res.RowsAffected == 0 {
		LogDebug("No payment transaction audit row updated for order ID: %d", orderID)
	}
}

// ReverseConfirmedLedger undoes the confirmed coupon/points effects of a
// paid order that an admin cancelled. Best-effort by design: a failed
// reversal is surfaced as an operational alert and never blocks the
// cancellation itself.
func ReverseConfirmedLedger(order *models.Order) {
	db := config.DB

	if order.CouponCode != "" {
		var coupon models.Coupon
		if err := db.Where("code = ?", order.CouponCode).First(&coupon).Error; err != nil {
			LogError("ALERT: failed to load coupon %s for reversal of order ID: %d: %v", order.CouponCode, order.ID, err)
		} else {
			res := db.Where("coupon_id = ? AND order_id = ?", coupon.ID, order.ID).Delete(&models.CouponUsage{})
			if res.Error != nil {
				LogError("ALERT: failed to void coupon usage for order ID: %d: %v", order.ID, res.Error)
			} else if res.RowsAffected > 0 {
				if err := db.Model(&models.Coupon{}).
					Where("id = ? AND used_count > 0", coupon.ID).
					UpdateColumn("used_count", gorm.Expr("used_count - ?", 1)).Error; err != nil {
					LogError("ALERT: failed to decrement used_count for coupon %s: %v", order.CouponCode, err)
				}
			}
		}
	}

	if order.PointsUsed > 0 {
		if err := CreditPoints(db, order.UserID, order.PointsUsed); err != nil {
			LogError("ALERT: failed to refund %d points for order ID: %d: %v", order.PointsUsed, order.ID, err)
			return
		}
		orderID := order.ID
		if err := CreatePointHistory(db, order.UserID, order.PointsUsed, models.PointTypeRefund,
			fmt.Sprintf("Points refunded for cancelled order %s", order.OrderCode), &orderID,
			fmt.Sprintf("REFUND-ORDER-%d", order.ID)); err != nil {
			LogError("ALERT: failed to record points refund for order ID: %d: %v", order.ID, err)
		}
	}
}
