package controllers

import (
	"strconv"
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder lets the user cancel their own order while it is still
// pending payment and within the cancellation window. Stock goes back;
// there is no discount ledger to reverse because nothing was confirmed yet.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order id", nil)
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", tx.Error.Error())
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", id, user.ID).First(&order).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if !models.CanTransition(order.Status, models.OrderStatusCancelled, models.RoleUser) {
		tx.Rollback()
		utils.LogInfo("User %d attempted invalid cancel of order %d in status %s", user.ID, order.ID, order.Status)
		utils.Conflict(c, "Order can no longer be cancelled", gin.H{"status": order.Status})
		return
	}

	if time.Since(order.CreatedAt) > utils.UserCancelWindowMinutes*time.Minute {
		tx.Rollback()
		utils.Conflict(c, "Cancellation window has passed", nil)
		return
	}

	reason := utils.SanitizeString(req.Reason)
	if reason == "" {
		reason = "Cancelled by customer"
	}
	oldStatus := order.Status

	if err := tx.Model(&order).Updates(map[string]interface{}{
		"status":              models.OrderStatusCancelled,
		"cancellation_reason": reason,
	}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to cancel order", err.Error())
		return
	}

	for _, item := range order.OrderItems {
		if err := tx.Model(&models.Food{}).Where("id = ?", item.FoodID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to restore stock", err.Error())
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel order", err.Error())
		return
	}

	utils.LogInfo("Order %s cancelled by user %d", order.OrderCode, user.ID)
	utils.PublishOrderStatusEvent(utils.OrderStatusEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		OrderCode: order.OrderCode,
		OldStatus: oldStatus,
		NewStatus: models.OrderStatusCancelled,
	})

	utils.Success(c, "Order cancelled successfully", gin.H{"order_code": order.OrderCode})
}
