package controllers

import (
	"strconv"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func actorRole(c *gin.Context) string {
	if role, exists := c.Get("actor_role"); exists {
		if s, ok := role.(string); ok {
			return s
		}
	}
	return models.RoleUser
}

// AdminListOrders lists all orders with optional status and payment-status
// filters. Shared by the staff and admin route groups.
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.BadRequest(c, "Invalid status filter", nil)
			return
		}
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if search := utils.SanitizeString(c.Query("search")); search != "" {
		query = query.Where("order_code ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	summaries := make([]gin.H, 0, len(orders))
	for i := range orders {
		s := orderSummary(&orders[i])
		s["user_id"] = orders[i].UserID
		summaries = append(summaries, s)
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": summaries}, total, pagination.Page, pagination.Limit)
}

// UpdateOrderStatus moves an order through the state machine on behalf of a
// staff or admin actor. The transition table is the single authority on
// what is allowed; completing an order awards loyalty points, cancelling
// one restores stock and, for paid orders, reverses the discount ledger.
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order id", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.BadRequest(c, "Unknown status", gin.H{"status": req.Status})
		return
	}

	role := actorRole(c)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", tx.Error.Error())
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("OrderItems").
		First(&order, id).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	oldStatus := order.Status
	if !models.CanTransition(oldStatus, req.Status, role) {
		tx.Rollback()
		utils.LogError("Invalid transition %s -> %s by %s for order %d", oldStatus, req.Status, role, order.ID)
		utils.Conflict(c, "Invalid status transition", gin.H{
			"from": oldStatus,
			"to":   req.Status,
			"role": role,
		})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.OrderStatusCancelled {
		reason := utils.SanitizeString(req.Reason)
		if reason == "" {
			reason = "Cancelled by restaurant"
		}
		updates["cancellation_reason"] = reason
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update order", err.Error())
		return
	}

	switch req.Status {
	case models.OrderStatusCompleted:
		// Cash on delivery settles at the door.
		if order.PaymentMethod == models.PaymentMethodCOD && order.PaymentStatus == models.PaymentStatusPending {
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
				tx.Rollback()
				utils.InternalServerError(c, "Failed to update order", err.Error())
				return
			}
			order.PaymentStatus = models.PaymentStatusPaid
		}
		if err := utils.AwardOrderPoints(tx, &order); err != nil {
			tx.Rollback()
			utils.LogError("Failed to award points for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to award points", err.Error())
			return
		}
	case models.OrderStatusCancelled:
		for _, item := range order.OrderItems {
			if err := tx.Model(&models.Food{}).Where("id = ?", item.FoodID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				tx.Rollback()
				utils.InternalServerError(c, "Failed to restore stock", err.Error())
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to update order", err.Error())
		return
	}

	// A paid order cancelled by an admin has confirmed ledger entries to
	// unwind. Best-effort after commit; failures alert, never block.
	if req.Status == models.OrderStatusCancelled && order.PaymentStatus == models.PaymentStatusPaid {
		order.Status = models.OrderStatusCancelled
		utils.ReverseConfirmedLedger(&order)
	}

	utils.LogInfo("Order %s moved %s -> %s by %s", order.OrderCode, oldStatus, req.Status, role)
	utils.PublishOrderStatusEvent(utils.OrderStatusEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		OrderCode: order.OrderCode,
		OldStatus: oldStatus,
		NewStatus: req.Status,
	})

	utils.Success(c, "Order status updated", gin.H{
		"order_code": order.OrderCode,
		"from":       oldStatus,
		"to":         req.Status,
	})
}
