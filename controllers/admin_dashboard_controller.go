package controllers

import (
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

// AdminDashboard summarises today's operation: order counts per status,
// revenue, and the best selling dishes.
func AdminDashboard(c *gin.Context) {
	utils.LogInfo("AdminDashboard called")

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	statusCounts := make(map[string]int64)
	for _, status := range []string{
		models.OrderStatusPending, models.OrderStatusProcessing, models.OrderStatusConfirmed,
		models.OrderStatusDelivering, models.OrderStatusCompleted, models.OrderStatusCancelled,
	} {
		var count int64
		if err := config.DB.Model(&models.Order{}).
			Where("status = ? AND created_at >= ?", status, todayStart).
			Count(&count).Error; err != nil {
			utils.InternalServerError(c, "Failed to build dashboard", err.Error())
			return
		}
		statusCounts[status] = count
	}

	var revenue struct {
		Total int64
	}
	if err := config.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(final_amount), 0) as total").
		Where("payment_status = ? AND created_at >= ?", models.PaymentStatusPaid, todayStart).
		Scan(&revenue).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard", err.Error())
		return
	}

	var topDishes []struct {
		FoodID   uint   `json:"food_id"`
		Name     string `json:"name"`
		Quantity int64  `json:"quantity"`
	}
	if err := config.DB.Model(&models.OrderItem{}).
		Select("order_items.food_id, foods.name, SUM(order_items.quantity) as quantity").
		Joins("JOIN foods ON foods.id = order_items.food_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.status != ?", todayStart, models.OrderStatusCancelled).
		Group("order_items.food_id, foods.name").
		Order("quantity DESC").Limit(5).
		Scan(&topDishes).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard", err.Error())
		return
	}

	utils.Success(c, "Dashboard retrieved successfully", gin.H{
		"date":           todayStart.Format("2006-01-02"),
		"orders":         statusCounts,
		"revenue_today":  revenue.Total,
		"top_dishes":     topDishes,
		"pending_orders": statusCounts[models.OrderStatusPending] + statusCounts[models.OrderStatusProcessing],
	})
}
