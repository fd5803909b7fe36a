package controllers

import (
	"strconv"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

func orderSummary(order *models.Order) gin.H {
	return gin.H{
		"id":             order.ID,
		"order_code":     order.OrderCode,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
		"payment_method": order.PaymentMethod,
		"final_amount":   order.FinalAmount,
		"created_at":     order.CreatedAt,
	}
}

func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.BadRequest(c, "Invalid status filter", nil)
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	summaries := make([]gin.H, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, orderSummary(&orders[i]))
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": summaries}, total, pagination.Page, pagination.Limit)
}

func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")

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

	var order models.Order
	if err := config.DB.Preload("OrderItems.Food").Preload("Address").
		Where("id = ? AND user_id = ?", id, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, gin.H{
			"food_id":  item.FoodID,
			"name":     item.Food.Name,
			"quantity": item.Quantity,
			"price":    item.Price,
			"total":    item.Total,
		})
	}

	detail := orderSummary(&order)
	detail["items"] = items
	detail["subtotal_amount"] = order.SubtotalAmount
	detail["shipping_fee"] = order.ShippingFee
	detail["total_before_discount"] = order.TotalBeforeDiscount
	detail["coupon_code"] = order.CouponCode
	detail["coupon_discount"] = order.CouponDiscount
	detail["points_used"] = order.PointsUsed
	detail["points_discount"] = order.PointsDiscount
	detail["payment_time"] = order.PaymentTime
	detail["cancellation_reason"] = order.CancellationReason
	detail["address"] = order.Address

	utils.Success(c, "Order retrieved successfully", gin.H{"order": detail})
}
