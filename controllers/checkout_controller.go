package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/gateway"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutPreviewRequest struct {
	CouponCode  string `json:"coupon_code"`
	PointsToUse int64  `json:"points_to_use"`
}

type PlaceOrderRequest struct {
	AddressID     uint   `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	CouponCode    string `json:"coupon_code"`
	PointsToUse   int64  `json:"points_to_use"`
}

// generateOrderCode builds the human-readable business key, e.g.
// FN-20260901-3F2A9C.
func generateOrderCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("FN-%s-%s", time.Now().Format("20060102"), suffix)
}

// GetCheckoutSummary previews the payable amount for the current cart with
// an optional coupon and points. Pure preview: nothing is reserved or
// written.
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req CheckoutPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	details, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	if len(details.OrderItems) == 0 {
		utils.BadRequest(c, "Cart is empty", nil)
		return
	}

	result, err := utils.ApplyDiscount(user.ID, details.Subtotal, details.ShippingFee, details.OrderItems, req.CouponCode, req.PointsToUse)
	if err != nil {
		utils.LogError("Discount evaluation failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to evaluate discounts", err.Error())
		return
	}

	pointsBalance, _ := utils.GetPointsBalance(user.ID)

	items := make([]gin.H, 0, len(details.OrderItems))
	for _, item := range details.OrderItems {
		items = append(items, gin.H{
			"food_id":  item.FoodID,
			"name":     item.Food.Name,
			"quantity": item.Quantity,
			"price":    item.Price,
			"total":    item.Total,
		})
	}

	utils.LogInfo("Checkout summary prepared for user %d", user.ID)
	utils.Success(c, "Checkout summary retrieved successfully", gin.H{
		"items":                 items,
		"subtotal":              details.Subtotal,
		"shipping_fee":          details.ShippingFee,
		"total_before_discount": details.Subtotal + details.ShippingFee,
		"discount":              result,
		"points_balance":        pointsBalance,
		"can_checkout":          result.Success,
	})
}

// PlaceOrder creates a pending order from the cart. Stock is decremented
// here so the kitchen can rely on it; the discount ledger is written only
// when payment is confirmed, except for cash on delivery which confirms at
// placement.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	switch req.PaymentMethod {
	case models.PaymentMethodCOD, models.GatewayZaloPay, models.GatewayRazorpay:
	default:
		utils.BadRequest(c, "Unsupported payment method", gin.H{"payment_method": req.PaymentMethod})
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, user.ID).First(&address).Error; err != nil {
		utils.BadRequest(c, "Address not found", nil)
		return
	}

	details, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	if len(details.OrderItems) == 0 {
		utils.BadRequest(c, "Cart is empty", nil)
		return
	}

	result, err := utils.ApplyDiscount(user.ID, details.Subtotal, details.ShippingFee, details.OrderItems, req.CouponCode, req.PointsToUse)
	if err != nil {
		utils.InternalServerError(c, "Failed to evaluate discounts", err.Error())
		return
	}
	if !result.Success {
		utils.LogInfo("Discount rejected for user %d: %s", user.ID, result.FailureReason)
		utils.BadRequest(c, "Discount could not be applied", gin.H{"reason": result.FailureReason})
		return
	}

	if req.PaymentMethod == models.PaymentMethodCOD && result.FinalAmount > utils.CODLimit {
		utils.BadRequest(c, "Order total exceeds the cash on delivery limit", gin.H{"limit": utils.CODLimit})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", tx.Error.Error())
		return
	}

	// Conditional decrement so two concurrent checkouts can never oversell.
	for _, item := range details.OrderItems {
		res := tx.Model(&models.Food{}).
			Where("id = ? AND stock >= ?", item.FoodID, item.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
		if res.Error != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to reserve stock", res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			utils.LogError("Stock ran out for food %d during checkout for user %d", item.FoodID, user.ID)
			utils.BadRequest(c, "An item in your cart is out of stock", gin.H{"food_id": item.FoodID})
			return
		}
	}

	order := models.Order{
		OrderCode:           generateOrderCode(),
		UserID:              user.ID,
		AddressID:           address.ID,
		SubtotalAmount:      details.Subtotal,
		ShippingFee:         details.ShippingFee,
		TotalBeforeDiscount: details.Subtotal + details.ShippingFee,
		CouponCode:          req.CouponCode,
		CouponDiscount:      result.CouponDiscount,
		PointsUsed:          req.PointsToUse,
		PointsDiscount:      result.PointsDiscount,
		FinalAmount:         result.FinalAmount,
		PaymentMethod:       req.PaymentMethod,
		Status:              models.OrderStatusPending,
		PaymentStatus:       models.PaymentStatusPending,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}

	for _, item := range details.OrderItems {
		orderItem := models.OrderItem{
			OrderID:  order.ID,
			FoodID:   item.FoodID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Total,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to create order items", err.Error())
			return
		}
		orderItem.Food = item.Food // in-memory only, for the gateway item list
		order.OrderItems = append(order.OrderItems, orderItem)
	}

	// Cash on delivery has no later gateway confirmation, so the discount
	// ledger is confirmed now and the order goes straight to the kitchen.
	if req.PaymentMethod == models.PaymentMethodCOD {
		if err := utils.ConfirmDiscountLedger(tx, &order); err != nil {
			tx.Rollback()
			utils.LogError("Ledger confirmation failed for COD order of user %d: %v", user.ID, err)
			if err == utils.ErrCouponExhausted {
				utils.Conflict(c, "Coupon is no longer available", gin.H{"reason": utils.ReasonCouponExhausted})
				return
			}
			if err == utils.ErrInsufficientPoints {
				utils.Conflict(c, "Not enough points", gin.H{"reason": utils.ReasonInsufficientPoints})
				return
			}
			utils.InternalServerError(c, "Failed to place order", err.Error())
			return
		}
		if models.CanTransition(order.Status, models.OrderStatusProcessing, models.RoleSystem) {
			if err := tx.Model(&order).Update("status", models.OrderStatusProcessing).Error; err != nil {
				tx.Rollback()
				utils.InternalServerError(c, "Failed to place order", err.Error())
				return
			}
			order.Status = models.OrderStatusProcessing
		}
		for _, item := range order.OrderItems {
			if err := tx.Model(&models.Food{}).Where("id = ?", item.FoodID).
				UpdateColumn("sold_count", gorm.Expr("sold_count + ?", item.Quantity)).Error; err != nil {
				tx.Rollback()
				utils.InternalServerError(c, "Failed to place order", err.Error())
				return
			}
		}
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Cart{}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to clear cart", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to place order", err.Error())
		return
	}

	utils.LogInfo("Order %s placed for user %d, method %s, final amount %d", order.OrderCode, user.ID, order.PaymentMethod, order.FinalAmount)

	if order.Status == models.OrderStatusProcessing {
		utils.PublishOrderStatusEvent(utils.OrderStatusEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			OrderCode: order.OrderCode,
			OldStatus: models.OrderStatusPending,
			NewStatus: order.Status,
		})
	}

	response := gin.H{
		"order": gin.H{
			"id":           order.ID,
			"order_code":   order.OrderCode,
			"final_amount": order.FinalAmount,
			"status":       order.Status,
		},
	}

	// Gateway methods get a redirect URL. A gateway outage is not fatal:
	// the order stays pending and the payment can be re-initiated.
	if provider := gateway.ForMethod(order.PaymentMethod); provider != nil {
		created, err := initiateGatewayPayment(provider, &order, &user)
		if err != nil {
			utils.LogError("Payment initiation failed for order %s: %v", order.OrderCode, err)
			response["payment_url"] = nil
			response["payment_error"] = "Payment initiation failed, please retry"
		} else {
			response["payment_url"] = created.RedirectURL
			response["app_trans_id"] = created.AppTransID
		}
	}

	utils.Created(c, "Order placed successfully", response)
}
