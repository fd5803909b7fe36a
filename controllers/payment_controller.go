package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/gateway"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

type InitiatePaymentRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

type PaymentReportRequest struct {
	AppTransID string `json:"app_trans_id" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

type RazorpayVerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// initiateGatewayPayment creates the payment at the gateway and records the
// outbound request for audit. The app transaction id is deterministic per
// order and day, so repeating this for a pending order re-issues the same
// transaction instead of creating a second one.
func initiateGatewayPayment(provider gateway.Provider, order *models.Order, user *models.User) (*gateway.CreateResult, error) {
	created, err := provider.CreatePayment(order, user, fmt.Sprintf("FoodNest order %s", order.OrderCode))
	if err != nil {
		return nil, err
	}

	audit := models.PaymentTransaction{
		OrderID:        order.ID,
		Gateway:        provider.Name(),
		AppTransID:     created.AppTransID,
		Amount:         order.FinalAmount,
		RequestPayload: created.RawRequest,
		Status:         models.PaymentStatusPending,
	}
	if err := config.DB.Where("app_trans_id = ?", created.AppTransID).
		FirstOrCreate(&audit).Error; err != nil {
		// Audit row failures never block the payment itself.
		utils.LogError("Failed to record payment transaction for order %d: %v", order.ID, err)
	}

	return created, nil
}

// InitiatePayment (re)issues the payment URL for a pending order. Used when
// the first redirect was abandoned or the gateway was briefly down at
// placement.
func InitiatePayment(c *gin.Context) {
	utils.LogInfo("InitiatePayment called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems.Food").
		Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusPending || order.PaymentStatus != models.PaymentStatusPending {
		utils.Conflict(c, "Order is not awaiting payment", gin.H{
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
		})
		return
	}

	provider := gateway.ForMethod(order.PaymentMethod)
	if provider == nil {
		utils.BadRequest(c, "Order does not use an online payment method", nil)
		return
	}

	created, err := initiateGatewayPayment(provider, &order, &user)
	if err != nil {
		utils.LogError("Payment initiation failed for order %s: %v", order.OrderCode, err)
		utils.Error(c, http.StatusBadGateway, "Payment gateway unavailable, please retry", nil)
		return
	}

	utils.LogInfo("Payment re-issued for order %s, app_trans_id %s", order.OrderCode, created.AppTransID)
	utils.Success(c, "Payment initiated successfully", gin.H{
		"payment_url":  created.RedirectURL,
		"app_trans_id": created.AppTransID,
		"amount":       order.FinalAmount,
	})
}

// ZaloPayCallback handles the gateway's server-to-server notification. The
// response body is always the literal "OK": any other body makes the
// gateway retry for days, and a failed callback is recovered through the
// query endpoint anyway.
func ZaloPayCallback(c *gin.Context) {
	utils.LogInfo("ZaloPayCallback called")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.LogError("Failed to read callback body: %v", err)
		c.String(http.StatusOK, "OK")
		return
	}

	z := gateway.NewZaloPay()
	data, err := z.ParseCallback(body)
	if err != nil {
		utils.LogError("Rejected ZaloPay callback: %v", err)
		c.String(http.StatusOK, "OK")
		return
	}

	orderID, err := gateway.OrderIDFromAppTransID(data.AppTransID)
	if err != nil {
		utils.LogError("Callback carries malformed app_trans_id %s: %v", data.AppTransID, err)
		c.String(http.StatusOK, "OK")
		return
	}

	extTransID := strconv.FormatInt(data.ZpTransID, 10)
	if err := utils.ReconcilePayment(orderID, extTransID, models.PaymentOutcomePaid, models.ReconcileSourceCallback, string(body)); err != nil {
		utils.LogError("Callback reconciliation failed for order %d: %v", orderID, err)
	}

	c.String(http.StatusOK, "OK")
}

// QueryZaloPayStatus polls the gateway for a transaction's authoritative
// status and reconciles the order with the answer. Manual fallback for the
// no-callback case.
func QueryZaloPayStatus(c *gin.Context) {
	utils.LogInfo("QueryZaloPayStatus called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	appTransID := c.Param("appTransId")
	orderID, err := gateway.OrderIDFromAppTransID(appTransID)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction id", nil)
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	z := gateway.NewZaloPay()
	result, err := z.QueryTransaction(appTransID)
	if err != nil {
		utils.LogError("Gateway query failed for %s: %v", appTransID, err)
		utils.Error(c, http.StatusBadGateway, "Payment gateway unavailable, please retry", nil)
		return
	}

	extTransID := strconv.FormatInt(result.ZpTransID, 10)
	switch {
	case result.Paid():
		if err := utils.ReconcilePayment(orderID, extTransID, models.PaymentOutcomePaid, models.ReconcileSourceQuery, ""); err != nil {
			utils.LogError("Query reconciliation failed for order %d: %v", orderID, err)
			utils.InternalServerError(c, "Failed to reconcile payment", nil)
			return
		}
	case result.Failed():
		if err := utils.ReconcilePayment(orderID, extTransID, models.PaymentOutcomeFailed, models.ReconcileSourceQuery, ""); err != nil {
			utils.LogError("Query reconciliation failed for order %d: %v", orderID, err)
			utils.InternalServerError(c, "Failed to reconcile payment", nil)
			return
		}
	}

	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load order", err.Error())
		return
	}

	utils.Success(c, "Payment status retrieved", gin.H{
		"order_code":     order.OrderCode,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
		"is_processing":  result.IsProcessing,
	})
}

// ReportPaymentResult accepts the frontend's self-reported payment outcome.
// Only failure reports can have any effect, and even those are dropped when
// the order was already reconciled as paid.
func ReportPaymentResult(c *gin.Context) {
	utils.LogInfo("ReportPaymentResult called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req PaymentReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	outcome := req.Status
	if outcome == "SUCCESS" {
		outcome = models.PaymentOutcomePaid
	}
	if outcome != models.PaymentOutcomePaid && outcome != models.PaymentOutcomeFailed {
		utils.BadRequest(c, "Status must be SUCCESS or FAILED", nil)
		return
	}

	orderID, err := gateway.OrderIDFromAppTransID(req.AppTransID)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction id", nil)
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if err := utils.ReconcilePayment(orderID, "", outcome, models.ReconcileSourceFrontendReport, ""); err != nil {
		utils.LogError("Frontend report reconciliation failed for order %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to process report", nil)
		return
	}

	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load order", err.Error())
		return
	}

	utils.LogInfo("Frontend report %s recorded for order %d by user %d", outcome, orderID, user.ID)
	utils.Success(c, "Report received", gin.H{
		"order_code":     order.OrderCode,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
	})
}

// VerifyRazorpayPayment checks the checkout signature and reconciles the
// order as paid. The signature is computed over order id and payment id
// with the key secret, so a valid one can only come from the gateway.
func VerifyRazorpayPayment(c *gin.Context) {
	utils.LogInfo("VerifyRazorpayPayment called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req RazorpayVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	r := gateway.NewRazorpay()
	if !r.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		utils.LogError("Razorpay signature verification failed for user %d, order %s", user.ID, req.RazorpayOrderID)
		utils.BadRequest(c, "Payment verification failed", nil)
		return
	}

	var audit models.PaymentTransaction
	if err := config.DB.Where("app_trans_id = ?", req.RazorpayOrderID).First(&audit).Error; err != nil {
		utils.NotFound(c, "Payment transaction not found")
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", audit.OrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if err := utils.ReconcilePayment(order.ID, req.RazorpayPaymentID, models.PaymentOutcomePaid, models.ReconcileSourceCallback, ""); err != nil {
		utils.LogError("Razorpay reconciliation failed for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to reconcile payment", nil)
		return
	}

	utils.Success(c, "Payment verified successfully", gin.H{"order_code": order.OrderCode})
}

// GetPaymentMethods lists what the checkout UI can offer.
func GetPaymentMethods(c *gin.Context) {
	utils.Success(c, "Payment methods retrieved", gin.H{
		"methods": []gin.H{
			{"id": models.PaymentMethodCOD, "name": "Cash on Delivery", "limit": utils.CODLimit},
			{"id": models.GatewayZaloPay, "name": "ZaloPay"},
			{"id": models.GatewayRazorpay, "name": "Razorpay"},
		},
	})
}
