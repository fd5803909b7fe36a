package controllers

import (
	"strconv"
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

type CouponRequest struct {
	Code           string    `json:"code" binding:"required"`
	Type           string    `json:"type" binding:"required"`
	Value          int64     `json:"value" binding:"required"`
	MinOrderAmount int64     `json:"min_order_amount"`
	MaxDiscount    int64     `json:"max_discount"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
	UsageLimit     int       `json:"usage_limit"`
	PerUserLimit   int       `json:"per_user_limit"`
	Visibility     string    `json:"visibility"`
	CategoryID     *uint     `json:"category_id"`
	AllowedUserIDs []uint    `json:"allowed_user_ids"`
	Active         *bool     `json:"active"`
}

// ListAvailableCoupons shows the public coupons a user could apply right
// now. Private coupons never appear here even for allow-listed users; they
// are distributed out of band.
func ListAvailableCoupons(c *gin.Context) {
	utils.LogInfo("ListAvailableCoupons called")

	now := time.Now()
	var coupons []models.Coupon
	if err := config.DB.
		Where("active = ? AND visibility = ? AND start_date <= ? AND end_date >= ?",
			true, models.CouponVisibilityPublic, now, now).
		Where("usage_limit = 0 OR used_count < usage_limit").
		Order("end_date ASC").Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", err.Error())
		return
	}

	utils.Success(c, "Coupons retrieved successfully", gin.H{"coupons": coupons})
}

func AdminListCoupons(c *gin.Context) {
	utils.LogInfo("AdminListCoupons called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Coupon{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch coupons", err.Error())
		return
	}

	var coupons []models.Coupon
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&coupons).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch coupons", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Coupons retrieved successfully", gin.H{"coupons": coupons}, total, pagination.Page, pagination.Limit)
}

func CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Type != models.CouponTypePercent && req.Type != models.CouponTypeAmount {
		utils.BadRequest(c, "Type must be percent or amount", nil)
		return
	}
	if err := utils.ValidateCouponValue(req.Type, req.Value); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}
	if !req.EndDate.After(req.StartDate) {
		utils.BadRequest(c, "End date must be after start date", nil)
		return
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.CouponVisibilityPublic
	}
	if visibility != models.CouponVisibilityPublic && visibility != models.CouponVisibilityPrivate {
		utils.BadRequest(c, "Visibility must be public or private", nil)
		return
	}

	coupon := models.Coupon{
		Code:           utils.SanitizeString(req.Code),
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		UsageLimit:     req.UsageLimit,
		PerUserLimit:   req.PerUserLimit,
		Visibility:     visibility,
		CategoryID:     req.CategoryID,
		Active:         true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	tx := config.DB.Begin()
	if err := tx.Create(&coupon).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create coupon: %v", err)
		utils.Conflict(c, "Coupon code already exists", err.Error())
		return
	}
	for _, userID := range req.AllowedUserIDs {
		if err := tx.Create(&models.CouponAllowedUser{CouponID: coupon.ID, UserID: userID}).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to create coupon allow-list", err.Error())
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to create coupon", err.Error())
		return
	}

	utils.LogInfo("Coupon %s created", coupon.Code)
	utils.Created(c, "Coupon created successfully", gin.H{"coupon": coupon})
}

func UpdateCoupon(c *gin.Context) {
	utils.LogInfo("UpdateCoupon called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon id", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, id).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if err := utils.ValidateCouponValue(req.Type, req.Value); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	updates := map[string]interface{}{
		"type":             req.Type,
		"value":            req.Value,
		"min_order_amount": req.MinOrderAmount,
		"max_discount":     req.MaxDiscount,
		"start_date":       req.StartDate,
		"end_date":         req.EndDate,
		"usage_limit":      req.UsageLimit,
		"per_user_limit":   req.PerUserLimit,
		"category_id":      req.CategoryID,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := config.DB.Model(&coupon).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to update coupon", err.Error())
		return
	}

	utils.Success(c, "Coupon updated successfully", gin.H{"coupon": coupon})
}

// DeleteCoupon soft-deletes. Usage ledger rows survive so past orders keep
// their audit trail.
func DeleteCoupon(c *gin.Context) {
	utils.LogInfo("DeleteCoupon called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon id", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, id).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	if err := config.DB.Delete(&coupon).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete coupon", err.Error())
		return
	}

	utils.Success(c, "Coupon deleted successfully", nil)
}
