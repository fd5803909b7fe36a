package controllers

import (
	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

func ListNotifications(c *gin.Context) {
	utils.LogInfo("ListNotifications called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications", err.Error())
		return
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Notifications retrieved", gin.H{"notifications": notifications}, total, pagination.Page, pagination.Limit)
}

func MarkNotificationsRead(c *gin.Context) {
	utils.LogInfo("MarkNotificationsRead called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Update("read", true).Error; err != nil {
		utils.InternalServerError(c, "Failed to update notifications", err.Error())
		return
	}

	utils.Success(c, "Notifications marked as read", nil)
}
