package controllers

import (
	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

func GetPoints(c *gin.Context) {
	utils.LogInfo("GetPoints called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	balance, err := utils.GetPointsBalance(user.ID)
	if err != nil {
		utils.LogError("Failed to get points balance for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get points balance", err.Error())
		return
	}

	utils.Success(c, "Points balance retrieved", gin.H{"balance": balance})
}

func GetPointsHistory(c *gin.Context) {
	utils.LogInfo("GetPointsHistory called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.PointHistory{}).Where("user_id = ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch points history", err.Error())
		return
	}

	var entries []models.PointHistory
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&entries).Error; err != nil {
		utils.LogError("Failed to fetch points history for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch points history", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Points history retrieved", gin.H{"entries": entries}, total, pagination.Page, pagination.Limit)
}
