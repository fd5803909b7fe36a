package controllers

import (
	"strconv"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

func AdminListUsers(c *gin.Context) {
	utils.LogInfo("AdminListUsers called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.User{})

	if search := utils.SanitizeString(c.Query("search")); search != "" {
		query = query.Where("email ILIKE ? OR username ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	summaries := make([]gin.H, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, gin.H{
			"id":         u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"is_blocked": u.IsBlocked,
			"is_staff":   u.IsStaff,
			"created_at": u.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Users retrieved successfully", gin.H{"users": summaries}, total, pagination.Page, pagination.Limit)
}

func ToggleUserBlock(c *gin.Context) {
	utils.LogInfo("ToggleUserBlock called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user id", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("is_blocked", !user.IsBlocked).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}

	utils.LogInfo("User %d blocked=%v", user.ID, !user.IsBlocked)
	utils.Success(c, "User updated successfully", gin.H{"id": user.ID, "is_blocked": !user.IsBlocked})
}

// ToggleUserStaff grants or revokes the kitchen-staff role.
func ToggleUserStaff(c *gin.Context) {
	utils.LogInfo("ToggleUserStaff called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user id", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("is_staff", !user.IsStaff).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}

	utils.Success(c, "User updated successfully", gin.H{"id": user.ID, "is_staff": !user.IsStaff})
}
