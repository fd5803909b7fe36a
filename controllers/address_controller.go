package controllers

import (
	"strconv"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

type AddressRequest struct {
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	Ward       string `json:"ward"`
	District   string `json:"district" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

func ListAddresses(c *gin.Context) {
	utils.LogInfo("ListAddresses called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch addresses", err.Error())
		return
	}

	utils.Success(c, "Addresses retrieved successfully", gin.H{"addresses": addresses})
}

func AddAddress(c *gin.Context) {
	utils.LogInfo("AddAddress called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if ok, msg := utils.ValidatePhone(req.Phone); !ok {
		utils.ValidationError(c, msg, nil)
		return
	}

	address := models.Address{
		UserID:     user.ID,
		Line1:      utils.SanitizeString(req.Line1),
		Line2:      utils.SanitizeString(req.Line2),
		Ward:       utils.SanitizeString(req.Ward),
		District:   utils.SanitizeString(req.District),
		City:       utils.SanitizeString(req.City),
		PostalCode: utils.SanitizeString(req.PostalCode),
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	}

	tx := config.DB.Begin()
	if req.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to save address", err.Error())
			return
		}
	}
	if err := tx.Create(&address).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to save address", err.Error())
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to save address", err.Error())
		return
	}

	utils.Created(c, "Address added successfully", gin.H{"address": address})
}

func UpdateAddress(c *gin.Context) {
	utils.LogInfo("UpdateAddress called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address id", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if ok, msg := utils.ValidatePhone(req.Phone); !ok {
		utils.ValidationError(c, msg, nil)
		return
	}

	tx := config.DB.Begin()
	if req.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update address", err.Error())
			return
		}
	}
	if err := tx.Model(&address).Updates(map[string]interface{}{
		"line1":       utils.SanitizeString(req.Line1),
		"line2":       utils.SanitizeString(req.Line2),
		"ward":        utils.SanitizeString(req.Ward),
		"district":    utils.SanitizeString(req.District),
		"city":        utils.SanitizeString(req.City),
		"postal_code": utils.SanitizeString(req.PostalCode),
		"phone":       req.Phone,
		"is_default":  req.IsDefault,
	}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update address", err.Error())
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to update address", err.Error())
		return
	}

	utils.Success(c, "Address updated successfully", gin.H{"address": address})
}

func DeleteAddress(c *gin.Context) {
	utils.LogInfo("DeleteAddress called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address id", nil)
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Address{})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete address", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Address not found")
		return
	}

	utils.Success(c, "Address deleted successfully", nil)
}
