package controllers

import (
	"strconv"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

type FoodRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock"`
	IsActive    *bool  `json:"is_active"`
	IsFeatured  *bool  `json:"is_featured"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreateFood(c *gin.Context) {
	utils.LogInfo("CreateFood called")

	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidatePrice(req.Price); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}
	if err := utils.ValidateStock(req.Stock); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}
	if err := utils.ValidateStringLength(req.Name, 2, 200); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.BadRequest(c, "Category not found", nil)
		return
	}

	food := models.Food{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if req.IsActive != nil {
		food.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		food.IsFeatured = *req.IsFeatured
	}

	if err := config.DB.Create(&food).Error; err != nil {
		utils.LogError("Failed to create food: %v", err)
		utils.InternalServerError(c, "Failed to create food", err.Error())
		return
	}

	utils.LogInfo("Food created successfully: %d", food.ID)
	utils.Created(c, "Food created successfully", gin.H{"food": food})
}

func UpdateFood(c *gin.Context) {
	utils.LogInfo("UpdateFood called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid food id", nil)
		return
	}

	var food models.Food
	if err := config.DB.First(&food, id).Error; err != nil {
		utils.NotFound(c, "Food not found")
		return
	}

	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidatePrice(req.Price); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}
	if err := utils.ValidateStock(req.Stock); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	updates := map[string]interface{}{
		"name":        utils.SanitizeString(req.Name),
		"description": utils.SanitizeString(req.Description),
		"price":       req.Price,
		"category_id": req.CategoryID,
		"image_url":   req.ImageURL,
		"stock":       req.Stock,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if err := config.DB.Model(&food).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update food %d: %v", food.ID, err)
		utils.InternalServerError(c, "Failed to update food", err.Error())
		return
	}

	utils.LogInfo("Food %d updated successfully", food.ID)
	utils.Success(c, "Food updated successfully", gin.H{"food": food})
}

// ToggleFoodBlock flips the blocked flag. A blocked dish disappears from the
// public menu but stays on past orders.
func ToggleFoodBlock(c *gin.Context) {
	utils.LogInfo("ToggleFoodBlock called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid food id", nil)
		return
	}

	var food models.Food
	if err := config.DB.First(&food, id).Error; err != nil {
		utils.NotFound(c, "Food not found")
		return
	}

	if err := config.DB.Model(&food).Update("blocked", !food.Blocked).Error; err != nil {
		utils.InternalServerError(c, "Failed to update food", err.Error())
		return
	}

	utils.LogInfo("Food %d blocked=%v", food.ID, !food.Blocked)
	utils.Success(c, "Food updated successfully", gin.H{"id": food.ID, "blocked": !food.Blocked})
}

func DeleteFood(c *gin.Context) {
	utils.LogInfo("DeleteFood called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid food id", nil)
		return
	}

	var food models.Food
	if err := config.DB.First(&food, id).Error; err != nil {
		utils.NotFound(c, "Food not found")
		return
	}

	if err := config.DB.Delete(&food).Error; err != nil {
		utils.LogError("Failed to delete food %d: %v", food.ID, err)
		utils.InternalServerError(c, "Failed to delete food", err.Error())
		return
	}

	utils.Success(c, "Food deleted successfully", nil)
}

func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStringLength(req.Name, 2, 100); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	category := models.Category{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.Conflict(c, "Category already exists", err.Error())
		return
	}

	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category id", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := config.DB.Model(&category).Updates(map[string]interface{}{
		"name":        utils.SanitizeString(req.Name),
		"description": utils.SanitizeString(req.Description),
	}).Error; err != nil {
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.Success(c, "Category updated successfully", gin.H{"category": category})
}

// ToggleCategoryBlock hides a whole category from the public menu.
func ToggleCategoryBlock(c *gin.Context) {
	utils.LogInfo("ToggleCategoryBlock called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category id", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	if err := config.DB.Model(&category).Update("blocked", !category.Blocked).Error; err != nil {
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.Success(c, "Category updated successfully", gin.H{"id": category.ID, "blocked": !category.Blocked})
}
