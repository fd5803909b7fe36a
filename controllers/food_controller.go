package controllers

import (
	"strconv"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

// ListFoods returns the public menu. Blocked dishes and dishes in blocked
// categories never appear here.
func ListFoods(c *gin.Context) {
	utils.LogInfo("ListFoods called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Food{}).
		Joins("JOIN categories ON categories.id = foods.category_id").
		Where("foods.blocked = ? AND foods.is_active = ? AND categories.blocked = ?", false, true, false)

	if search := utils.SanitizeString(c.Query("search")); search != "" {
		query = query.Where("foods.name ILIKE ?", "%"+search+"%")
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := strconv.Atoi(categoryID)
		if err != nil {
			utils.BadRequest(c, "Invalid category id", nil)
			return
		}
		query = query.Where("foods.category_id = ?", id)
	}

	switch c.DefaultQuery("sort", "newest") {
	case "price_asc":
		query = query.Order("foods.price ASC")
	case "price_desc":
		query = query.Order("foods.price DESC")
	case "popular":
		query = query.Order("foods.sold_count DESC")
	default:
		query = query.Order("foods.created_at DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count foods: %v", err)
		utils.InternalServerError(c, "Failed to fetch menu", err.Error())
		return
	}

	var foods []models.Food
	if err := query.Preload("Category").Offset(pagination.Offset).Limit(pagination.Limit).Find(&foods).Error; err != nil {
		utils.LogError("Failed to fetch foods: %v", err)
		utils.InternalServerError(c, "Failed to fetch menu", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Menu retrieved successfully", gin.H{"foods": foods}, total, pagination.Page, pagination.Limit)
}

func GetFoodDetails(c *gin.Context) {
	utils.LogInfo("GetFoodDetails called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid food id", nil)
		return
	}

	var food models.Food
	if err := config.DB.Preload("Category").First(&food, id).Error; err != nil {
		utils.NotFound(c, "Food not found")
		return
	}

	if food.Blocked || !food.IsActive || food.Category.Blocked {
		utils.NotFound(c, "Food not found")
		return
	}

	utils.Success(c, "Food retrieved successfully", gin.H{"food": food})
}

func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	var categories []models.Category
	if err := config.DB.Where("blocked = ?", false).Order("name ASC").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}
