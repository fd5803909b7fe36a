package controllers

import (
	"strconv"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddToCartRequest struct {
	FoodID   uint `json:"food_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

const maxQuantityPerItem = 10

func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	details, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart", err.Error())
		return
	}

	items := make([]gin.H, 0, len(details.OrderItems))
	for _, item := range details.OrderItems {
		items = append(items, gin.H{
			"food_id":   item.FoodID,
			"name":      item.Food.Name,
			"image_url": item.Food.ImageURL,
			"quantity":  item.Quantity,
			"price":     item.Price,
			"total":     item.Total,
		})
	}

	utils.Success(c, "Cart retrieved successfully", gin.H{
		"items":        items,
		"subtotal":     details.Subtotal,
		"shipping_fee": details.ShippingFee,
		"total":        details.Subtotal + details.ShippingFee,
	})
}

func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if req.Quantity < 1 || req.Quantity > maxQuantityPerItem {
		utils.BadRequest(c, "Quantity must be between 1 and 10", nil)
		return
	}

	var food models.Food
	if err := config.DB.Preload("Category").First(&food, req.FoodID).Error; err != nil {
		utils.NotFound(c, "Food not found")
		return
	}
	if food.Blocked || !food.IsActive || food.Category.Blocked {
		utils.BadRequest(c, "This item is not available", nil)
		return
	}

	var cartItem models.Cart
	err := config.DB.Where("user_id = ? AND food_id = ?", user.ID, req.FoodID).First(&cartItem).Error
	newQuantity := req.Quantity
	if err == nil {
		newQuantity = cartItem.Quantity + req.Quantity
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to check cart", err.Error())
		return
	}

	if newQuantity > maxQuantityPerItem {
		utils.BadRequest(c, "Quantity must be between 1 and 10", nil)
		return
	}
	if food.Stock < newQuantity {
		utils.LogError("Insufficient stock for food %d: have %d, want %d", food.ID, food.Stock, newQuantity)
		utils.BadRequest(c, "Not enough stock available", gin.H{"available": food.Stock})
		return
	}

	if cartItem.ID != 0 {
		if err := config.DB.Model(&cartItem).Update("quantity", newQuantity).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart", err.Error())
			return
		}
	} else {
		cartItem = models.Cart{UserID: user.ID, FoodID: req.FoodID, Quantity: req.Quantity}
		if err := config.DB.Create(&cartItem).Error; err != nil {
			utils.InternalServerError(c, "Failed to add to cart", err.Error())
			return
		}
	}

	utils.LogInfo("Cart updated for user %d: food %d x%d", user.ID, req.FoodID, newQuantity)
	utils.Success(c, "Item added to cart", gin.H{"food_id": req.FoodID, "quantity": newQuantity})
}

func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	foodID, err := strconv.Atoi(c.Param("foodId"))
	if err != nil {
		utils.BadRequest(c, "Invalid food id", nil)
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if req.Quantity < 1 || req.Quantity > maxQuantityPerItem {
		utils.BadRequest(c, "Quantity must be between 1 and 10", nil)
		return
	}

	var cartItem models.Cart
	if err := config.DB.Where("user_id = ? AND food_id = ?", user.ID, foodID).First(&cartItem).Error; err != nil {
		utils.NotFound(c, "Item not in cart")
		return
	}

	var food models.Food
	if err := config.DB.First(&food, foodID).Error; err != nil {
		utils.NotFound(c, "Food not found")
		return
	}
	if food.Stock < req.Quantity {
		utils.BadRequest(c, "Not enough stock available", gin.H{"available": food.Stock})
		return
	}

	if err := config.DB.Model(&cartItem).Update("quantity", req.Quantity).Error; err != nil {
		utils.InternalServerError(c, "Failed to update cart", err.Error())
		return
	}

	utils.Success(c, "Cart updated successfully", gin.H{"food_id": foodID, "quantity": req.Quantity})
}

func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	foodID, err := strconv.Atoi(c.Param("foodId"))
	if err != nil {
		utils.BadRequest(c, "Invalid food id", nil)
		return
	}

	result := config.DB.Where("user_id = ? AND food_id = ?", user.ID, foodID).Delete(&models.Cart{})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to remove item", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Item not in cart")
		return
	}

	utils.Success(c, "Item removed from cart", nil)
}

func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.Cart{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to clear cart", err.Error())
		return
	}

	utils.Success(c, "Cart cleared", nil)
}
