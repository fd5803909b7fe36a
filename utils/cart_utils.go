package utils

import (
	"fmt"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
)

// CartDetails carries the priced snapshot of a user's cart
type CartDetails struct {
	OrderItems  []models.OrderItem
	Subtotal    int64
	ShippingFee int64
}

// GetCartDetails retrieves cart items with unit prices snapshotted at read
// time, the subtotal, and the shipping fee for that subtotal.
func GetCartDetails(userID uint) (*CartDetails, error) {
	db := config.DB
	var cartItems []models.Cart
	if err := db.Preload("Food").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %v", err)
	}

	var details CartDetails
	for _, item := range cartItems {
		if item.Food.ID == 0 || item.Food.Blocked || !item.Food.IsActive {
			continue
		}

		itemTotal := item.Food.Price * int64(item.Quantity)
		details.OrderItems = append(details.OrderItems, models.OrderItem{
			FoodID:   item.Food.ID,
			Food:     item.Food,
			Quantity: item.Quantity,
			Price:    item.Food.Price,
			Total:    itemTotal,
		})
		details.Subtotal += itemTotal
	}

	details.ShippingFee = CalculateShippingFee(details.Subtotal)

	return &details, nil
}

// CalculateShippingFee returns the flat shipping fee, waived above the
// free-shipping threshold. Empty carts carry no fee.
func CalculateShippingFee(subtotal int64) int64 {
	if subtotal == 0 {
		return 0
	}
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return DefaultShippingFee
}
