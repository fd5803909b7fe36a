package utils

import (
	"fmt"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"gorm.io/gorm"
)

// GetOrCreatePointsBalance retrieves or creates a points balance for a user
func GetOrCreatePointsBalance(userID uint) (*models.PointsBalance, error) {
	var balance models.PointsBalance
	if err := config.DB.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			balance = models.PointsBalance{
				UserID:  userID,
				Balance: 0,
			}
			if err := config.DB.Create(&balance).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return &balance, nil
}

// GetPointsBalance returns a user's current points balance, zero if no
// balance row exists yet.
func GetPointsBalance(userID uint) (int64, error) {
	balance, err := GetOrCreatePointsBalance(userID)
	if err != nil {
		return 0, err
	}
	return balance.Balance, nil
}

// CreatePointHistory appends an entry to a user's point transaction log
func CreatePointHistory(tx *gorm.DB, userID uint, amount int64, entryType, description string, orderID *uint, reference string) error {
	entry := models.PointHistory{
		UserID:      userID,
		Amount:      amount,
		Type:        entryType,
		Description: description,
		OrderID:     orderID,
		Reference:   reference,
	}
	return tx.Create(&entry).Error
}

// AwardOrderPoints credits loyalty points earned by a completed order and
// appends the EARN ledger entry.
func AwardOrderPoints(tx *gorm.DB, order *models.Order) error {
	earned := order.FinalAmount / PointsEarnDivisor
	if earned <= 0 {
		return nil
	}
	if err := CreditPoints(tx, order.UserID, earned); err != nil {
		return err
	}
	orderID := order.ID
	return CreatePointHistory(tx, order.UserID, earned, models.PointTypeEarn,
		fmt.Sprintf("Points earned on order %s", order.OrderCode), &orderID,
		fmt.Sprintf("EARN-ORDER-%d", order.ID))
}

// DebitPoints spends points from a user's balance inside the given
// transaction. The conditional update guarantees the balance never goes
// negative under concurrent redemptions; ErrInsufficientPoints is returned
// when the balance no longer covers the amount.
func DebitPoints(tx *gorm.DB, userID uint, amount int64) error {
	if amount <= 0 {
		return nil
	}
	res := tx.Model(&models.PointsBalance{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

// CreditPoints adds points to a user's balance inside the given transaction,
// creating the balance row if needed.
func CreditPoints(tx *gorm.DB, userID uint, amount int64) error {
	if amount <= 0 {
		return nil
	}
	res := tx.Model(&models.PointsBalance{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		balance := models.PointsBalance{UserID: userID, Balance: amount}
		if err := tx.Create(&balance).Error; err != nil {
			return fmt.Errorf("failed to create points balance: %w", err)
		}
	}
	return nil
}
