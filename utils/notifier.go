package utils

import (
	"fmt"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
)

// OrderStatusEvent is emitted after every successful order status
// transition.
type OrderStatusEvent struct {
	OrderID   uint
	UserID    uint
	OrderCode string
	OldStatus string
	NewStatus string
}

// Events are consumed by a single worker goroutine; producers never block
// on it. A full buffer drops the event with a log line rather than stalling
// the transaction that produced it.
var orderEvents = make(chan OrderStatusEvent, 256)

// PublishOrderStatusEvent hands an event to the notification worker.
// Fire-and-forget: the call returns immediately in every case.
func PublishOrderStatusEvent(event OrderStatusEvent) {
	select {
	case orderEvents <- event:
	default:
		LogError("Notification buffer full, dropping event for order ID: %d (%s -> %s)",
			event.OrderID, event.OldStatus, event.NewStatus)
	}
}

// StartNotificationWorker launches the background consumer. Failures here
// are logged and dropped; notification delivery never affects order state.
func StartNotificationWorker() {
	go func() {
		for event := range orderEvents {
			processOrderStatusEvent(event)
		}
	}()
}

func processOrderStatusEvent(event OrderStatusEvent) {
	notification := models.Notification{
		UserID:    event.UserID,
		OrderID:   event.OrderID,
		OldStatus: event.OldStatus,
		NewStatus: event.NewStatus,
		Message: fmt.Sprintf("Order %s moved from %s to %s",
			event.OrderCode, event.OldStatus, event.NewStatus),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		LogError("Failed to persist notification for order ID: %d: %v", event.OrderID, err)
		return
	}
	LogInfo("Recorded notification for order ID: %d (%s -> %s)", event.OrderID, event.OldStatus, event.NewStatus)

	var user models.User
	if err := config.DB.First(&user, event.UserID).Error; err != nil {
		LogError("Failed to load user ID: %d for notification email: %v", event.UserID, err)
		return
	}
	if err := SendOrderStatusEmail(user.Email, event.OrderCode, event.OldStatus, event.NewStatus); err != nil {
		LogError("Failed to send status email for order ID: %d: %v", event.OrderID, err)
	}
}
