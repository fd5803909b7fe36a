package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		role string
		want bool
	}{
		{"payment confirmation moves pending to processing", OrderStatusPending, OrderStatusProcessing, RoleSystem, true},
		{"client cannot force processing", OrderStatusPending, OrderStatusProcessing, RoleUser, false},
		{"staff cannot force processing", OrderStatusPending, OrderStatusProcessing, RoleStaff, false},
		{"user cancels own pending order", OrderStatusPending, OrderStatusCancelled, RoleUser, true},
		{"failed payment cancels pending order", OrderStatusPending, OrderStatusCancelled, RoleSystem, true},
		{"staff confirms a processing order", OrderStatusProcessing, OrderStatusConfirmed, RoleStaff, true},
		{"user cannot confirm", OrderStatusProcessing, OrderStatusConfirmed, RoleUser, false},
		{"staff cancels a processing order", OrderStatusProcessing, OrderStatusCancelled, RoleStaff, true},
		{"user cannot cancel once processing", OrderStatusProcessing, OrderStatusCancelled, RoleUser, false},
		{"staff moves confirmed to delivering", OrderStatusConfirmed, OrderStatusDelivering, RoleStaff, true},
		{"only admin force-cancels a confirmed order", OrderStatusConfirmed, OrderStatusCancelled, RoleAdmin, true},
		{"staff cannot force-cancel a confirmed order", OrderStatusConfirmed, OrderStatusCancelled, RoleStaff, false},
		{"delivering completes", OrderStatusDelivering, OrderStatusCompleted, RoleStaff, true},
		{"delivering cannot be cancelled", OrderStatusDelivering, OrderStatusCancelled, RoleAdmin, false},
		{"completed is terminal", OrderStatusCompleted, OrderStatusProcessing, RoleAdmin, false},
		{"completed cannot be cancelled", OrderStatusCompleted, OrderStatusCancelled, RoleAdmin, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, RoleAdmin, false},
		{"no skipping states", OrderStatusPending, OrderStatusDelivering, RoleAdmin, false},
		{"no backwards movement", OrderStatusDelivering, OrderStatusConfirmed, RoleAdmin, false},
		{"self transition is not allowed", OrderStatusProcessing, OrderStatusProcessing, RoleAdmin, false},
		{"unknown status never transitions", "Refunded", OrderStatusCancelled, RoleAdmin, false},
		{"unknown role never transitions", OrderStatusPending, OrderStatusCancelled, "auditor", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to, tt.role))
		})
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		OrderStatusPending, OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusDelivering, OrderStatusCompleted, OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(status), status)
	}
	assert.False(t, ValidOrderStatus("Refunded"))
	assert.False(t, ValidOrderStatus("pending"))
	assert.False(t, ValidOrderStatus(""))
}
