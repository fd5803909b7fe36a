package utils

import (
	"testing"

	"github.com/TranHuy-99/FoodNest/models"
	"github.com/stretchr/testify/assert"
)

func pendingOrder() models.Order {
	return models.Order{
		ID:            412,
		OrderCode:     "FN-20260901-3F2A9C",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
}

func paidOrder(extTransID string) models.Order {
	order := pendingOrder()
	order.Status = models.OrderStatusProcessing
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentTransactionID = extTransID
	return order
}

func TestPlanReconcile(t *testing.T) {
	tests := []struct {
		name       string
		order      models.Order
		extTransID string
		outcome    string
		source     string
		want       ReconcileAction
	}{
		{
			name:       "callback confirms a pending order",
			order:      pendingOrder(),
			extTransID: "zp-1",
			outcome:    models.PaymentOutcomePaid,
			source:     models.ReconcileSourceCallback,
			want:       ReconcileApplyPaid,
		},
		{
			name:       "query confirms a pending order",
			order:      pendingOrder(),
			extTransID: "zp-1",
			outcome:    models.PaymentOutcomePaid,
			source:     models.ReconcileSourceQuery,
			want:       ReconcileApplyPaid,
		},
		{
			name:       "duplicate callback is a no-op",
			order:      paidOrder("zp-1"),
			extTransID: "zp-1",
			outcome:    models.PaymentOutcomePaid,
			source:     models.ReconcileSourceCallback,
			want:       ReconcileNoop,
		},
		{
			name:       "paid callback with a different transaction id is dropped",
			order:      paidOrder("zp-1"),
			extTransID: "zp-2",
			outcome:    models.PaymentOutcomePaid,
			source:     models.ReconcileSourceCallback,
			want:       ReconcileDropConflict,
		},
		{
			name:       "frontend failure report after paid is dropped",
			order:      paidOrder("zp-1"),
			extTransID: "",
			outcome:    models.PaymentOutcomeFailed,
			source:     models.ReconcileSourceFrontendReport,
			want:       ReconcileDropConflict,
		},
		{
			name:       "gateway failure after paid is dropped",
			order:      paidOrder("zp-1"),
			extTransID: "zp-1",
			outcome:    models.PaymentOutcomeFailed,
			source:     models.ReconcileSourceQuery,
			want:       ReconcileDropConflict,
		},
		{
			name:       "frontend success report is never trusted",
			order:      pendingOrder(),
			extTransID: "",
			outcome:    models.PaymentOutcomePaid,
			source:     models.ReconcileSourceFrontendReport,
			want:       ReconcileDropUntrusted,
		},
		{
			name:       "frontend failure report cancels a pending order",
			order:      pendingOrder(),
			extTransID: "",
			outcome:    models.PaymentOutcomeFailed,
			source:     models.ReconcileSourceFrontendReport,
			want:       ReconcileApplyFailed,
		},
		{
			name:       "gateway failure fails a pending order",
			order:      pendingOrder(),
			extTransID: "zp-1",
			outcome:    models.PaymentOutcomeFailed,
			source:     models.ReconcileSourceQuery,
			want:       ReconcileApplyFailed,
		},
		{
			name: "gateway success outranks an earlier failure",
			order: func() models.Order {
				order := pendingOrder()
				order.PaymentStatus = models.PaymentStatusFailed
				return order
			}(),
			extTransID: "zp-1",
			outcome:    models.PaymentOutcomePaid,
			source:     models.ReconcileSourceCallback,
			want:       ReconcileApplyPaid,
		},
		{
			name: "frontend success after failure still untrusted",
			order: func() models.Order {
				order := pendingOrder()
				order.PaymentStatus = models.PaymentStatusFailed
				return order
			}(),
			extTransID: "",
			outcome:    models.PaymentOutcomePaid,
			source:     models.ReconcileSourceFrontendReport,
			want:       ReconcileDropUntrusted,
		},
		{
			name: "duplicate failure is a no-op",
			order: func() models.Order {
				order := pendingOrder()
				order.PaymentStatus = models.PaymentStatusFailed
				return order
			}(),
			extTransID: "zp-1",
			outcome:    models.PaymentOutcomeFailed,
			source:     models.ReconcileSourceQuery,
			want:       ReconcileNoop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanReconcile(&tt.order, tt.extTransID, tt.outcome, tt.source)
			assert.Equal(t, tt.want, got)
		})
	}
}
