// Package gateway translates internal payment requests into each external
// payment provider's signed protocol and validates what comes back.
package gateway

import (
	"github.com/TranHuy-99/FoodNest/models"
)

// CreateResult is the outcome of a successful outbound payment creation.
type CreateResult struct {
	// RedirectURL is where the user completes the payment. Empty for
	// providers with a client-side checkout (Razorpay).
	RedirectURL string
	// AppTransID is the app-scoped transaction id the gateway will echo
	// back in callbacks and queries.
	AppTransID string
	// RawRequest is the signed outbound payload, kept for audit.
	RawRequest string
}

// Provider is the adapter contract every payment gateway implements.
// Outbound failures are returned to the caller, never retried silently:
// the order stays Pending and the user can retry checkout.
type Provider interface {
	Name() string
	CreatePayment(order *models.Order, user *models.User, description string) (*CreateResult, error)
}

// ForMethod maps a checkout payment method to its provider. Methods that
// need no gateway (cash on delivery) return nil.
func ForMethod(method string) Provider {
	switch method {
	case models.GatewayZaloPay:
		return NewZaloPay()
	case models.GatewayRazorpay:
		return NewRazorpay()
	default:
		return nil
	}
}
