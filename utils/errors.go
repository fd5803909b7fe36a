package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the checkout and reconciliation core.
var (
	// ErrInvalidTransition is returned when a status change is not in the
	// transition allow-list for the acting role. State is left untouched.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrSignatureVerification marks a callback whose MAC did not match.
	// Treated as a security event: logged, acknowledged, never applied.
	ErrSignatureVerification = errors.New("callback signature verification failed")

	// ErrGatewayUnavailable marks an outbound gateway failure. The order
	// stays Pending and the user may retry checkout.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrReconciliationConflict marks a frontend-reported FAILED arriving
	// after an authoritative PAID. Dropped per the precedence rule.
	ErrReconciliationConflict = errors.New("reconciliation conflict")

	// ErrCouponExhausted is returned when the compare-and-increment on a
	// coupon's used_count finds the cap already reached.
	ErrCouponExhausted = errors.New("coupon usage limit exhausted")

	// ErrInsufficientPoints is returned when the conditional balance debit
	// finds less than the reserved amount.
	ErrInsufficientPoints = errors.New("insufficient points balance")
)

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequestError creates a 400 Bad Request error
func BadRequestError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// UnauthorizedError creates a 401 Unauthorized error
func UnauthorizedError(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

// ForbiddenError creates a 403 Forbidden error
func ForbiddenError(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, message, err)
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

// ConflictError creates a 409 Conflict error
func ConflictError(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
