package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^(0|\+84)[0-9]{9}$`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)
	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")
	return strings.TrimSpace(sanitized)
}

// ValidateUsername checks if the username meets the requirements
func ValidateUsername(username string) (bool, string) {
	username = SanitizeString(username)
	if len(username) < 3 {
		return false, "Username must be at least 3 characters long"
	}
	if len(username) > 20 {
		return false, "Username must not exceed 20 characters"
	}
	if !usernameRegex.MatchString(username) {
		return false, "Username may only contain letters, digits, dots, dashes and underscores"
	}
	return true, ""
}

// ValidateEmail checks if the email address is well formed
func ValidateEmail(email string) (bool, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email address"
	}
	return true, ""
}

// ValidatePassword checks password strength requirements
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return false, "Password must contain uppercase, lowercase and digit characters"
	}
	return true, ""
}

// ValidatePhone checks a Vietnamese phone number
func ValidatePhone(phone string) (bool, string) {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if !phoneRegex.MatchString(phone) {
		return false, "Invalid phone number"
	}
	return true, ""
}

// ValidatePrice validates a price in VND
func ValidatePrice(price int64) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than 0")
	}
	return nil
}

// ValidateStock validates stock quantity
func ValidateStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return nil
}

// ValidateStringLength validates string length
func ValidateStringLength(str string, min, max int) error {
	length := len(strings.TrimSpace(str))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}

// ValidateCouponValue checks if the coupon value is valid based on its type
func ValidateCouponValue(couponType string, value int64) error {
	if value <= 0 {
		return fmt.Errorf("coupon value must be greater than 0")
	}
	if couponType == "percent" && value > 100 {
		return fmt.Errorf("percentage coupon value cannot exceed 100")
	}
	return nil
}
