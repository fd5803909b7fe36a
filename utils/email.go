package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email via SMTP
func SendEmail(to, subject, body string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendOrderStatusEmail notifies a user that their order changed status
func SendOrderStatusEmail(to, orderCode, oldStatus, newStatus string) error {
	subject := fmt.Sprintf("Your order %s is now %s", orderCode, newStatus)
	body := fmt.Sprintf(`
		<h2>Order update</h2>
		<p>Your order <strong>%s</strong> has moved from <strong>%s</strong> to <strong>%s</strong>.</p>
		<p>Thank you for ordering with %s!</p>`,
		orderCode, oldStatus, newStatus, AppName)
	return SendEmail(to, subject, body)
}
