package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var DB *gorm.DB

// GoogleOAuthConfig is used by the Google sign-in flow
var GoogleOAuthConfig *oauth2.Config

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	// ZaloPay credentials. Key1 signs outbound requests; Key2 verifies
	// inbound callbacks. They are never interchangeable.
	ZaloPayAppID       string
	ZaloPayKey1        string
	ZaloPayKey2        string
	ZaloPayEndpoint    string
	ZaloPayCallbackURL string

	RazorpayKey    string
	RazorpaySecret string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	FrontendURL  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),

		ZaloPayAppID:       os.Getenv("ZALOPAY_APP_ID"),
		ZaloPayKey1:        os.Getenv("ZALOPAY_KEY1"),
		ZaloPayKey2:        os.Getenv("ZALOPAY_KEY2"),
		ZaloPayEndpoint:    os.Getenv("ZALOPAY_ENDPOINT"),
		ZaloPayCallbackURL: os.Getenv("ZALOPAY_CALLBACK_URL"),

		RazorpayKey:    os.Getenv("RAZORPAY_KEY"),
		RazorpaySecret: os.Getenv("RAZORPAY_SECRET"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FrontendURL:  os.Getenv("FRONTEND_URL"),
	}

	if config.ZaloPayEndpoint == "" {
		config.ZaloPayEndpoint = "https://sb-openapi.zalopay.vn/v2"
	}

	return config, nil
}

// InitGoogleOAuth sets up the Google OAuth client
func InitGoogleOAuth() {
	GoogleOAuthConfig = &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}
