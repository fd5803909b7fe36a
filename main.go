package main

import (
	"log"
	"os"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/controllers"
	"github.com/TranHuy-99/FoodNest/routes"
	"github.com/TranHuy-99/FoodNest/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	if _, err := config.LoadConfig(); err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Bootstrap admin account
	if err := controllers.EnsureDefaultAdmin(); err != nil {
		utils.LogError("Failed to ensure default admin: %v", err)
		log.Fatal("Failed to ensure default admin:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Start the order-status notification worker
	utils.StartNotificationWorker()

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
