package routes

import (
	"github.com/TranHuy-99/FoodNest/controllers"
	"github.com/TranHuy-99/FoodNest/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)

	router.GET("/menu", controllers.ListFoods)
	router.GET("/menu/:id", controllers.GetFoodDetails)
	router.GET("/categories", controllers.ListCategories)
	router.GET("/coupons", controllers.ListAvailableCoupons)
	router.GET("/payment-methods", controllers.GetPaymentMethods)

	// Authenticated user routes
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/cart", controllers.GetCart)
		user.POST("/cart", controllers.AddToCart)
		user.PUT("/cart/:foodId", controllers.UpdateCartItem)
		user.DELETE("/cart/:foodId", controllers.RemoveFromCart)
		user.DELETE("/cart", controllers.ClearCart)

		user.GET("/addresses", controllers.ListAddresses)
		user.POST("/addresses", controllers.AddAddress)
		user.PUT("/addresses/:id", controllers.UpdateAddress)
		user.DELETE("/addresses/:id", controllers.DeleteAddress)

		user.POST("/checkout/summary", controllers.GetCheckoutSummary)
		user.POST("/checkout/place-order", controllers.PlaceOrder)
		user.POST("/checkout/payment/initiate", controllers.InitiatePayment)
		user.POST("/checkout/payment/verify", controllers.VerifyRazorpayPayment)

		user.GET("/orders", controllers.ListOrders)
		user.GET("/orders/:id", controllers.GetOrderDetails)
		user.POST("/orders/:id/cancel", controllers.CancelOrder)
		user.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		user.GET("/points", controllers.GetPoints)
		user.GET("/points/history", controllers.GetPointsHistory)

		user.GET("/notifications", controllers.ListNotifications)
		user.POST("/notifications/read", controllers.MarkNotificationsRead)
	}

	// Kitchen staff routes
	staff := router.Group("/staff")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffMiddleware())
	{
		staff.GET("/orders", controllers.AdminListOrders)
		staff.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
	}
}
