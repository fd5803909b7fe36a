package routes

import (
	"github.com/TranHuy-99/FoodNest/controllers"
	"github.com/TranHuy-99/FoodNest/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/dashboard", controllers.AdminDashboard)

			// User management
			admin.GET("/users", controllers.AdminListUsers)
			admin.PATCH("/users/:id/block", controllers.ToggleUserBlock)
			admin.PATCH("/users/:id/staff", controllers.ToggleUserStaff)

			// Category management
			admin.POST("/categories", controllers.CreateCategory)
			admin.PUT("/categories/:id", controllers.UpdateCategory)
			admin.PATCH("/categories/:id/block", controllers.ToggleCategoryBlock)

			// Menu management
			admin.POST("/foods", controllers.CreateFood)
			admin.PUT("/foods/:id", controllers.UpdateFood)
			admin.PATCH("/foods/:id/block", controllers.ToggleFoodBlock)
			admin.DELETE("/foods/:id", controllers.DeleteFood)

			// Coupon catalog
			admin.GET("/coupons", controllers.AdminListCoupons)
			admin.POST("/coupons", controllers.CreateCoupon)
			admin.PUT("/coupons/:id", controllers.UpdateCoupon)
			admin.DELETE("/coupons/:id", controllers.DeleteCoupon)

			// Orders
			admin.GET("/orders", controllers.AdminListOrders)
			admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)

			// Reporting
			admin.GET("/sales-report", controllers.GetSalesReport)
			admin.GET("/sales-report/excel", controllers.DownloadSalesReportExcel)
		}
	}
}
