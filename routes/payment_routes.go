package routes

import (
	"github.com/TranHuy-99/FoodNest/controllers"
	"github.com/TranHuy-99/FoodNest/middleware"
	"github.com/gin-gonic/gin"
)

// initPaymentRoutes wires the gateway-facing endpoints. The callback is
// unauthenticated: it is server-to-server and authenticated by its MAC.
func initPaymentRoutes(router *gin.RouterGroup) {
	payment := router.Group("/payment")
	{
		payment.POST("/zalopay/callback", controllers.ZaloPayCallback)

		authed := payment.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/zalopay/status/:appTransId", controllers.QueryZaloPayStatus)
			authed.POST("/report", controllers.ReportPaymentResult)
		}
	}
}
