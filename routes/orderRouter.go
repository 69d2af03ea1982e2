package routes

import (
	"foodstop-server/controllers"
	"foodstop-server/middleware"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, controller *controllers.OrderController) {
	incomingRoutes.POST("/orders", middleware.OptionalAuthentication(), controller.CreateOrder())
	incomingRoutes.GET("/orders", middleware.Authentication(), controller.ListMyOrders())
	incomingRoutes.GET("/orders/:order_id", middleware.Authentication(), controller.GetOrder())
	incomingRoutes.GET("/admin/orders", middleware.Authentication(), middleware.AdminOnly(), controller.ListAllOrders())
	incomingRoutes.PATCH("/admin/orders/:order_id/status", middleware.Authentication(), middleware.AdminOnly(), controller.UpdateOrderStatus())
	incomingRoutes.POST("/coupons/validate", controller.ValidateCoupon())
}
