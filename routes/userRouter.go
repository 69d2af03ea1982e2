package routes

import (
	"foodstop-server/controllers"
	"foodstop-server/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine, controller *controllers.UserController, wsController *controllers.WSController) {
	incomingRoutes.POST("/users/signup", controller.SignUp())
	incomingRoutes.POST("/users/login", controller.Login())
	incomingRoutes.GET("/users/:user_id", middleware.Authentication(), controller.GetUser())
	incomingRoutes.PATCH("/users/notification-token", middleware.Authentication(), controller.RegisterNotificationToken())
	incomingRoutes.GET("/ws", middleware.Authentication(), middleware.AdminOnly(), wsController.HandleWebSocket())
}
