package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"foodstop-server/controllers"
	"foodstop-server/database"
	"foodstop-server/repository"
	"foodstop-server/routes"
	"foodstop-server/services"
	"foodstop-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	orderRepo := repository.NewOrderRepository(database.OpenCollection(database.Client, "order"))
	userRepo := repository.NewUserRepository(database.OpenCollection(database.Client, "user"))

	hub := ws.NewHub()

	var emailChannel services.Channel
	if os.Getenv("SMTP_HOST") != "" {
		emailChannel = services.NewSMTPChannel(
			os.Getenv("SMTP_HOST"),
			os.Getenv("SMTP_PORT"),
			os.Getenv("SMTP_USERNAME"),
			os.Getenv("SMTP_PASSWORD"),
			os.Getenv("SMTP_FROM"),
		)
	}

	var smsChannel services.Channel
	if os.Getenv("SMS_GATEWAY_URL") != "" {
		smsChannel = services.NewSMSChannel(
			os.Getenv("SMS_GATEWAY_URL"),
			os.Getenv("SMS_ACCOUNT_SID"),
			os.Getenv("SMS_AUTH_TOKEN"),
			os.Getenv("SMS_FROM_NUMBER"),
		)
	}

	pushChannel := services.NewWebsocketPushChannel(hub)
	dispatcher := services.NewDispatcher(
		emailChannel,
		smsChannel,
		pushChannel,
		pushChannel,
		userRepo,
		services.DispatcherConfig{
			StoreEmail:  os.Getenv("STORE_EMAIL"),
			AdminPhones: splitList(os.Getenv("ADMIN_PHONES")),
		},
	)
	defer dispatcher.Close()

	coupon := services.CouponConfig{
		Code:       os.Getenv("COUPON_CODE"),
		Percentage: parsePercentage(os.Getenv("COUPON_DISCOUNT_PERCENT")),
	}

	reconciler := services.NewReconcileService(userRepo, orderRepo)
	orderService := services.NewOrderService(orderRepo, reconciler, dispatcher, coupon)

	orderController := controllers.NewOrderController(orderService, coupon)
	userController := controllers.NewUserController(userRepo, reconciler)
	wsController := controllers.NewWSController(hub, userRepo)

	corsOrigins := splitList(os.Getenv("CORS_ORIGINS"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"http://localhost:9000"}
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.UserRoutes(router, userController, wsController)
	routes.OrderRoutes(router, orderController)

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parsePercentage(value string) float64 {
	if value == "" {
		return 0
	}
	percentage, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("invalid COUPON_DISCOUNT_PERCENT %q, coupon disabled", value)
		return 0
	}
	return percentage
}
