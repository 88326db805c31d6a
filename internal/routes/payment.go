package routes

import (
	"github.com/IqraSayed2/E-HealthCare/internal/handlers"
	"github.com/IqraSayed2/E-HealthCare/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterPaymentRoutes(r gin.IRouter) {
	payment := r.Group("/payments")
	payment.Use(middleware.AuthMiddleware())
	{
		payment.POST("/order", handlers.CreateOrder)
		payment.POST("/verify", handlers.VerifyPayment)
	}
}
