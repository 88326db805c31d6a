package routes

import (
	"github.com/IqraSayed2/E-HealthCare/internal/handlers"
	"github.com/IqraSayed2/E-HealthCare/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/signup", handlers.Register)
	r.POST("/login", handlers.Login)

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", handlers.Logout)
		protected.GET("/me", handlers.Me)
	}
}
