package routes

import (
	"github.com/IqraSayed2/E-HealthCare/internal/handlers"
	"github.com/IqraSayed2/E-HealthCare/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterConsultRoutes(r gin.IRouter) {
	consult := r.Group("/consult")
	consult.Use(middleware.AuthMiddleware())
	{
		// History replay for a newly joining participant; live traffic goes
		// over the socket.
		consult.GET("/:appointmentId/messages", handlers.GetConsultMessages)
	}
}
