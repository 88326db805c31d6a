package routes

import (
	"github.com/IqraSayed2/E-HealthCare/internal/handlers"
	"github.com/IqraSayed2/E-HealthCare/internal/middleware"
	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterDoctorRoutes(r gin.IRouter) {
	doctor := r.Group("/doctor")
	doctor.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleDoctor))
	{
		doctor.GET("/dashboard", handlers.DoctorDashboard)
		doctor.GET("/appointments", handlers.DoctorAppointments)
		doctor.POST("/accept/:id", handlers.AcceptAppointment)
		doctor.GET("/availability", handlers.ListAvailability)
		doctor.POST("/availability", handlers.AddAvailability)
	}
}
