package routes

import (
	"github.com/IqraSayed2/E-HealthCare/internal/handlers"
	"github.com/IqraSayed2/E-HealthCare/internal/middleware"
	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterPatientRoutes(r gin.IRouter) {
	patient := r.Group("/patient")
	patient.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RolePatient))
	{
		patient.GET("/dashboard", handlers.PatientDashboard)
		patient.GET("/find-doctor", handlers.FindDoctors)
		patient.GET("/doctor/:id", handlers.DoctorPreview)
		patient.POST("/book/:doctorId", handlers.BookAppointment)
		patient.GET("/my-appointments", handlers.MyAppointments)
	}
}
