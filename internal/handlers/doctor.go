package handlers

import (
	"net/http"
	"time"

	"github.com/IqraSayed2/E-HealthCare/internal/database"
	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"github.com/IqraSayed2/E-HealthCare/pkg/errors"
	"github.com/gin-gonic/gin"
)

func doctorProfileFor(c *gin.Context) (*models.DoctorProfile, bool) {
	userID := c.MustGet("userId").(uint)

	var profile models.DoctorProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.Error(errors.Forbidden("Doctor profile not found"))
		return nil, false
	}
	return &profile, true
}

// DoctorDashboard returns the counters shown on the doctor landing page.
func DoctorDashboard(c *gin.Context) {
	profile, ok := doctorProfileFor(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	database.DB.
		Where("doctor_id = ?", profile.ID).
		Order("date asc").
		Preload("Patient.User").
		Find(&appointments)

	today := time.Now().Format("2006-01-02")
	var todayAppointments []models.Appointment
	database.DB.
		Where("doctor_id = ? AND date = ?", profile.ID, today).
		Preload("Patient.User").
		Find(&todayAppointments)

	var pending, completed int64
	database.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", profile.ID, models.ApptStatusPending).
		Count(&pending)
	database.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", profile.ID, models.ApptStatusCompleted).
		Count(&completed)

	c.JSON(http.StatusOK, gin.H{
		"appointments":          appointments,
		"todayAppointments":     todayAppointments,
		"totalAppointments":     len(appointments),
		"pendingAppointments":   pending,
		"completedAppointments": completed,
	})
}

// DoctorAppointments lists all appointments assigned to the doctor.
func DoctorAppointments(c *gin.Context) {
	profile, ok := doctorProfileFor(c)
	if !ok {
		return
	}

	var appts []models.Appointment
	database.DB.
		Where("doctor_id = ?", profile.ID).
		Preload("Patient.User").
		Find(&appts)

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// AcceptAppointment moves one of the doctor's pending appointments to accepted.
func AcceptAppointment(c *gin.Context) {
	profile, ok := doctorProfileFor(c)
	if !ok {
		return
	}

	var appt models.Appointment
	if err := database.DB.
		Where("id = ? AND doctor_id = ?", c.Param("id"), profile.ID).
		First(&appt).Error; err != nil {
		c.Error(errors.NotFound("Appointment not found"))
		return
	}

	appt.Status = models.ApptStatusAccepted
	if err := database.DB.Save(&appt).Error; err != nil {
		c.Error(errors.Internal("Failed to update appointment"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

type AvailabilityInput struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// AddAvailability publishes a bookable slot.
func AddAvailability(c *gin.Context) {
	profile, ok := doctorProfileFor(c)
	if !ok {
		return
	}

	var input AvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(errors.BadRequest(err.Error()))
		return
	}

	slot := models.Availability{
		DoctorID: profile.ID,
		Date:     input.Date,
		Time:     input.Time,
	}
	if err := database.DB.Create(&slot).Error; err != nil {
		c.Error(errors.Internal("Failed to add availability"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"availability": slot})
}

// ListAvailability lists the doctor's own published slots.
func ListAvailability(c *gin.Context) {
	profile, ok := doctorProfileFor(c)
	if !ok {
		return
	}

	var slots []models.Availability
	database.DB.Where("doctor_id = ?", profile.ID).Find(&slots)

	c.JSON(http.StatusOK, gin.H{"availability": slots})
}
