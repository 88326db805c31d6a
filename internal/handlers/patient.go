package handlers

import (
	"net/http"

	"github.com/IqraSayed2/E-HealthCare/internal/database"
	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"github.com/IqraSayed2/E-HealthCare/pkg/errors"
	"github.com/gin-gonic/gin"
)

// Failures in the portal handlers are attached with c.Error and rendered by
// the error middleware; handlers only write success bodies themselves.

func patientProfileFor(c *gin.Context) (*models.PatientProfile, bool) {
	userID := c.MustGet("userId").(uint)

	var profile models.PatientProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.Error(errors.Forbidden("Patient profile not found"))
		return nil, false
	}
	return &profile, true
}

// PatientDashboard returns the counters shown on the patient landing page.
func PatientDashboard(c *gin.Context) {
	profile, ok := patientProfileFor(c)
	if !ok {
		return
	}

	var upcoming []models.Appointment
	database.DB.
		Where("patient_id = ?", profile.ID).
		Order("date asc").
		Limit(5).
		Preload("Doctor.User").
		Find(&upcoming)

	var totalDoctors int64
	database.DB.Model(&models.DoctorProfile{}).Count(&totalDoctors)

	var totalConsultations int64
	database.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND status = ?", profile.ID, models.ApptStatusCompleted).
		Count(&totalConsultations)

	c.JSON(http.StatusOK, gin.H{
		"upcoming":           upcoming,
		"upcomingCount":      len(upcoming),
		"totalDoctors":       totalDoctors,
		"totalConsultations": totalConsultations,
	})
}

// FindDoctors searches doctors by specialization or name.
func FindDoctors(c *gin.Context) {
	search := c.Query("search")

	query := database.DB.Model(&models.DoctorProfile{}).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Preload("User")

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("doctor_profiles.specialization LIKE ? OR users.name LIKE ?", like, like)
	}

	var doctors []models.DoctorProfile
	if err := query.Find(&doctors).Error; err != nil {
		c.Error(errors.Internal("Failed to fetch doctors"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctors": doctors, "search": search})
}

// DoctorPreview returns one doctor's profile with published availability.
func DoctorPreview(c *gin.Context) {
	id := c.Param("id")

	var doctor models.DoctorProfile
	if err := database.DB.Preload("User").First(&doctor, "id = ?", id).Error; err != nil {
		c.Error(errors.NotFound("Doctor not found"))
		return
	}

	var availability []models.Availability
	database.DB.Where("doctor_id = ?", doctor.ID).Find(&availability)

	c.JSON(http.StatusOK, gin.H{"doctor": doctor, "availability": availability})
}

type BookInput struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// BookAppointment creates a pending appointment with the chosen doctor.
func BookAppointment(c *gin.Context) {
	profile, ok := patientProfileFor(c)
	if !ok {
		return
	}

	var input BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(errors.BadRequest(err.Error()))
		return
	}

	var doctor models.DoctorProfile
	if err := database.DB.First(&doctor, "id = ?", c.Param("doctorId")).Error; err != nil {
		c.Error(errors.NotFound("Doctor not found"))
		return
	}

	appt := models.Appointment{
		DoctorID:  doctor.ID,
		PatientID: profile.ID,
		Status:    models.ApptStatusPending,
		Date:      input.Date,
		Time:      input.Time,
	}

	if err := database.DB.Create(&appt).Error; err != nil {
		c.Error(errors.Internal("Failed to book appointment"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// MyAppointments lists the patient's appointments.
func MyAppointments(c *gin.Context) {
	profile, ok := patientProfileFor(c)
	if !ok {
		return
	}

	var appts []models.Appointment
	database.DB.
		Where("patient_id = ?", profile.ID).
		Preload("Doctor.User").
		Find(&appts)

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
