package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/IqraSayed2/E-HealthCare/internal/database"
	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// seedConsultation creates a doctor/patient pair with an accepted
// appointment and two persisted chat messages.
func seedConsultation(t *testing.T) (appt models.Appointment, doctorUser, patientUser models.User) {
	doctorUser = models.User{Name: "Asha Rao", Email: "asha_" + t.Name() + "@example.com", Role: models.RoleDoctor}
	patientUser = models.User{Name: "Ravi Patel", Email: "ravi_" + t.Name() + "@example.com", Role: models.RolePatient}
	assert.NoError(t, database.DB.Create(&doctorUser).Error)
	assert.NoError(t, database.DB.Create(&patientUser).Error)

	doctorProfile := models.DoctorProfile{UserID: doctorUser.ID, Specialization: "Dermatology"}
	patientProfile := models.PatientProfile{UserID: patientUser.ID}
	assert.NoError(t, database.DB.Create(&doctorProfile).Error)
	assert.NoError(t, database.DB.Create(&patientProfile).Error)

	appt = models.Appointment{
		DoctorID:  doctorProfile.ID,
		PatientID: patientProfile.ID,
		Status:    models.ApptStatusAccepted,
	}
	assert.NoError(t, database.DB.Create(&appt).Error)

	now := time.Now()
	assert.NoError(t, database.DB.Create(&models.ChatMessage{
		AppointmentID: appt.ID, SenderID: patientUser.ID, Content: "Hello doctor", CreatedAt: now.Add(-2 * time.Minute),
	}).Error)
	assert.NoError(t, database.DB.Create(&models.ChatMessage{
		AppointmentID: appt.ID, SenderID: doctorUser.ID, Content: "Hello, how can I help?", CreatedAt: now.Add(-1 * time.Minute),
	}).Error)

	return appt, doctorUser, patientUser
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func historyRequest(userID uint, appointmentID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/consult/"+appointmentID+"/messages", nil)
	c.Params = gin.Params{{Key: "appointmentId", Value: appointmentID}}
	c.Set("userId", userID)

	GetConsultMessages(c)
	return w
}

func TestGetConsultMessagesReturnsOrderedHistory(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	InitConsult(database.DB)

	appt, _, patientUser := seedConsultation(t)

	w := historyRequest(patientUser.ID, formatID(appt.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Len(t, response.Messages, 2)
	assert.Equal(t, "Hello doctor", response.Messages[0].Content)
	assert.Equal(t, "Hello, how can I help?", response.Messages[1].Content)
}

func TestGetConsultMessagesDeniesOutsider(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	InitConsult(database.DB)

	appt, _, _ := seedConsultation(t)

	outsider := models.User{Name: "Someone Else", Email: "outsider_" + t.Name() + "@example.com", Role: models.RolePatient}
	assert.NoError(t, database.DB.Create(&outsider).Error)

	w := historyRequest(outsider.ID, formatID(appt.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetConsultMessagesUnknownAppointment(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	InitConsult(database.DB)

	_, doctorUser, _ := seedConsultation(t)

	w := historyRequest(doctorUser.ID, "999999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
