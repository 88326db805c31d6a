package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IqraSayed2/E-HealthCare/internal/config"
	"github.com/IqraSayed2/E-HealthCare/internal/database"
	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.PatientProfile{},
		&models.DoctorProfile{},
		&models.Availability{},
		&models.Appointment{},
		&models.Payment{},
		&models.ChatMessage{},
	)

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	}
}

func jsonRequest(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestRegisterCreatesRoleProfile(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	w := jsonRequest(t, Register, "POST", "/api/auth/signup", gin.H{
		"role":     "patient",
		"name":     "Ravi Patel",
		"email":    "ravi_auth@example.com",
		"password": "secret-pass-1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	assert.NoError(t, database.DB.Where("email = ?", "ravi_auth@example.com").First(&user).Error)
	assert.Equal(t, models.RolePatient, user.Role)
	// Password is stored hashed
	assert.NotEqual(t, "secret-pass-1", user.Password)

	var profile models.PatientProfile
	assert.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&profile).Error)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	body := gin.H{
		"role":     "doctor",
		"name":     "Asha Rao",
		"email":    "asha_dup@example.com",
		"password": "secret-pass-1",
	}
	w := jsonRequest(t, Register, "POST", "/api/auth/signup", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = jsonRequest(t, Register, "POST", "/api/auth/signup", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	w := jsonRequest(t, Register, "POST", "/api/auth/signup", gin.H{
		"role":     "admin",
		"name":     "Nope",
		"email":    "nope_role@example.com",
		"password": "secret-pass-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginIssuesToken(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	w := jsonRequest(t, Register, "POST", "/api/auth/signup", gin.H{
		"role":     "doctor",
		"name":     "Asha Rao",
		"email":    "asha_login@example.com",
		"password": "secret-pass-1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = jsonRequest(t, Login, "POST", "/api/auth/login", gin.H{
		"email":    "asha_login@example.com",
		"password": "secret-pass-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotEmpty(t, response.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	w := jsonRequest(t, Register, "POST", "/api/auth/signup", gin.H{
		"role":     "patient",
		"name":     "Ravi Patel",
		"email":    "ravi_wrongpw@example.com",
		"password": "secret-pass-1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = jsonRequest(t, Login, "POST", "/api/auth/login", gin.H{
		"email":    "ravi_wrongpw@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
