package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/IqraSayed2/E-HealthCare/internal/config"
	"github.com/IqraSayed2/E-HealthCare/internal/database"
	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"github.com/IqraSayed2/E-HealthCare/pkg/errors"
	"github.com/IqraSayed2/E-HealthCare/pkg/logger"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

type CreateOrderInput struct {
	AppointmentID uint `json:"appointmentId" binding:"required"`
}

type VerifyPaymentInput struct {
	AppointmentID     uint   `json:"appointmentId" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// ownAppointment loads the appointment and verifies the caller is its
// patient; only the booking patient may pay for a consultation.
func ownAppointment(c *gin.Context, appointmentID uint) (*models.Appointment, bool) {
	profile, ok := patientProfileFor(c)
	if !ok {
		return nil, false
	}

	var appt models.Appointment
	if err := database.DB.Preload("Doctor").First(&appt, appointmentID).Error; err != nil {
		c.Error(errors.NotFound("Appointment not found"))
		return nil, false
	}

	if appt.PatientID != profile.ID {
		c.Error(errors.Forbidden("This appointment belongs to another patient"))
		return nil, false
	}

	return &appt, true
}

// CreateOrder opens a Razorpay order for the appointment's consultation fee.
func CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(errors.BadRequest(err.Error()))
		return
	}

	appt, ok := ownAppointment(c, input.AppointmentID)
	if !ok {
		return
	}

	if appt.Doctor.Fees <= 0 {
		c.Error(errors.BadRequest("Consultation is free, no payment needed"))
		return
	}

	keyID := config.AppConfig.RazorpayKeyID
	keySecret := config.AppConfig.RazorpayKeySecret
	if keyID == "" || keySecret == "" {
		c.Error(errors.Internal("Payment gateway not configured"))
		return
	}

	client := razorpay.NewClient(keyID, keySecret)

	amountInPaise := appt.Doctor.Fees * 100
	body, err := client.Order.Create(map[string]interface{}{
		"amount":   amountInPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("appt_%d", appt.ID),
	}, nil)
	if err != nil {
		logger.Error().Err(err).Uint("appointment_id", appt.ID).Msg("Failed to create payment order")
		c.Error(errors.Internal("Failed to create order"))
		return
	}

	orderID, _ := body["id"].(string)

	database.DB.Create(&models.Payment{
		AppointmentID: appt.ID,
		Amount:        amountInPaise,
		Status:        models.PaymentStatusPending,
		OrderID:       orderID,
	})

	c.JSON(http.StatusOK, gin.H{
		"orderId":  orderID,
		"amount":   amountInPaise,
		"currency": "INR",
		"keyId":    keyID,
	})
}

// VerifyPayment checks the Razorpay signature and marks the payment paid.
func VerifyPayment(c *gin.Context) {
	var input VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(errors.BadRequest(err.Error()))
		return
	}

	appt, ok := ownAppointment(c, input.AppointmentID)
	if !ok {
		return
	}

	var payment models.Payment
	if err := database.DB.
		Where("appointment_id = ? AND order_id = ?", appt.ID, input.RazorpayOrderID).
		First(&payment).Error; err != nil {
		c.Error(errors.NotFound("Payment record not found"))
		return
	}

	keySecret := config.AppConfig.RazorpayKeySecret

	data := input.RazorpayOrderID + "|" + input.RazorpayPaymentID
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(data))
	expectedSignature := hex.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(input.RazorpaySignature)) {
		payment.Status = models.PaymentStatusFailed
		database.DB.Save(&payment)
		c.Error(errors.BadRequest("Invalid signature"))
		return
	}

	payment.Status = models.PaymentStatusPaid
	payment.PaymentRef = input.RazorpayPaymentID
	if err := database.DB.Save(&payment).Error; err != nil {
		c.Error(errors.Internal("Failed to record payment"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
