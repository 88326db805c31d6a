package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/IqraSayed2/E-HealthCare/internal/consult"
	"github.com/IqraSayed2/E-HealthCare/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Consult is the process-wide consultation coordinator. Like the socket
// server it is created once at startup; membership lives only in memory and
// is rebuilt from nothing after a restart.
var Consult *consult.Coordinator

// ConsultRegistry is exported for the socket layer's disconnect path only;
// membership is mutated exclusively through Coordinator operations.
var ConsultRegistry *consult.Registry

// InitConsult wires the messaging core against the application database.
func InitConsult(db *gorm.DB) {
	ConsultRegistry = consult.NewRegistry()
	Consult = consult.NewCoordinator(
		consult.NewGormDirectory(db),
		consult.NewGormStore(db),
		ConsultRegistry,
		logger.Log,
	)
}

// GetConsultMessages replays an appointment's chat history for a joining
// participant. Authorization is re-checked through the same gate the socket
// join uses.
func GetConsultMessages(c *gin.Context) {
	userID := c.MustGet("userId").(uint)

	appointmentID, err := strconv.ParseUint(c.Param("appointmentId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	messages, err := Consult.History(c.Request.Context(), uint(appointmentID), userID)
	switch {
	case errors.Is(err, consult.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	case errors.Is(err, consult.ErrDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this consultation"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
