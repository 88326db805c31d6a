package models

import "time"

const (
	ApptStatusPending   = "pending"
	ApptStatusAccepted  = "accepted"
	ApptStatusCompleted = "completed"
	ApptStatusCancelled = "cancelled"
)

// Appointment links a patient profile to a doctor profile for one
// consultation slot. Its (DoctorID, PatientID) pair is what authorizes
// access to the consultation channel.
type Appointment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DoctorID  uint      `gorm:"index;not null" json:"doctorId"`
	PatientID uint      `gorm:"index;not null" json:"patientId"`
	Status    string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Date      string    `gorm:"type:varchar(50)" json:"date"`
	Time      string    `gorm:"type:varchar(50)" json:"time"`
	CreatedAt time.Time `json:"createdAt"`

	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"index;not null" json:"appointmentId"`
	Amount        int       `json:"amount"`
	Status        string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	OrderID       string    `gorm:"type:varchar(64);index" json:"orderId"`
	PaymentRef    string    `gorm:"type:varchar(64)" json:"paymentRef"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
