package models

import "time"

// ChatMessage is one persisted consultation message. Rows are append-only:
// never updated, never deleted by the messaging core. Within an appointment
// the only presentation order is (CreatedAt, ID) ascending.
type ChatMessage struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uint      `gorm:"index;not null" json:"appointmentId"`
	SenderID      uint      `gorm:"index;not null" json:"senderId"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Sender      User        `gorm:"foreignKey:SenderID" json:"-"`
}
