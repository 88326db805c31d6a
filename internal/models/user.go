package models

import (
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name  string `gorm:"type:varchar(120);not null" json:"name"`
	Email string `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Role  Role   `gorm:"type:varchar(20);not null" json:"role"`

	Password string `json:"-"`

	DoctorProfile  *DoctorProfile  `gorm:"foreignKey:UserID" json:"doctorProfile,omitempty"`
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID" json:"patientProfile,omitempty"`
}

type PatientProfile struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"index;not null" json:"userId"`
	Age    int    `json:"age"`
	Gender string `gorm:"type:varchar(10)" json:"gender"`
	Phone  string `gorm:"type:varchar(20)" json:"phone"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type DoctorProfile struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"index;not null" json:"userId"`
	Specialization string `gorm:"type:varchar(120)" json:"specialization"`
	Experience     int    `json:"experience"`
	Fees           int    `json:"fees"`
	About          string `gorm:"type:text" json:"about"`

	// Languages the doctor can consult in (Postgres text[])
	Languages pq.StringArray `gorm:"type:text[]" json:"languages"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Availability is a bookable slot published by a doctor.
type Availability struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	DoctorID uint   `gorm:"index;not null" json:"doctorId"`
	Date     string `gorm:"type:varchar(20)" json:"date"`
	Time     string `gorm:"type:varchar(20)" json:"time"`
}
