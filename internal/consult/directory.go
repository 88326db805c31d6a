package consult

import (
	"context"
	"errors"

	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"gorm.io/gorm"
)

// GormDirectory resolves appointments and participants from the booking
// subsystem's tables. Appointments reference doctor/patient profile rows, so
// the lookup joins through the profiles to get back to user ids, which is
// the identity the session layer hands to the socket transport.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) Appointment(ctx context.Context, appointmentID uint) (uint, uint, error) {
	var row struct {
		DoctorUserID  uint
		PatientUserID uint
	}
	err := d.db.WithContext(ctx).
		Table("appointments").
		Select("doctor_profiles.user_id as doctor_user_id, patient_profiles.user_id as patient_user_id").
		Joins("JOIN doctor_profiles ON doctor_profiles.id = appointments.doctor_id").
		Joins("JOIN patient_profiles ON patient_profiles.id = appointments.patient_id").
		Where("appointments.id = ?", appointmentID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.DoctorUserID == 0 && row.PatientUserID == 0 {
		return 0, 0, ErrNotFound
	}
	return row.DoctorUserID, row.PatientUserID, nil
}

func (d *GormDirectory) DisplayName(ctx context.Context, participantID uint) (string, error) {
	var user models.User
	err := d.db.WithContext(ctx).Select("name").First(&user, participantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return user.Name, nil
}
