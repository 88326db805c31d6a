package consult

import (
	"context"
	"time"

	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"gorm.io/gorm"
)

// Store is the durable, append-only record of consultation messages.
// It is the source of truth: a message that is not in the store was never
// sent, and the store's (created_at, id) order is the only order shown to
// clients.
type Store interface {
	// Append persists the message, assigning its id and server timestamp.
	Append(ctx context.Context, msg *models.ChatMessage) error

	// History returns all messages for the appointment in ascending
	// (created_at, id) order.
	History(ctx context.Context, appointmentID uint) ([]models.ChatMessage, error)
}

// GormStore persists chat messages through GORM. Inserts are single-row and
// atomic; retries are the caller's concern.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Append(ctx context.Context, msg *models.ChatMessage) error {
	// Timestamp is server-assigned at persistence, never client-supplied.
	msg.CreatedAt = time.Now()
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *GormStore) History(ctx context.Context, appointmentID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	return messages, err
}
