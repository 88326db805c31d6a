package consult

import "context"

// Role a participant holds within an appointment's channel.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Directory is the boundary to the booking/auth subsystem. The messaging
// core never reads appointment or user tables directly.
type Directory interface {
	// Appointment returns the user ids of the assigned doctor and patient,
	// or ErrNotFound.
	Appointment(ctx context.Context, appointmentID uint) (doctorUserID, patientUserID uint, err error)

	// DisplayName returns the participant's display name for broadcast
	// payloads.
	DisplayName(ctx context.Context, participantID uint) (string, error)
}

// Gate decides whether a participant may join an appointment's channel.
// It is consulted on every join attempt; connections are never trusted to
// carry authorization over from an earlier request.
type Gate struct {
	dir Directory
}

func NewGate(dir Directory) *Gate {
	return &Gate{dir: dir}
}

// Authorize returns the role participantID holds on the appointment, or
// ErrDenied if it is neither the assigned doctor nor the assigned patient.
func (g *Gate) Authorize(ctx context.Context, appointmentID, participantID uint) (Role, error) {
	doctorID, patientID, err := g.dir.Appointment(ctx, appointmentID)
	if err != nil {
		return "", err
	}

	switch participantID {
	case doctorID:
		return RoleDoctor, nil
	case patientID:
		return RolePatient, nil
	default:
		return "", ErrDenied
	}
}
