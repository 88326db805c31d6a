package consult

import (
	"errors"
	"fmt"
)

var (
	// ErrDenied - join attempted by a participant who is neither the
	// assigned doctor nor the assigned patient.
	ErrDenied = errors.New("participant is not party to this appointment")

	// ErrUnauthorized - send attempted on a channel the connection never
	// joined, or with an appointment id that does not match its channel.
	ErrUnauthorized = errors.New("connection is not joined to this channel")

	// ErrInvalidContent - empty or whitespace-only message body.
	ErrInvalidContent = errors.New("message content is empty")

	// ErrNotFound - referenced appointment does not exist.
	ErrNotFound = errors.New("appointment not found")
)

// PersistenceError wraps a Message Store write failure. It is reported to
// the sending connection only and never broadcast.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist message: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
