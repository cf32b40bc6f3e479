package session

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoNotes          = errors.New("no notes available for this session")
	ErrQuestionInFlight = errors.New("a question is already being answered")
	ErrCaptureBusy      = errors.New("capture session is busy")
)

// ValidationError is returned for local input problems detected before any I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
