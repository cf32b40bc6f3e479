package contract

import (
	"ai-lecture-notes-be/pkg/session"
)

type SessionRepository interface {
	Create() *session.State
	// Get returns session.ErrSessionNotFound for unknown or expired ids.
	Get(id string) (*session.State, error)
	Delete(id string)
	// OnEvict registers fn to run when a session expires or is deleted.
	OnEvict(fn func(id string))
}
