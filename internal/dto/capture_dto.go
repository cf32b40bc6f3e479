package dto

const (
	SessionEventTranscript = "transcript"
	SessionEventState      = "state"
	SessionEventNotesReady = "notes_ready"
	SessionEventError      = "error"
)

// SessionEvent is pushed to every websocket client watching a session.
type SessionEvent struct {
	Type      string         `json:"type"`
	SessionId string         `json:"session_id"`
	Text      string         `json:"text,omitempty"`
	State     string         `json:"state,omitempty"`
	Notes     *NotesResponse `json:"notes,omitempty"`
	Message   string         `json:"message,omitempty"`
}

const (
	CaptureControlStart = "start"
	CaptureControlStop  = "stop"
)

// CaptureControlMessage is a text frame on the capture socket. Audio arrives
// as binary frames of float32 little-endian samples.
type CaptureControlMessage struct {
	Type string `json:"type" validate:"required,oneof=start stop"`
}
