package dto

import "time"

type CreateSessionResponse struct {
	Id        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowSessionResponse struct {
	Id               string    `json:"id"`
	CaptureState     string    `json:"capture_state"`
	ResourceCount    int       `json:"resource_count"`
	HasNotes         bool      `json:"has_notes"`
	ChatLength       int       `json:"chat_length"`
	QuestionInFlight bool      `json:"question_in_flight"`
	CreatedAt        time.Time `json:"created_at"`
}
