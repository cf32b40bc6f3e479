package dto

import "time"

type CreateResourceRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=pdf ppt video"`
}

type ResourceResponse struct {
	Id             string    `json:"id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	CharacterCount int       `json:"character_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type DeleteResourceResponse struct {
	Removed bool `json:"removed"`
}
