package dto

import "time"

type AskQuestionRequest struct {
	Question string `json:"question" validate:"required"`
}

type ChatMessageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CitationResponse struct {
	Kind   string `json:"kind"`
	Target string `json:"target,omitempty"`
	Raw    string `json:"raw"`
}

type AskQuestionResponse struct {
	Reply     ChatMessageResponse `json:"reply"`
	Citations []CitationResponse  `json:"citations"`
	Failed    bool                `json:"failed"`
	Discarded bool                `json:"discarded,omitempty"`
}
