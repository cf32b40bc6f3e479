package dto

type PreferencesRequest struct {
	LearningStyle     string   `json:"learning_style" validate:"required,oneof=visual text hybrid"`
	NoteDepth         string   `json:"note_depth" validate:"required,oneof=brief standard detailed"`
	Tone              string   `json:"tone" validate:"required,oneof=academic conversational simplified"`
	Structure         string   `json:"structure" validate:"required,oneof=outline mind-map narrative"`
	HighlightPriority []string `json:"highlight_priority" validate:"dive,oneof=definitions examples formulas exam-relevant-points"`
}

type TogglePriorityRequest struct {
	Priority string `json:"priority" validate:"required,oneof=definitions examples formulas exam-relevant-points"`
}

type PreferencesResponse struct {
	LearningStyle     string   `json:"learning_style"`
	NoteDepth         string   `json:"note_depth"`
	Tone              string   `json:"tone"`
	Structure         string   `json:"structure"`
	HighlightPriority []string `json:"highlight_priority"`
}
