package mapper

import (
	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/entity"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToResponse(p entity.Preferences) *dto.PreferencesResponse {
	priorities := make([]string, 0, len(p.HighlightPriority))
	for _, hp := range p.HighlightPriority {
		priorities = append(priorities, string(hp))
	}
	return &dto.PreferencesResponse{
		LearningStyle:     string(p.LearningStyle),
		NoteDepth:         string(p.NoteDepth),
		Tone:              string(p.Tone),
		Structure:         string(p.Structure),
		HighlightPriority: priorities,
	}
}

// ToEntity expects a validated request. Duplicate priorities are collapsed.
func (m *PreferenceMapper) ToEntity(req *dto.PreferencesRequest) entity.Preferences {
	p := entity.Preferences{
		LearningStyle:     entity.LearningStyle(req.LearningStyle),
		NoteDepth:         entity.NoteDepth(req.NoteDepth),
		Tone:              entity.Tone(req.Tone),
		Structure:         entity.Structure(req.Structure),
		HighlightPriority: make([]entity.HighlightPriority, 0, len(req.HighlightPriority)),
	}
	for _, raw := range req.HighlightPriority {
		hp := entity.HighlightPriority(raw)
		if !p.HasPriority(hp) {
			p.HighlightPriority = append(p.HighlightPriority, hp)
		}
	}
	return p
}
