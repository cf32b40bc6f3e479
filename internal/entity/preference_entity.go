package entity

type LearningStyle string

const (
	LearningStyleVisual LearningStyle = "visual"
	LearningStyleText   LearningStyle = "text"
	LearningStyleHybrid LearningStyle = "hybrid"
)

type NoteDepth string

const (
	NoteDepthBrief    NoteDepth = "brief"
	NoteDepthStandard NoteDepth = "standard"
	NoteDepthDetailed NoteDepth = "detailed"
)

type Tone string

const (
	ToneAcademic       Tone = "academic"
	ToneConversational Tone = "conversational"
	ToneSimplified     Tone = "simplified"
)

type Structure string

const (
	StructureOutline   Structure = "outline"
	StructureMindMap   Structure = "mind-map"
	StructureNarrative Structure = "narrative"
)

type HighlightPriority string

const (
	PriorityDefinitions        HighlightPriority = "definitions"
	PriorityExamples           HighlightPriority = "examples"
	PriorityFormulas           HighlightPriority = "formulas"
	PriorityExamRelevantPoints HighlightPriority = "exam-relevant-points"
)

// Preferences configures how notes are synthesized.
type Preferences struct {
	LearningStyle     LearningStyle
	NoteDepth         NoteDepth
	Tone              Tone
	Structure         Structure
	HighlightPriority []HighlightPriority
}

func DefaultPreferences() Preferences {
	return Preferences{
		LearningStyle: LearningStyleHybrid,
		NoteDepth:     NoteDepthStandard,
		Tone:          ToneAcademic,
		Structure:     StructureOutline,
		HighlightPriority: []HighlightPriority{
			PriorityDefinitions,
			PriorityExamRelevantPoints,
		},
	}
}

// Clone returns a copy that shares no slice storage with p.
func (p Preferences) Clone() Preferences {
	c := p
	c.HighlightPriority = append([]HighlightPriority(nil), p.HighlightPriority...)
	return c
}

// HasPriority reports whether priority is currently selected.
func (p Preferences) HasPriority(priority HighlightPriority) bool {
	for _, existing := range p.HighlightPriority {
		if existing == priority {
			return true
		}
	}
	return false
}

// TogglePriority adds priority when absent and removes it when present.
func (p Preferences) TogglePriority(priority HighlightPriority) Preferences {
	next := p.Clone()
	if !p.HasPriority(priority) {
		next.HighlightPriority = append(next.HighlightPriority, priority)
		return next
	}

	kept := make([]HighlightPriority, 0, len(next.HighlightPriority))
	for _, existing := range next.HighlightPriority {
		if existing != priority {
			kept = append(kept, existing)
		}
	}
	next.HighlightPriority = kept
	return next
}
