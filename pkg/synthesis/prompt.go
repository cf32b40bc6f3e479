package synthesis

import (
	"strings"

	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/pkg/budget"
)

type Mode string

const (
	// ModeLecture synthesizes from a captured transcript, with resources as support.
	ModeLecture Mode = "lecture"
	// ModeResourcesOnly synthesizes from the library alone.
	ModeResourcesOnly Mode = "resources_only"
)

const (
	lectureObjective   = "Objective: Transform the lecture transcript into structured notes."
	resourcesObjective = "Objective: No lecture transcript is available. Build structured notes from the user resources alone and rely on them as the only source material."
)

// PromptBuilder assembles the synthesis request text.
type PromptBuilder struct {
	mode        Mode
	context     budget.Context
	preferences entity.Preferences
}

func NewPromptBuilder(mode Mode, ctx budget.Context, preferences entity.Preferences) *PromptBuilder {
	return &PromptBuilder{
		mode:        mode,
		context:     ctx,
		preferences: preferences,
	}
}

func (b *PromptBuilder) Build() string {
	var prompt strings.Builder

	b.writePreamble(&prompt)
	b.writeTranscript(&prompt)
	b.writeResources(&prompt)
	b.writePreferences(&prompt)
	b.writeOutputRules(&prompt)

	return prompt.String()
}

func (b *PromptBuilder) writePreamble(prompt *strings.Builder) {
	prompt.WriteString("Role: AI Academic Note-Taking System\n")
	if b.mode == ModeResourcesOnly {
		prompt.WriteString(resourcesObjective)
	} else {
		prompt.WriteString(lectureObjective)
	}
	prompt.WriteString("\n\n")
}

func (b *PromptBuilder) writeTranscript(prompt *strings.Builder) {
	if b.mode == ModeResourcesOnly {
		return
	}
	prompt.WriteString("Lecture Transcript:\n")
	prompt.WriteString(b.context.Transcript)
	prompt.WriteString("\n\n")
}

func (b *PromptBuilder) writeResources(prompt *strings.Builder) {
	prompt.WriteString("User Resources:\n")
	if b.context.Resources == "" {
		prompt.WriteString("(none)")
	} else {
		prompt.WriteString(b.context.Resources)
	}
	prompt.WriteString("\n\n")
}

func (b *PromptBuilder) writePreferences(prompt *strings.Builder) {
	p := b.preferences
	priorities := make([]string, len(p.HighlightPriority))
	for i, priority := range p.HighlightPriority {
		priorities[i] = string(priority)
	}

	prompt.WriteString("User Preferences:\n")
	prompt.WriteString("Style: " + string(p.LearningStyle) + "\n")
	prompt.WriteString("Depth: " + string(p.NoteDepth) + "\n")
	prompt.WriteString("Tone: " + string(p.Tone) + "\n")
	prompt.WriteString("Structure: " + string(p.Structure) + "\n")
	prompt.WriteString("Priorities: " + strings.Join(priorities, ", ") + "\n\n")
}

func (b *PromptBuilder) writeOutputRules(prompt *strings.Builder) {
	prompt.WriteString("Output:\n")
	prompt.WriteString("Respond with a single JSON object matching the response schema.\n")
	prompt.WriteString("Every reference source_type must be one of pdf, ppt, video or lecture.\n")
	prompt.WriteString("Cite a resource by its exact title in source_title.\n")
}
