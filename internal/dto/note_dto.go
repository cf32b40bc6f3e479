package dto

import "ai-lecture-notes-be/internal/entity"

type SynthesizeNotesRequest struct {
	// Transcript is optional; without it notes come from the resources alone.
	Transcript string `json:"transcript"`
}

type NotesResponse struct {
	Mode                string               `json:"mode,omitempty"`
	Notes               *entity.NoteDocument `json:"notes"`
	Transcript          string               `json:"transcript"`
	TranscriptTruncated bool                 `json:"transcript_truncated,omitempty"`
	ResourcesTruncated  bool                 `json:"resources_truncated,omitempty"`
}

type MarkdownNotesResponse struct {
	Markdown string `json:"markdown"`
}
