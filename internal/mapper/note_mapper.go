package mapper

import (
	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/pkg/synthesis"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToResultResponse(res *synthesis.Result) *dto.NotesResponse {
	if res == nil {
		return nil
	}
	return &dto.NotesResponse{
		Mode:                string(res.Mode),
		Notes:               res.Notes,
		Transcript:          res.Transcript,
		TranscriptTruncated: res.Context.TranscriptTruncated,
		ResourcesTruncated:  res.Context.ResourcesTruncated,
	}
}

func (m *NoteMapper) ToStoredResponse(doc *entity.NoteDocument, transcript string) *dto.NotesResponse {
	return &dto.NotesResponse{
		Notes:      doc,
		Transcript: transcript,
	}
}
