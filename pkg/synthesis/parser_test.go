package synthesis

import (
	"testing"

	"ai-lecture-notes-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoteDocument(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, doc *entity.NoteDocument)
	}{
		{
			name: "full document",
			raw: `{
				"metadata": {"lecture_title": "Thermodynamics", "date": "2025-03-01", "topics_covered": ["entropy", "heat"]},
				"notes": {"sections": [{
					"title": "Entropy",
					"content": "Measure of disorder",
					"references": [{"source_type": "PDF", "source_title": "Ch1", "context": "p. 4"}],
					"visual_aids": {"diagrams": ["T-S diagram"], "tables": [["Term", "Meaning"], ["S", "entropy"]]}
				}]},
				"summary": {"key_takeaways": ["Entropy increases"], "exam_focus_points": ["Second law"]}
			}`,
			check: func(t *testing.T, doc *entity.NoteDocument) {
				assert.Equal(t, "Thermodynamics", doc.Metadata.LectureTitle)
				assert.Equal(t, []string{"entropy", "heat"}, doc.Metadata.TopicsCovered)
				require.Len(t, doc.Notes.Sections, 1)
				s := doc.Notes.Sections[0]
				assert.Equal(t, entity.SourceTypePdf, s.References[0].SourceType)
				assert.Equal(t, []string{"T-S diagram"}, s.Diagrams())
				assert.Equal(t, [][]string{{"Term", "Meaning"}, {"S", "entropy"}}, s.Tables())
				assert.Equal(t, []string{"Second law"}, doc.Summary.ExamFocusPoints)
			},
		},
		{
			name: "code fenced",
			raw:  "```json\n{\"metadata\": {\"lecture_title\": \"Fenced\"}}\n```",
			check: func(t *testing.T, doc *entity.NoteDocument) {
				assert.Equal(t, "Fenced", doc.Metadata.LectureTitle)
			},
		},
		{
			name: "missing fields become empty",
			raw:  `{}`,
			check: func(t *testing.T, doc *entity.NoteDocument) {
				assert.Empty(t, doc.Metadata.LectureTitle)
				assert.Empty(t, doc.Notes.Sections)
				assert.Empty(t, doc.Summary.KeyTakeaways)
			},
		},
		{
			name: "null list items are skipped",
			raw:  `{"metadata": {"topics_covered": [null, "heat"]}, "summary": {"key_takeaways": [null, "Entropy increases", null]}}`,
			check: func(t *testing.T, doc *entity.NoteDocument) {
				assert.Equal(t, []string{"heat"}, doc.Metadata.TopicsCovered)
				assert.Equal(t, []string{"Entropy increases"}, doc.Summary.KeyTakeaways)
			},
		},
		{
			name: "mistyped fields are tolerated",
			raw:  `{"metadata": "oops", "notes": {"sections": [{"title": 3, "references": "none"}, "junk"]}, "summary": {"key_takeaways": "single point", "exam_focus_points": [1, {"x": 1}, "two"]}}`,
			check: func(t *testing.T, doc *entity.NoteDocument) {
				require.Len(t, doc.Notes.Sections, 1)
				assert.Equal(t, "3", doc.Notes.Sections[0].Title)
				assert.Empty(t, doc.Notes.Sections[0].References)
				assert.Nil(t, doc.Notes.Sections[0].VisualAids)
				assert.Equal(t, []string{"single point"}, doc.Summary.KeyTakeaways)
				assert.Equal(t, []string{"1", "two"}, doc.Summary.ExamFocusPoints)
			},
		},
		{
			name: "bare section array",
			raw:  `{"notes": [{"title": "Only"}]}`,
			check: func(t *testing.T, doc *entity.NoteDocument) {
				require.Len(t, doc.Notes.Sections, 1)
				assert.Equal(t, "Only", doc.Notes.Sections[0].Title)
			},
		},
		{
			name: "unknown source type kept",
			raw:  `{"notes": {"sections": [{"references": [{"source_type": "website"}]}]}}`,
			check: func(t *testing.T, doc *entity.NoteDocument) {
				assert.Equal(t, entity.ReferenceSourceType("website"), doc.Notes.Sections[0].References[0].SourceType)
			},
		},
		{name: "syntax error", raw: `{"metadata": `, wantErr: true},
		{name: "array top level", raw: `[1, 2]`, wantErr: true},
		{name: "empty", raw: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseNoteDocument(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, doc)
				return
			}
			require.NoError(t, err)
			tt.check(t, doc)
		})
	}
}

func TestRequestErrorUserMessage(t *testing.T) {
	long := make([]rune, 150)
	for i := range long {
		long[i] = 'x'
	}
	err := &RequestError{Cause: assert.AnError}
	assert.Contains(t, err.UserMessage(), "Try reducing the number of uploaded resources.")

	err = &RequestError{Cause: &stringError{string(long)}}
	assert.Equal(t, "Note generation failed: "+string(long[:100])+"... Try reducing the number of uploaded resources.", err.UserMessage())
}

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }
