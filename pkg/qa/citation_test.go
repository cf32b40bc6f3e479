package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCitations(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []Citation
	}{
		{
			name:   "no citations",
			answer: "I could not find that in the material.",
			want:   []Citation{},
		},
		{
			name:   "all kinds",
			answer: "Heat flows [Lecture]. See [Notes: Second Law] and [Resource: Ch 3 Slides].",
			want: []Citation{
				{Kind: CitationLecture, Raw: "[Lecture]"},
				{Kind: CitationNotes, Target: "Second Law", Raw: "[Notes: Second Law]"},
				{Kind: CitationResource, Target: "Ch 3 Slides", Raw: "[Resource: Ch 3 Slides]"},
			},
		},
		{
			name:   "duplicates collapsed",
			answer: "A [Lecture]. B [Lecture]. C [Notes: X] D [Notes:X]",
			want: []Citation{
				{Kind: CitationLecture, Raw: "[Lecture]"},
				{Kind: CitationNotes, Target: "X", Raw: "[Notes: X]"},
			},
		},
		{
			name:   "targetless notes ignored",
			answer: "See [Notes] and [Resource]",
			want:   []Citation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCitations(tt.answer))
		})
	}
}
