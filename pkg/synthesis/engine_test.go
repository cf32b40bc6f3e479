package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/budget"
	"ai-lecture-notes-be/pkg/llm/llmtest"
	"ai-lecture-notes-be/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validNotes = `{
	"metadata": {"lecture_title": "Classical Mechanics", "date": "today", "topics_covered": ["Newton"]},
	"notes": {"sections": [{"title": "Laws", "content": "F = ma", "references": [{"source_type": "pdf", "source_title": "Ch1", "context": "intro"}]}]},
	"summary": {"key_takeaways": ["Force causes acceleration"], "exam_focus_points": []}
}`

func newEngine(provider *llmtest.FakeProvider) *Engine {
	return NewEngine(provider, budget.SynthesisLimits(), time.Minute, logger.NewNopLogger())
}

func TestSynthesizeRejectsEmptyInputWithoutCalling(t *testing.T) {
	provider := &llmtest.FakeProvider{Response: validNotes}
	st := session.New("s1")

	_, err := newEngine(provider).Synthesize(context.Background(), st, "")

	var vErr *session.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, provider.CallCount())
	assert.False(t, st.HasNotes())
}

func TestSynthesizeResourcesOnly(t *testing.T) {
	provider := &llmtest.FakeProvider{Response: validNotes}
	st := session.New("s1")
	st.AddResource(entity.Resource{Id: "r1", Type: entity.ResourceTypePdf, Title: "Ch1", Content: "Newton's laws..."})

	res, err := newEngine(provider).Synthesize(context.Background(), st, "  ")

	require.NoError(t, err)
	assert.Equal(t, ModeResourcesOnly, res.Mode)
	assert.Equal(t, 1, provider.CallCount())

	prompt := provider.LastPrompt()
	assert.Contains(t, prompt, resourcesObjective)
	assert.NotContains(t, prompt, lectureObjective)
	assert.NotContains(t, prompt, "Lecture Transcript:")
	assert.Contains(t, prompt, "Title: Ch1\nContent: Newton's laws...")
	assert.NotNil(t, provider.Options[0].ResponseSchema)

	doc, transcript := st.Notes()
	assert.Same(t, res.Notes, doc)
	assert.Equal(t, "Classical Mechanics", doc.Metadata.LectureTitle)
	assert.Empty(t, transcript)
}

func TestSynthesizeLecturePrompt(t *testing.T) {
	provider := &llmtest.FakeProvider{Response: validNotes}
	st := session.New("s1")

	res, err := newEngine(provider).Synthesize(context.Background(), st, "today we cover entropy")

	require.NoError(t, err)
	assert.Equal(t, ModeLecture, res.Mode)
	prompt := provider.LastPrompt()
	assert.Contains(t, prompt, lectureObjective)
	assert.Contains(t, prompt, "Lecture Transcript:\ntoday we cover entropy")
	assert.Contains(t, prompt, "Priorities: definitions, exam-relevant-points")
	assert.Contains(t, prompt, "User Resources:\n(none)")

	_, transcript := st.Notes()
	assert.Equal(t, "today we cover entropy", transcript)
}

func TestSynthesizeStoresTruncatedTranscript(t *testing.T) {
	provider := &llmtest.FakeProvider{Response: validNotes}
	st := session.New("s1")
	engine := NewEngine(provider, budget.SynthesisLimits().WithCeilings(5, 0, 0, 0), 0, logger.NewNopLogger())

	res, err := engine.Synthesize(context.Background(), st, "abcdefghij")

	require.NoError(t, err)
	assert.Equal(t, "fghij"+budget.SynthesisTranscriptMarker, res.Transcript)
	_, stored := st.Notes()
	assert.Equal(t, res.Transcript, stored)
}

func TestSynthesizeFailureKeepsPreviousNotes(t *testing.T) {
	tests := []struct {
		name     string
		provider *llmtest.FakeProvider
	}{
		{name: "parse failure", provider: &llmtest.FakeProvider{Response: "not json at all"}},
		{name: "network failure", provider: &llmtest.FakeProvider{Err: errors.New("connection reset")}},
		{name: "empty response", provider: &llmtest.FakeProvider{Response: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := session.New("s1")
			previous := &entity.NoteDocument{Metadata: entity.NoteMetadata{LectureTitle: "N0"}}
			st.ReplaceNotes(previous, "old transcript")

			_, err := newEngine(tt.provider).Synthesize(context.Background(), st, "new lecture")

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.True(t, strings.HasPrefix(reqErr.UserMessage(), "Note generation failed: "))

			doc, transcript := st.Notes()
			assert.Same(t, previous, doc)
			assert.Equal(t, "N0", doc.Metadata.LectureTitle)
			assert.Equal(t, "old transcript", transcript)
		})
	}
}

func TestSynthesizeAppliesTimeout(t *testing.T) {
	provider := &llmtest.FakeProvider{
		Hook: func(ctx context.Context, prompt string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	engine := NewEngine(provider, budget.SynthesisLimits(), 10*time.Millisecond, logger.NewNopLogger())

	_, err := engine.Synthesize(context.Background(), session.New("s1"), "lecture")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
