package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/repository/memory"
	"ai-lecture-notes-be/pkg/events"
	"ai-lecture-notes-be/pkg/llm/llmtest"
	"ai-lecture-notes-be/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatServiceAsk(t *testing.T) {
	tests := []struct {
		name          string
		provider      *llmtest.FakeProvider
		wantFailed    bool
		wantCitations int
	}{
		{
			name:          "answer with citations",
			provider:      &llmtest.FakeProvider{Response: "Entropy grows [Lecture] as shown in [Notes: Entropy]."},
			wantCitations: 2,
		},
		{
			name:       "generation failure becomes a reply",
			provider:   &llmtest.FakeProvider{Err: errors.New("quota exceeded")},
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewSessionRepository(time.Hour)
			st := repo.Create()
			st.ReplaceNotes(&entity.NoteDocument{Metadata: entity.NoteMetadata{LectureTitle: "Thermo"}}, "entropy grows")
			evts := &recordingEvents{}
			svc := NewChatService(repo, newQAEngine(tt.provider), evts, logger.NewNopLogger())

			res, err := svc.Ask(context.Background(), st.Id, &dto.AskQuestionRequest{Question: "What is entropy?"})

			require.NoError(t, err)
			assert.Equal(t, tt.wantFailed, res.Failed)
			assert.Len(t, res.Citations, tt.wantCitations)
			assert.Equal(t, string(entity.ChatRoleAssistant), res.Reply.Role)
			assert.NotEmpty(t, res.Reply.Content)
			assert.Equal(t, []string{events.QuestionAnswered}, evts.Types())

			history, err := svc.History(context.Background(), st.Id)
			require.NoError(t, err)
			require.Len(t, history, 2)
			assert.Equal(t, "What is entropy?", history[0].Content)
		})
	}
}

func TestChatServiceAskWithoutNotes(t *testing.T) {
	repo := memory.NewSessionRepository(time.Hour)
	st := repo.Create()
	provider := &llmtest.FakeProvider{Response: "unused"}
	evts := &recordingEvents{}
	svc := NewChatService(repo, newQAEngine(provider), evts, logger.NewNopLogger())

	_, err := svc.Ask(context.Background(), st.Id, &dto.AskQuestionRequest{Question: "Anything?"})

	assert.ErrorIs(t, err, session.ErrNoNotes)
	assert.Equal(t, 0, provider.CallCount())
	assert.Empty(t, evts.Types())
}
