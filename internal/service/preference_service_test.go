package service

import (
	"context"
	"testing"
	"time"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceServiceToggleAndReplace(t *testing.T) {
	repo := memory.NewSessionRepository(time.Hour)
	st := repo.Create()
	svc := NewPreferenceService(repo)
	ctx := context.Background()

	prefs, err := svc.Show(ctx, st.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"definitions", "exam-relevant-points"}, prefs.HighlightPriority)

	prefs, err = svc.TogglePriority(ctx, st.Id, &dto.TogglePriorityRequest{Priority: "formulas"})
	require.NoError(t, err)
	assert.Contains(t, prefs.HighlightPriority, "formulas")

	prefs, err = svc.TogglePriority(ctx, st.Id, &dto.TogglePriorityRequest{Priority: "definitions"})
	require.NoError(t, err)
	assert.NotContains(t, prefs.HighlightPriority, "definitions")

	prefs, err = svc.Replace(ctx, st.Id, &dto.PreferencesRequest{
		LearningStyle:     "visual",
		NoteDepth:         "brief",
		Tone:              "simplified",
		Structure:         "outline",
		HighlightPriority: []string{"examples", "examples"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"examples"}, prefs.HighlightPriority)

	stored, err := svc.Show(ctx, st.Id)
	require.NoError(t, err)
	assert.Equal(t, "visual", stored.LearningStyle)
	assert.Equal(t, "outline", stored.Structure)
}
