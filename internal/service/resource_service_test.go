package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/repository/memory"
	"ai-lecture-notes-be/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceServiceLifecycle(t *testing.T) {
	repo := memory.NewSessionRepository(time.Hour)
	st := repo.Create()
	svc := NewResourceService(repo, logger.NewNopLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, st.Id, &dto.CreateResourceRequest{Title: "Ch1", Content: "Kalor dan suhu"})
	require.NoError(t, err)
	assert.Equal(t, "pdf", created.Type)
	assert.Equal(t, 14, created.CharacterCount)

	uploaded, err := svc.Upload(ctx, st.Id, "week2.srt", strings.NewReader("1\n00:00:00,000 --> 00:00:01,000\nhello\n"))
	require.NoError(t, err)
	assert.Equal(t, "video", uploaded.Type)
	assert.Equal(t, "week2.srt", uploaded.Title)

	list, err := svc.List(ctx, st.Id)
	require.NoError(t, err)
	require.Len(t, list, 2)

	removed, err := svc.Delete(ctx, st.Id, created.Id)
	require.NoError(t, err)
	assert.True(t, removed.Removed)

	removed, err = svc.Delete(ctx, st.Id, "unknown")
	require.NoError(t, err)
	assert.False(t, removed.Removed)

	list, err = svc.List(ctx, st.Id)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestResourceServiceRejectsInvalidInput(t *testing.T) {
	repo := memory.NewSessionRepository(time.Hour)
	st := repo.Create()
	svc := NewResourceService(repo, logger.NewNopLogger())
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.CreateResourceRequest
	}{
		{name: "blank title", req: &dto.CreateResourceRequest{Title: "  ", Content: "x"}},
		{name: "blank content", req: &dto.CreateResourceRequest{Title: "Ch1", Content: " "}},
		{name: "unknown type", req: &dto.CreateResourceRequest{Title: "Ch1", Content: "x", Type: "audio"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, st.Id, tt.req)

			var validationErr *session.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	_, err := svc.List(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
