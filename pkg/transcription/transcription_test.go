package transcription

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"ai-lecture-notes-be/internal/config"
	"ai-lecture-notes-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePCM(t *testing.T) {
	raw := []byte{0x01, 0x00, 0xff, 0x7f}
	frame := Frame{Data: base64.StdEncoding.EncodeToString(raw), MIMEType: PCMMimeType}

	got, err := frame.PCM()
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = Frame{Data: "***"}.PCM()
	assert.Error(t, err)
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("stream reset")
	err := error(&TransportError{Op: "receive", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "transcription receive: stream reset", err.Error())
}

func TestNewTranscriberValidation(t *testing.T) {
	tests := []struct {
		name string
		ai   config.AIConfig
	}{
		{name: "gemini without key", ai: config.AIConfig{TranscriptionProvider: "gemini"}},
		{name: "yandex without credentials", ai: config.AIConfig{TranscriptionProvider: "yandex"}},
		{name: "unknown provider", ai: config.AIConfig{TranscriptionProvider: "whisper"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTranscriber(context.Background(), tt.ai, 16000, logger.NewNopLogger())
			assert.Error(t, err)
		})
	}
}
