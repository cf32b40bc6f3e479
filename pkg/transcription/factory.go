package transcription

import (
	"context"
	"fmt"

	"ai-lecture-notes-be/internal/config"
	"ai-lecture-notes-be/internal/pkg/logger"
)

func NewTranscriber(ctx context.Context, ai config.AIConfig, sampleRate int, log logger.ILogger) (Transcriber, error) {
	switch ai.TranscriptionProvider {
	case "gemini", "":
		return NewGeminiTranscriber(ctx, ai.GeminiAPIKey, ai.TranscriptionModel, log)
	case "yandex":
		return NewYandexTranscriber(YandexConfig{
			IamToken:   ai.YandexIAMToken,
			FolderID:   ai.YandexFolderID,
			Language:   ai.YandexLanguage,
			SampleRate: int64(sampleRate),
		}, log)
	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", ai.TranscriptionProvider)
	}
}
