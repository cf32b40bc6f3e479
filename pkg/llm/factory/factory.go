package factory

import (
	"context"
	"fmt"

	"ai-lecture-notes-be/internal/config"
	"ai-lecture-notes-be/pkg/llm"
	"ai-lecture-notes-be/pkg/llm/gemini"
	"ai-lecture-notes-be/pkg/llm/huggingface"
	"ai-lecture-notes-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured generation backend wrapped with tracing.
func NewLLMProvider(ctx context.Context, cfg config.AIConfig) (llm.LLMProvider, error) {
	var provider llm.LLMProvider

	switch cfg.LLMProvider {
	case "gemini":
		p, err := gemini.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		provider = p
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		provider = ollama.NewOllamaProvider(baseURL, cfg.LLMModel)
	case "huggingface":
		provider = huggingface.NewHuggingFaceProvider(cfg.HuggingFaceKey, "", cfg.LLMModel)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return llm.NewTracedProvider(provider, cfg.LLMProvider), nil
}
