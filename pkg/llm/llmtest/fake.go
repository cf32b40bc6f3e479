// Package llmtest provides an in-memory LLMProvider for tests.
package llmtest

import (
	"context"
	"sync"

	"ai-lecture-notes-be/pkg/llm"
)

// FakeProvider returns canned responses and records every call.
type FakeProvider struct {
	mu       sync.Mutex
	Response string
	Err      error
	Calls    int
	Prompts  []string
	Options  []llm.Options

	// Hook, when set, runs before the canned response is returned.
	Hook func(ctx context.Context, prompt string) (string, error)
}

var _ llm.LLMProvider = (*FakeProvider)(nil)

func (f *FakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	prompt := ""
	if len(history) > 0 {
		prompt = history[len(history)-1].Content
	}
	return f.Generate(ctx, prompt, opts...)
}

func (f *FakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	f.Calls++
	f.Prompts = append(f.Prompts, prompt)
	f.Options = append(f.Options, llm.Apply(llm.Options{}, opts...))
	hook, resp, err := f.Hook, f.Response, f.Err
	f.mu.Unlock()

	if hook != nil {
		return hook(ctx, prompt)
	}
	return resp, err
}

func (f *FakeProvider) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

func (f *FakeProvider) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Prompts) == 0 {
		return ""
	}
	return f.Prompts[len(f.Prompts)-1]
}
