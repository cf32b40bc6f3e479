package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaJSONSchema(t *testing.T) {
	s := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"tags": {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required: []string{"tags"},
	}

	got := s.JSONSchema()

	assert.Equal(t, "object", got["type"])
	assert.Equal(t, []string{"tags"}, got["required"])
	props := got["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])
	assert.Nil(t, (*Schema)(nil).JSONSchema())
}

func TestApply(t *testing.T) {
	schema := &Schema{Type: TypeObject}
	got := Apply(Options{Model: "base", Temperature: 0.7}, WithModel("override"), WithResponseSchema(schema), WithMaxTokens(10))

	assert.Equal(t, "override", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 10, got.MaxTokens)
	assert.Same(t, schema, got.ResponseSchema)
}

type stubProvider struct {
	out string
	err error
}

func (s stubProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return s.out, s.err
}

func (s stubProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return s.out, s.err
}

func TestTracedProviderPassesThrough(t *testing.T) {
	ok := NewTracedProvider(stubProvider{out: "hello"}, "stub")
	got, err := ok.Generate(context.Background(), "hi")
	assert.NoError(t, err)
	assert.Equal(t, "hello", got)

	boom := errors.New("boom")
	failing := NewTracedProvider(stubProvider{err: boom}, "stub")
	_, err = failing.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, boom)
}
