package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracedProvider records a span per generation call.
// With no tracer provider installed the spans are no-ops.
type TracedProvider struct {
	next   LLMProvider
	name   string
	tracer trace.Tracer
}

var _ LLMProvider = (*TracedProvider)(nil)

func NewTracedProvider(next LLMProvider, name string) *TracedProvider {
	return &TracedProvider{
		next:   next,
		name:   name,
		tracer: otel.Tracer("ai-lecture-notes-be/llm"),
	}
}

func (p *TracedProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	ctx, span := p.tracer.Start(ctx, "llm.chat", trace.WithAttributes(
		attribute.String("llm.provider", p.name),
		attribute.Int("llm.messages", len(history)),
	))
	defer span.End()

	out, err := p.next.Chat(ctx, history, options...)
	record(span, out, err)
	return out, err
}

func (p *TracedProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	ctx, span := p.tracer.Start(ctx, "llm.generate", trace.WithAttributes(
		attribute.String("llm.provider", p.name),
		attribute.Int("llm.prompt_chars", len(prompt)),
		attribute.Bool("llm.structured", Apply(Options{}, options...).ResponseSchema != nil),
	))
	defer span.End()

	out, err := p.next.Generate(ctx, prompt, options...)
	record(span, out, err)
	return out, err
}

func record(span trace.Span, out string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(attribute.Int("llm.response_chars", len(out)))
}
