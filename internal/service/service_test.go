package service

import (
	"context"
	"sync"
	"time"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/budget"
	"ai-lecture-notes-be/pkg/events"
	"ai-lecture-notes-be/pkg/llm/llmtest"
	"ai-lecture-notes-be/pkg/qa"
	"ai-lecture-notes-be/pkg/synthesis"
)

const notesJSON = `{
	"metadata": {"lecture_title": "Thermodynamics", "date": "2025-03-01", "topics_covered": ["entropy"]},
	"notes": {"sections": [{"title": "Entropy", "content": "A measure of disorder.", "references": [{"source_type": "pdf", "source_title": "Ch1", "context": "p. 4"}]}]},
	"summary": {"key_takeaways": ["Entropy never decreases"], "exam_focus_points": []}
}`

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEvents) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEvents) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.EventType())
	}
	return types
}

// recordingPublisher captures session events instead of using the bus.
type recordingPublisher struct {
	ch chan dto.SessionEvent
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{ch: make(chan dto.SessionEvent, 64)}
}

func (p *recordingPublisher) Publish(context.Context, []byte) error { return nil }

func (p *recordingPublisher) PublishSessionEvent(_ context.Context, e dto.SessionEvent) error {
	p.ch <- e
	return nil
}

// next returns the next event of type eventType, skipping others.
func (p *recordingPublisher) next(eventType string) (dto.SessionEvent, bool) {
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-p.ch:
			if e.Type == eventType {
				return e, true
			}
		case <-deadline:
			return dto.SessionEvent{}, false
		}
	}
}

func newSynthesisEngine(provider *llmtest.FakeProvider) *synthesis.Engine {
	return synthesis.NewEngine(provider, budget.SynthesisLimits(), time.Minute, logger.NewNopLogger())
}

func newQAEngine(provider *llmtest.FakeProvider) *qa.Engine {
	return qa.NewEngine(provider, budget.QALimits(), time.Minute, logger.NewNopLogger())
}
