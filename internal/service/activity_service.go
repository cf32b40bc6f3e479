package service

import (
	"context"
	"sync"
	"time"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/events"
	pktNats "ai-lecture-notes-be/pkg/nats"
)

// EventSubscriber is the consuming side of the event bus.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

type IActivityService interface {
	Start(ctx context.Context) error
	Summary(ctx context.Context) *dto.ActivitySummaryResponse
}

// ActivityService consumes the lecture event stream into an activity log
// and running counters per event type.
type ActivityService struct {
	subscriber EventSubscriber
	logger     logger.ILogger

	mu       sync.RWMutex
	counts   map[string]int
	lastSeen map[string]time.Time
}

func NewActivityService(sub EventSubscriber, log logger.ILogger) *ActivityService {
	return &ActivityService{
		subscriber: sub,
		logger:     log,
		counts:     make(map[string]int),
		lastSeen:   make(map[string]time.Time),
	}
}

func (s *ActivityService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, pktNats.Subject(">"), "lecture-activity", s.handleEvent); err != nil {
		s.logger.Error("ActivityService", "Failed to start activity subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("ActivityService", "Listening to lecture events", nil)
	return nil
}

func (s *ActivityService) handleEvent(ctx context.Context, event events.Event) error {
	s.mu.Lock()
	s.counts[event.EventType()]++
	s.lastSeen[event.EventType()] = event.Timestamp()
	s.mu.Unlock()

	s.logger.Info("ActivityService", event.EventType(), event.Payload())
	return nil
}

func (s *ActivityService) Summary(ctx context.Context) *dto.ActivitySummaryResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := &dto.ActivitySummaryResponse{Events: make([]dto.ActivityCountResponse, 0, len(s.counts))}
	for _, eventType := range []string{events.NotesSynthesized, events.QuestionAnswered, events.CaptureEnded} {
		if n, ok := s.counts[eventType]; ok {
			last := s.lastSeen[eventType]
			res.Events = append(res.Events, dto.ActivityCountResponse{Type: eventType, Count: n, LastSeen: &last})
		}
	}
	return res
}
