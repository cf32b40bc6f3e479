package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	PublishSessionEvent(ctx context.Context, event dto.SessionEvent) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.pubSub.Publish(ps.topicName, msg)
}

func (ps *publisherService) PublishSessionEvent(ctx context.Context, event dto.SessionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}
	return ps.Publish(ctx, payload)
}

// emit sends a domain event. The bus is auxiliary, so failures are only logged.
func emit(ctx context.Context, publisher events.Publisher, log logger.ILogger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

// notify pushes an event to the session's websocket clients.
func notify(ctx context.Context, publisher IPublisherService, log logger.ILogger, event dto.SessionEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishSessionEvent(ctx, event); err != nil {
		log.Warn("EVENTS", "Failed to publish session event", map[string]interface{}{
			"session_id": event.SessionId,
			"type":       event.Type,
			"error":      err.Error(),
		})
	}
}
