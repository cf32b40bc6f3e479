package service

import (
	"context"
	"encoding/json"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// SessionNotifier delivers an encoded session event to the session's clients.
type SessionNotifier interface {
	SendToSession(sessionId string, data []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	notifier  SessionNotifier
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	notifier SessionNotifier,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		notifier:  notifier,
		logger:    logger,
	}
}

// Consume forwards session events to the notifier until ctx is done.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event dto.SessionEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil || event.SessionId == "" {
		cs.logger.Warn("CONSUMER", "Dropping malformed session event", map[string]interface{}{
			"message_id": msg.UUID,
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	cs.notifier.SendToSession(event.SessionId, msg.Payload)
	msg.Ack()
}
