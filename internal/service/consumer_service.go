package service

import (
	"context"
	"encoding/json"
	"notes-api/internal/dto"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2/log"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the note activity log: it reads note events from the
// topic and records them.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	onEvent    func(dto.NoteEventMessage)
}

func NewConsumerService(subscriber message.Subscriber, topicName string, onEvent func(dto.NoteEventMessage)) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		onEvent:    onEvent,
	}
}

// Consume subscribes and processes messages in the background until ctx is
// canceled or the subscriber is closed.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	defer func() {
		if e := recover(); e != nil {
			log.Errorf("[Consumer] panic while handling message %s: %v", msg.UUID, e)
			msg.Ack()
		}
	}()

	var event dto.NoteEventMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		// Redelivering a payload that cannot be decoded would loop forever.
		log.Errorf("[Consumer] dropping message %s: %v | payload: %s", msg.UUID, err, string(msg.Payload))
		msg.Ack()
		return
	}

	log.Infof("[Activity] %s note=%d at=%s", event.Type, event.NoteId, event.OccurredAt.Format(time.RFC3339Nano))

	if cs.onEvent != nil {
		cs.onEvent(event)
	}

	msg.Ack()
}
