package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/ports"
)

// AccessTopic is the topic access events are published to.
const AccessTopic = "docgate.access"

// WatermillPublisher implements the EventPublisher port on a Watermill
// message publisher.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a publisher on the default access topic.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     AccessTopic,
	}
}

// PublishAccess publishes an access event.
func (p *WatermillPublisher) PublishAccess(ctx context.Context, ev core.AccessEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
