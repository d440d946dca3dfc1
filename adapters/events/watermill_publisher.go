package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/nexauth/digestgate/ports"
)

// AuthEvent represents a verification outcome event
type AuthEvent struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Outcome  string `json:"outcome"`
	Reason   string `json:"reason,omitempty"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     "digestgate.auth",
	}
}

// PublishOutcome publishes a verification outcome event
func (p *WatermillPublisher) PublishOutcome(ctx context.Context, username string, outcome string, reason string) error {
	event := AuthEvent{
		ID:       uuid.New().String(),
		Username: username,
		Outcome:  outcome,
		Reason:   reason,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
