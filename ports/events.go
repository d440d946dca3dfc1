package ports

import "context"

// EventPublisher publishes verification outcomes to notify other components
type EventPublisher interface {
	PublishOutcome(ctx context.Context, username string, outcome string, reason string) error
}
