package ports

import "context"

// Audit topics published on the event bus.
const (
	TopicAuditSecurity = "audit.security"
	TopicAuditError    = "audit.error"
)

// Event is a generic wrapper for any event payload
type Event struct {
	Topic string
	Data  any
}

// EventHandler is a function that can handle a specific event
type EventHandler func(ctx context.Context, event Event) error

// EventBus defines the interface for our in-process pub/sub system
type EventBus interface {
	// Publish sends an event to all subscribers of a topic
	Publish(ctx context.Context, topic string, data any) error

	// Subscribe registers a handler for a specific topic
	Subscribe(topic string, handler EventHandler)

	// SubscribeTopics registers one handler for several topics, keeping
	// publish order across all of them.
	SubscribeTopics(topics []string, handler EventHandler)

	// Wait blocks until every event published so far has been handled.
	Wait()

	// Close drains pending events and releases the bus. Publish fails afterwards.
	Close()
}
