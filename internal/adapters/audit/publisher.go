package audit

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

// publisher is the AuditSink the core writes to. It turns each call into a
// domain.AuditEvent and publishes it on the bus; subscribers do the I/O.
type publisher struct {
	bus ports.EventBus
	log zerolog.Logger
}

var _ ports.AuditSink = (*publisher)(nil)

// NewPublisher returns an AuditSink that fans events out through bus.
func NewPublisher(bus ports.EventBus, baseLogger *zerolog.Logger) ports.AuditSink {
	return &publisher{
		bus: bus,
		log: baseLogger.With().Str("component", "audit_publisher").Logger(),
	}
}

func (p *publisher) LogEvent(kind, message string) {
	p.publish(ports.TopicAuditSecurity, domain.NewAuditEvent(kind, message, domain.SeveritySecurity, nil))
}

func (p *publisher) LogError(kind, message string, cause error) {
	p.publish(ports.TopicAuditError, domain.NewAuditEvent(kind, message, domain.SeverityError, cause))
}

func (p *publisher) publish(topic string, ev domain.AuditEvent) {
	if err := p.bus.Publish(context.Background(), topic, ev); err != nil {
		p.log.Error().Err(err).Str("kind", ev.Kind).Msg("Failed to publish audit event")
	}
}

// Subscribe registers handler for both audit topics as one ordered stream.
func Subscribe(bus ports.EventBus, handler ports.EventHandler) {
	bus.SubscribeTopics([]string{ports.TopicAuditSecurity, ports.TopicAuditError}, handler)
}

// eventFrom unwraps the payload published by the publisher.
func eventFrom(event ports.Event) (domain.AuditEvent, bool) {
	ev, ok := event.Data.(domain.AuditEvent)
	return ev, ok
}
