package eventbus

import (
	"XuBank/internal/core/ports"
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// queueSize bounds how far a subscriber may fall behind before Publish blocks.
const queueSize = 256

// ErrClosed is returned by Publish once the bus has been closed.
var ErrClosed = errors.New("event bus closed")

type delivery struct {
	ctx   context.Context
	event ports.Event
}

// subscription is one handler with its own queue and worker, so a
// subscriber sees events in publish order.
type subscription struct {
	handler ports.EventHandler
	queue   chan delivery
}

// inMemoryEventBus implements the ports.EventBus interface
type inMemoryEventBus struct {
	log         zerolog.Logger
	subscribers map[string][]*subscription
	all         []*subscription
	mu          sync.RWMutex
	closed      bool
	pending     sync.WaitGroup
	workers     sync.WaitGroup
}

// NewInMemoryEventBus creates a new, empty event bus
func NewInMemoryEventBus(baseLogger *zerolog.Logger) ports.EventBus {
	return &inMemoryEventBus{
		log:         baseLogger.With().Str("component", "in_memory_bus").Logger(),
		subscribers: make(map[string][]*subscription),
	}
}

// Publish queues the event for every subscriber of topic and returns
// without waiting for the handlers. It blocks only while a subscriber's
// queue is full.
func (b *inMemoryEventBus) Publish(ctx context.Context, topic string, data any) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	subs, ok := b.subscribers[topic]
	if !ok {
		b.log.Debug().Str("topic", topic).Msg("Published event with no subscribers")
		return nil
	}

	// Detached from the publisher's context so a finished request does not
	// cancel its audit trail.
	d := delivery{
		ctx:   context.WithoutCancel(ctx),
		event: ports.Event{Topic: topic, Data: data},
	}
	for _, sub := range subs {
		b.pending.Add(1)
		sub.queue <- d
	}

	b.log.Debug().Str("topic", topic).Int("handlers", len(subs)).Msg("Event published")
	return nil
}

// Subscribe registers a handler for a specific topic
func (b *inMemoryEventBus) Subscribe(topic string, handler ports.EventHandler) {
	b.SubscribeTopics([]string{topic}, handler)
}

// SubscribeTopics registers one handler for several topics. Events of all
// of them reach the handler in the order they were published.
func (b *inMemoryEventBus) SubscribeTopics(topics []string, handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.log.Warn().Strs("topics", topics).Msg("Subscribe on closed bus ignored")
		return
	}

	sub := &subscription{handler: handler, queue: make(chan delivery, queueSize)}
	for _, topic := range topics {
		b.subscribers[topic] = append(b.subscribers[topic], sub)
	}
	b.all = append(b.all, sub)

	b.workers.Add(1)
	go b.run(sub)

	b.log.Info().Strs("topics", topics).Msg("New handler subscribed")
}

func (b *inMemoryEventBus) run(sub *subscription) {
	defer b.workers.Done()
	for d := range sub.queue {
		if err := sub.handler(d.ctx, d.event); err != nil {
			b.log.Error().Err(err).Str("topic", d.event.Topic).Msg("Event handler failed")
		}
		b.pending.Done()
	}
}

// Wait blocks until every event published so far has been handled.
func (b *inMemoryEventBus) Wait() {
	b.pending.Wait()
}

// Close stops accepting events, drains the queues and stops the workers.
func (b *inMemoryEventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, sub := range b.all {
		close(sub.queue)
	}
	b.mu.Unlock()

	b.workers.Wait()
	b.log.Debug().Msg("Event bus closed")
}
