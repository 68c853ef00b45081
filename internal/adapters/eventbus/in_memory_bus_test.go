package eventbus

import (
	"XuBank/internal/core/ports"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventBus_FanOut(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var (
		mu       sync.Mutex
		received []string
	)
	record := func(prefix string) ports.EventHandler {
		return func(ctx context.Context, event ports.Event) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, prefix+":"+event.Data.(string))
			return nil
		}
	}

	bus.Subscribe(ports.TopicAuditSecurity, record("file"))
	bus.Subscribe(ports.TopicAuditSecurity, record("db"))

	require.NoError(t, bus.Publish(t.Context(), ports.TopicAuditSecurity, "LOGIN_FAILED"))
	bus.Wait()

	assert.ElementsMatch(t, []string{"file:LOGIN_FAILED", "db:LOGIN_FAILED"}, received)
}

func TestInMemoryEventBus_NoSubscribers(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	assert.NoError(t, bus.Publish(t.Context(), "nobody.listens", 42))
	bus.Wait()
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var calls atomic.Int32
	bus.Subscribe(ports.TopicAuditError, func(ctx context.Context, event ports.Event) error {
		calls.Add(1)
		return errors.New("disk full")
	})
	bus.Subscribe(ports.TopicAuditError, func(ctx context.Context, event ports.Event) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, bus.Publish(t.Context(), ports.TopicAuditError, "boom"))
	bus.Wait()
	assert.Equal(t, int32(2), calls.Load())
}

func TestInMemoryEventBus_HandlerOutlivesPublisherContext(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	start := make(chan struct{})
	var ctxErr atomic.Value
	bus.Subscribe(ports.TopicAuditSecurity, func(ctx context.Context, event ports.Event) error {
		<-start
		if err := ctx.Err(); err != nil {
			ctxErr.Store(err)
		}
		return nil
	})

	ctx, cancel := context.WithCancel(t.Context())
	require.NoError(t, bus.Publish(ctx, ports.TopicAuditSecurity, "x"))
	cancel()
	close(start)
	bus.Wait()

	assert.Nil(t, ctxErr.Load())
}

func TestInMemoryEventBus_KeepsPublishOrderAcrossTopics(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)
	t.Cleanup(bus.Close)

	var received []int
	bus.SubscribeTopics([]string{ports.TopicAuditSecurity, ports.TopicAuditError}, func(ctx context.Context, event ports.Event) error {
		received = append(received, event.Data.(int))
		return nil
	})

	const n = 500
	for i := range n {
		topic := ports.TopicAuditSecurity
		if i%3 == 0 {
			topic = ports.TopicAuditError
		}
		require.NoError(t, bus.Publish(t.Context(), topic, i))
	}
	bus.Wait()

	require.Len(t, received, n)
	for i, v := range received {
		require.Equal(t, i, v)
	}
}

func TestInMemoryEventBus_CloseDrainsQueue(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	release := make(chan struct{})
	var calls atomic.Int32
	bus.Subscribe(ports.TopicAuditSecurity, func(ctx context.Context, event ports.Event) error {
		<-release
		calls.Add(1)
		return nil
	})

	for range 10 {
		require.NoError(t, bus.Publish(t.Context(), ports.TopicAuditSecurity, "x"))
	}
	close(release)
	bus.Close()

	assert.Equal(t, int32(10), calls.Load())
	assert.ErrorIs(t, bus.Publish(t.Context(), ports.TopicAuditSecurity, "late"), ErrClosed)
	bus.Close()
}
