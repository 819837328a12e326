package messaging

import (
	"context"
	"testing"
	"time"

	contractsv1 "venuenouveau/contracts/gen/events/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToTopicSubscribers(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan contractsv1.Envelope, 1)
	require.NoError(t, bus.Subscribe(ctx, "cms.pricing_package.approved", "test", func(_ context.Context, event contractsv1.Envelope) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, "cms.pricing_package.created", contractsv1.Envelope{EventID: "ignored"}))
	require.NoError(t, bus.Publish(ctx, "cms.pricing_package.approved", contractsv1.Envelope{EventID: "evt-1"}))

	select {
	case event := <-received:
		assert.Equal(t, "evt-1", event.EventID)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestBusRemovesSubscriberOnCancel(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.Subscribe(ctx, "topic", "test", func(context.Context, contractsv1.Envelope) error { return nil }))
	cancel()

	assert.Eventually(t, func() bool {
		bus.mu.RLock()
		defer bus.mu.RUnlock()
		return len(bus.subscribers["topic"]) == 0
	}, time.Second, 10*time.Millisecond)
}
