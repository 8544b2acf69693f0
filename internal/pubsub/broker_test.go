package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	b.Publish(RenderStartEvent, "pass-1")

	select {
	case ev := <-ch:
		require.Equal(t, RenderStartEvent, ev.Type)
		require.Equal(t, "pass-1", ev.Payload)
		require.False(t, ev.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_MultipleSubscribersEachReceive(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1 := b.Subscribe(ctx)
	ch2 := b.Subscribe(ctx)
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(RenderEndEvent, 42)

	for _, ch := range []<-chan Event[int]{ch1, ch2} {
		select {
		case ev := <-ch:
			require.Equal(t, 42, ev.Payload)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroker_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	b := NewBrokerWithBuffer[int](1)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)

	// Second publish must not block even though nobody is draining.
	done := make(chan struct{})
	go func() {
		b.Publish(DataChangedEvent, 1)
		b.Publish(DataChangedEvent, 2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full subscriber buffer")
	}

	ev := <-ch
	require.Equal(t, 1, ev.Payload)
}

func TestBroker_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	b := NewBroker[string]()
	b.Close()

	ch := b.Subscribe(context.Background())
	_, ok := <-ch
	require.False(t, ok, "channel from closed broker should be closed")
}

func TestBroker_CloseIsIdempotent(t *testing.T) {
	b := NewBroker[string]()
	b.Close()
	b.Close() // must not panic
}

func TestBroker_ContextCancelRemovesSubscriber(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		return b.SubscriberCount() == 0
	}, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok, "subscriber channel should be closed after cancel")
}
