// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// RenderStartEvent fires when a render pass begins.
	RenderStartEvent EventType = "render:start"
	// RenderEndEvent fires when a render pass completes.
	RenderEndEvent EventType = "render:end"
	// DataChangedEvent fires when the grid's backing data is replaced.
	DataChangedEvent EventType = "data:changed"
	// ConfigChangedEvent fires when the config file changes on disk.
	ConfigChangedEvent EventType = "config:changed"
	// CreatedEvent is a generic creation event (log entries use this).
	CreatedEvent EventType = "created"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
