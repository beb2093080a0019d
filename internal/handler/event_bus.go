// internal/handler/event_bus.go
package handler

import (
	"go.uber.org/zap"

	"pos-print-service/internal/service"
)

// EventBus decouples the print path from the websocket fan-out. Publishing
// never blocks; when the buffer is full the event is dropped.
type EventBus struct {
	events chan service.JobEvent
	logger *zap.Logger
}

// NewEventBus creates a new event bus
func NewEventBus(logger *zap.Logger) *EventBus {
	return &EventBus{
		events: make(chan service.JobEvent, 1000),
		logger: logger,
	}
}

// Start drains the bus, calling sink for every event. Runs until the bus
// channel is closed.
func (eb *EventBus) Start(sink func(service.JobEvent)) {
	for event := range eb.events {
		sink(event)
	}
}

// Publish publishes a job event
func (eb *EventBus) Publish(event service.JobEvent) {
	select {
	case eb.events <- event:
	default:
		if eb.logger != nil {
			eb.logger.Warn("Event bus full, dropping event",
				zap.String("job", event.JobName),
				zap.String("status", event.Status),
			)
		}
	}
}
