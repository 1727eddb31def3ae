package service

import (
	"context"
	"time"
)

// RoutesPlannedEvent announces a completed route plan to downstream consumers
type RoutesPlannedEvent struct {
	EventID      string                  `json:"event_id"`
	RequestID    string                  `json:"request_id,omitempty"` // For distributed tracing
	VehicleCount int                     `json:"vehicle_count"`
	StopCount    int                     `json:"stop_count"`
	Routes       map[string][][2]float64 `json:"routes"` // Vehicle index -> closed tour of [lat, long]
	PlannedAt    time.Time               `json:"planned_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishRoutesPlanned publishes a routes planned event
	PublishRoutesPlanned(ctx context.Context, event *RoutesPlannedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
