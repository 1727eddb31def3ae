// Package constants holds identifiers shared across layers.
package constants

// Pub/Sub provider names accepted in configuration
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Pub/Sub message attribute keys
const (
	AttributeEventID      = "event_id"
	AttributeRequestID    = "request_id"
	AttributeVehicleCount = "vehicle_count"
)
