// Package delivery defines the transports that expose the route planner.
package delivery

import "context"

// Delivery is a long-running transport started by the composition root.
type Delivery interface {
	// Serve blocks until the transport stops
	Serve(ctx context.Context) error
}
