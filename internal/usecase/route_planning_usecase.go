package usecase

import (
	"context"
	"time"

	"fleetroute/internal/domain/entity"
)

// PlanRoutesInput is one route planning request
type PlanRoutesInput struct {
	Locations []entity.RawLocation
	Vehicles  *int // nil selects the configured default
}

// PlanRoutesResult is a complete route plan
type PlanRoutesResult struct {
	Routes     entity.RouteMap       `json:"-"`
	Vehicles   []entity.RouteSummary `json:"vehicles"`
	StopCount  int                   `json:"stop_count"`
	Iterations int                   `json:"iterations"` // k-means iterations performed
	Converged  bool                  `json:"converged"`  // false when the iteration cap was reached
	Duration   time.Duration         `json:"-"`
}

// RoutePlanningUsecase defines the interface for fleet route planning
type RoutePlanningUsecase interface {
	// PlanRoutes partitions the locations among the vehicles and orders each
	// vehicle's share into a closed tour. It returns a complete plan or an error,
	// never a partial plan.
	PlanRoutes(ctx context.Context, input *PlanRoutesInput) (*PlanRoutesResult, error)
}
