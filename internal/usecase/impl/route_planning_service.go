package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fleetroute/config"
	deliverycontext "fleetroute/internal/delivery/context"
	"fleetroute/internal/domain/entity"
	domainerrors "fleetroute/internal/domain/errors"
	"fleetroute/internal/domain/service"
	"fleetroute/internal/infra/metrics"
	"fleetroute/internal/infra/routing/fleet"
	"fleetroute/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// fallback defaults to keep planning functional when config is missing/invalid
const (
	defaultVehicles    = 5
	defaultMaxVehicles = 100
	defaultMaxStops    = 10000
	defaultTourWorkers = 4
)

// RoutePlanningServiceParams holds dependencies for the route planner, injected by Fx
type RoutePlanningServiceParams struct {
	fx.In

	Config    *config.RoutingConfig
	Logger    *slog.Logger
	Metrics   *metrics.PlannerMetrics `optional:"true"`
	Publisher service.EventPublisher  `optional:"true"`
}

type tourBuilder interface {
	Build(cluster entity.Cluster) entity.Tour
}

// routePlanningService implements the RoutePlanningUsecase interface
type routePlanningService struct {
	defaultVehicles int
	maxVehicles     int
	maxStops        int
	tourWorkers     int

	partitioner *fleet.Partitioner
	builder     tourBuilder

	logger    *slog.Logger
	metrics   *metrics.PlannerMetrics
	publisher service.EventPublisher
}

// NewRoutePlanningService creates a new route planning service instance
func NewRoutePlanningService(params RoutePlanningServiceParams) (usecase.RoutePlanningUsecase, error) {
	cfg := params.Config
	if cfg == nil {
		cfg = &config.RoutingConfig{}
	}

	metric, err := fleet.MetricByName(cfg.Metric)
	if err != nil {
		return nil, errors.Wrap(err, "routing.metric")
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &routePlanningService{
		defaultVehicles: positiveOr(cfg.DefaultVehicles, defaultVehicles),
		maxVehicles:     positiveOr(cfg.MaxVehicles, defaultMaxVehicles),
		maxStops:        positiveOr(cfg.MaxStops, defaultMaxStops),
		tourWorkers:     positiveOr(cfg.TourWorkers, defaultTourWorkers),
		partitioner:     fleet.NewPartitioner(metric, cfg.MaxIterations),
		builder:         fleet.NewTourBuilder(metric),
		logger:          logger,
		metrics:         params.Metrics,
		publisher:       params.Publisher,
	}, nil
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}

	return value
}

// PlanRoutes runs normalize, partition, tour and assemble for one request
func (s *routePlanningService) PlanRoutes(ctx context.Context, input *usecase.PlanRoutesInput) (result *usecase.PlanRoutesResult, err error) {
	startTime := time.Now()
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	defer func() {
		s.metrics.ObservePlan(outcomeOf(err), time.Since(startTime))
	}()

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "route planning canceled")
	}

	if input == nil || len(input.Locations) == 0 {
		return nil, domainerrors.NewValidationError(domainerrors.CodeNoLocations, "locations", "no locations provided")
	}

	vehicles, err := s.vehicleCount(input.Vehicles)
	if err != nil {
		return nil, err
	}

	if len(input.Locations) > s.maxStops {
		return nil, domainerrors.NewValidationError(
			domainerrors.CodeTooManyStops,
			"locations",
			fmt.Sprintf("%d stops exceed the limit of %d", len(input.Locations), s.maxStops),
		)
	}

	stops, err := fleet.Normalize(input.Locations)
	if err != nil {
		return nil, err
	}

	partition, err := s.partitioner.Partition(stops, vehicles)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePartition(partition.Iterations)

	if !partition.Converged {
		logger.Warn("Partition reached the iteration cap",
			slog.Int("iterations", partition.Iterations),
			slog.Int("vehicles", vehicles),
		)
	}

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "route planning canceled")
	}

	tours, err := s.buildTours(partition.Clusters)
	if err != nil {
		return nil, err
	}

	routes, err := fleet.Assemble(partition.Clusters, tours)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRoutes(routes)

	result = &usecase.PlanRoutesResult{
		Routes:     routes,
		Vehicles:   routes.Summaries(),
		StopCount:  len(stops),
		Iterations: partition.Iterations,
		Converged:  partition.Converged,
		Duration:   time.Since(startTime),
	}

	logger.Info("Routes planned",
		slog.Int("stops", len(stops)),
		slog.Int("vehicles", vehicles),
		slog.Int("iterations", partition.Iterations),
		slog.Bool("converged", partition.Converged),
		slog.Duration("duration", result.Duration),
	)

	s.publishRoutesPlanned(ctx, logger, result, vehicles)

	return result, nil
}

func (s *routePlanningService) vehicleCount(requested *int) (int, error) {
	if requested == nil {
		return s.defaultVehicles, nil
	}

	vehicles := *requested
	if vehicles < 1 {
		return 0, domainerrors.NewValidationError(
			domainerrors.CodeInvalidVehicleCount,
			"n_vehicles",
			"vehicle count must be at least 1",
		)
	}

	if vehicles > s.maxVehicles {
		return 0, domainerrors.NewValidationError(
			domainerrors.CodeInvalidVehicleCount,
			"n_vehicles",
			fmt.Sprintf("vehicle count %d exceeds the limit of %d", vehicles, s.maxVehicles),
		)
	}

	return vehicles, nil
}

// publishRoutesPlanned announces the plan. Failures are logged and never
// fail the request.
func (s *routePlanningService) publishRoutesPlanned(ctx context.Context, logger *slog.Logger, result *usecase.PlanRoutesResult, vehicles int) {
	if s.publisher == nil {
		return
	}

	event := &service.RoutesPlannedEvent{
		EventID:      uuid.New().String(),
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		VehicleCount: vehicles,
		StopCount:    result.StopCount,
		Routes:       result.Routes.Coordinates(),
		PlannedAt:    time.Now().UTC(),
	}

	if err := s.publisher.PublishRoutesPlanned(ctx, event); err != nil {
		logger.Warn("Failed to publish routes planned event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
		)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case domainerrors.IsValidation(err):
		return metrics.OutcomeValidationError
	case domainerrors.IsComputation(err):
		return metrics.OutcomeComputationError
	default:
		return metrics.OutcomeError
	}
}

func (s *routePlanningService) workerCount(clusterCount int) int {
	if clusterCount < s.tourWorkers {
		return clusterCount
	}

	return s.tourWorkers
}

type tourWithIndex struct {
	index int
	tour  entity.Tour
	err   error
}

// buildTours builds one tour per cluster on a bounded worker pool. Results
// are written by cluster index so the output does not depend on scheduling.
func (s *routePlanningService) buildTours(clusters []entity.Cluster) ([]entity.Tour, error) {
	tours := make([]entity.Tour, len(clusters))
	if len(clusters) == 0 {
		return tours, nil
	}

	clusterCh := make(chan int, len(clusters))
	resultCh := make(chan tourWithIndex, len(clusters))

	workerGroup := s.spawnTourWorkers(s.workerCount(len(clusters)), clusterCh, resultCh, clusters)

	go dispatchTourWork(clusterCh, len(clusters))

	if err := collectTours(resultCh, tours, workerGroup); err != nil {
		return nil, err
	}

	return tours, nil
}

func (s *routePlanningService) spawnTourWorkers(
	workerCount int,
	clusterCh <-chan int,
	resultCh chan<- tourWithIndex,
	clusters []entity.Cluster,
) *sync.WaitGroup {
	var workerGroup sync.WaitGroup

	for range workerCount {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			for idx := range clusterCh {
				tour, err := s.buildTour(clusters[idx])
				resultCh <- tourWithIndex{index: idx, tour: tour, err: err}
			}
		}()
	}

	return &workerGroup
}

// buildTour converts a panic in the tour builder into a ComputationError
func (s *routePlanningService) buildTour(cluster entity.Cluster) (tour entity.Tour, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domainerrors.NewComputationError("tour", errors.Errorf("vehicle %d: %v", cluster.Vehicle, r))
		}
	}()

	return s.builder.Build(cluster), nil
}

func dispatchTourWork(clusterCh chan<- int, clusterCount int) {
	defer close(clusterCh)

	for i := range clusterCount {
		clusterCh <- i
	}
}

// collectTours drains every result and reports the error of the lowest
// failing cluster index.
func collectTours(resultCh chan tourWithIndex, tours []entity.Tour, workerGroup *sync.WaitGroup) error {
	go func() {
		workerGroup.Wait()
		close(resultCh)
	}()

	failedIndex := -1
	var firstErr error
	for res := range resultCh {
		if res.err != nil {
			if failedIndex == -1 || res.index < failedIndex {
				failedIndex, firstErr = res.index, res.err
			}
			continue
		}
		tours[res.index] = res.tour
	}

	return firstErr
}
