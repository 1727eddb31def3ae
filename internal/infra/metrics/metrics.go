// Package metrics exposes route planner instrumentation through a
// dedicated Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"fleetroute/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Plan outcomes recorded in route_plans_total
const (
	OutcomeSuccess          = "success"
	OutcomeValidationError  = "validation_error"
	OutcomeComputationError = "computation_error"
	OutcomeError            = "error"
)

// PlannerMetrics records route planning activity. A nil *PlannerMetrics is
// valid and records nothing.
type PlannerMetrics struct {
	plans           *prometheus.CounterVec
	duration        prometheus.Histogram
	iterations      prometheus.Histogram
	stopsPerVehicle prometheus.Histogram
}

// NewRegistry creates the service registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewPlannerMetrics registers the planner collectors on reg. Collectors that
// are already registered are reused.
func NewPlannerMetrics(reg *prometheus.Registry) (*PlannerMetrics, error) {
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_plans_total",
		Help: "Total number of route plan requests by outcome",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_plan_duration_seconds",
		Help:    "Time spent planning routes for one request",
		Buckets: prometheus.DefBuckets,
	})
	iterations := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_partition_iterations",
		Help:    "Number of k-means iterations per partition",
		Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100, 300},
	})
	stopsPerVehicle := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_stops_per_vehicle",
		Help:    "Number of stops assigned to each vehicle",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	var err error
	if plans, err = register(reg, plans); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if iterations, err = register(reg, iterations); err != nil {
		return nil, err
	}
	if stopsPerVehicle, err = register(reg, stopsPerVehicle); err != nil {
		return nil, err
	}

	return &PlannerMetrics{
		plans:           plans,
		duration:        duration,
		iterations:      iterations,
		stopsPerVehicle: stopsPerVehicle,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return collector, errors.Wrap(err, "register collector")
	}

	return collector, nil
}

// ObservePlan records one finished plan request.
func (m *PlannerMetrics) ObservePlan(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.plans.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObservePartition records the iterations one partition needed.
func (m *PlannerMetrics) ObservePartition(iterations int) {
	if m == nil {
		return
	}

	m.iterations.Observe(float64(iterations))
}

// ObserveRoutes records the stop count of every vehicle's route.
func (m *PlannerMetrics) ObserveRoutes(routes entity.RouteMap) {
	if m == nil {
		return
	}

	for _, tour := range routes {
		m.stopsPerVehicle.Observe(float64(tour.StopCount()))
	}
}

// Handler exposes reg in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRegistry, NewPlannerMetrics),
)
