package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleetroute/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerMetrics_ObservePlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPlannerMetrics(reg)
	require.NoError(t, err)

	m.ObservePlan(OutcomeSuccess, 20*time.Millisecond)
	m.ObservePlan(OutcomeSuccess, 30*time.Millisecond)
	m.ObservePlan(OutcomeValidationError, time.Millisecond)

	expected := `
# HELP route_plans_total Total number of route plan requests by outcome
# TYPE route_plans_total counter
route_plans_total{outcome="success"} 2
route_plans_total{outcome="validation_error"} 1
`
	require.NoError(t, testutil.CollectAndCompare(m.plans, strings.NewReader(expected)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestPlannerMetrics_ObserveRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPlannerMetrics(reg)
	require.NoError(t, err)

	stop := entity.Stop{Index: 0, Lat: 1, Lng: 1}
	m.ObserveRoutes(entity.RouteMap{
		0: {Vehicle: 0, Stops: []entity.Stop{stop, stop}},
		1: {Vehicle: 1, Stops: []entity.Stop{}},
	})
	m.ObservePartition(4)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]uint64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if h := metric.GetHistogram(); h != nil {
				counts[family.GetName()] = h.GetSampleCount()
			}
		}
	}
	assert.Equal(t, uint64(2), counts["route_stops_per_vehicle"])
	assert.Equal(t, uint64(1), counts["route_partition_iterations"])
}

func TestNewPlannerMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewPlannerMetrics(reg)
	require.NoError(t, err)
	second, err := NewPlannerMetrics(reg)
	require.NoError(t, err)

	first.ObservePlan(OutcomeError, time.Millisecond)
	second.ObservePlan(OutcomeError, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(second.plans.WithLabelValues(OutcomeError)), 0)
}

func TestPlannerMetrics_NilIsNoop(t *testing.T) {
	var m *PlannerMetrics

	assert.NotPanics(t, func() {
		m.ObservePlan(OutcomeSuccess, time.Second)
		m.ObservePartition(3)
		m.ObserveRoutes(entity.RouteMap{})
	})
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	m, err := NewPlannerMetrics(reg)
	require.NoError(t, err)
	m.ObservePlan(OutcomeSuccess, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route_plans_total{outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
