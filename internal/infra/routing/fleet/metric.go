// Package fleet turns a set of stops into one closed tour per vehicle:
// normalization, k-means partitioning, nearest-neighbour touring and
// assembly. Every stage is a pure function of its input.
package fleet

import (
	"strings"

	domainerrors "fleetroute/internal/domain/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

const (
	MetricPlanar    = "planar"
	MetricHaversine = "haversine"
)

// Metric is the distance function shared by partitioning and touring.
type Metric interface {
	// Name returns the configuration name of the metric
	Name() string

	// Distance returns the distance between two points given as (lng, lat)
	Distance(a, b orb.Point) float64
}

type planarMetric struct{}

// Planar returns the Euclidean metric over raw (lng, lat) degrees.
func Planar() Metric {
	return planarMetric{}
}

func (planarMetric) Name() string {
	return MetricPlanar
}

func (planarMetric) Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

type haversineMetric struct{}

// Haversine returns the great-circle metric in metres.
func Haversine() Metric {
	return haversineMetric{}
}

func (haversineMetric) Name() string {
	return MetricHaversine
}

func (haversineMetric) Distance(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

// MetricByName resolves a configured metric name. An empty name selects planar.
func MetricByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MetricPlanar:
		return Planar(), nil
	case MetricHaversine:
		return Haversine(), nil
	default:
		return nil, domainerrors.NewValidationError(
			domainerrors.CodeValidationFailed,
			"metric",
			"unknown distance metric "+name,
		)
	}
}
