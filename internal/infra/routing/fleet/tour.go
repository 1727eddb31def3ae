package fleet

import (
	"fleetroute/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// TourBuilder orders a cluster into a closed nearest-neighbour tour.
type TourBuilder struct {
	metric Metric
}

// NewTourBuilder creates a tour builder. A nil metric selects planar.
func NewTourBuilder(metric Metric) *TourBuilder {
	if metric == nil {
		metric = Planar()
	}

	return &TourBuilder{metric: metric}
}

// Build starts at the cluster's first stop in input order, repeatedly moves
// to the nearest unvisited stop and finally returns to the start. Ties
// resolve to the lowest input index. Duplicate coordinates are kept.
func (b *TourBuilder) Build(cluster entity.Cluster) entity.Tour {
	tour := entity.Tour{Vehicle: cluster.Vehicle, Stops: []entity.Stop{}}

	stops := cluster.Stops
	if len(stops) == 0 {
		return tour
	}

	start := 0
	for i, stop := range stops {
		if stop.Index < stops[start].Index {
			start = i
		}
	}

	visited := make([]bool, len(stops))
	path := make([]entity.Stop, 0, len(stops)+1)

	current := start
	visited[current] = true
	path = append(path, stops[current])

	for len(path) < len(stops) {
		from := stops[current].Point()
		next, nextDist := -1, 0.0
		for j, candidate := range stops {
			if visited[j] {
				continue
			}
			d := b.metric.Distance(from, candidate.Point())
			if next == -1 || d < nextDist || (d == nextDist && candidate.Index < stops[next].Index) {
				next, nextDist = j, d
			}
		}

		visited[next] = true
		path = append(path, stops[next])
		current = next
	}

	path = append(path, path[0])

	tour.Stops = path
	tour.DistanceKm = LengthKm(path)

	return tour
}

// LengthKm returns the great-circle length of a path of stops in kilometres.
func LengthKm(path []entity.Stop) float64 {
	if len(path) < 2 {
		return 0
	}

	line := make(orb.LineString, len(path))
	for i, stop := range path {
		line[i] = stop.Point()
	}

	return geo.LengthHaversine(line) / 1000
}
