package fleet

import (
	"math"
	"slices"

	"fleetroute/internal/domain/entity"
	domainerrors "fleetroute/internal/domain/errors"
	"fleetroute/internal/errors"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"
)

// DefaultMaxIterations caps the k-means refinement loop.
const DefaultMaxIterations = 300

// PartitionResult holds the k clusters and how the refinement ended.
type PartitionResult struct {
	Clusters   []entity.Cluster
	Iterations int
	Converged  bool
}

// Partitioner splits a StopSet into per-vehicle clusters with k-means.
type Partitioner struct {
	metric        Metric
	maxIterations int
}

// NewPartitioner creates a partitioner. A nil metric selects planar and a
// non-positive cap selects DefaultMaxIterations.
func NewPartitioner(metric Metric, maxIterations int) *Partitioner {
	if metric == nil {
		metric = Planar()
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	return &Partitioner{
		metric:        metric,
		maxIterations: maxIterations,
	}
}

// Partition assigns every stop to exactly one of k clusters. Cluster i
// belongs to vehicle i; when k exceeds the number of stops the trailing
// clusters are empty.
func (p *Partitioner) Partition(stops entity.StopSet, k int) (*PartitionResult, error) {
	if k < 1 {
		return nil, domainerrors.NewValidationError(
			domainerrors.CodeInvalidVehicleCount,
			"n_vehicles",
			"vehicle count must be at least 1",
		)
	}

	clusters := make([]entity.Cluster, k)
	for i := range clusters {
		clusters[i] = entity.Cluster{Vehicle: i, Stops: []entity.Stop{}}
	}

	if len(stops) == 0 {
		return &PartitionResult{Clusters: clusters, Converged: true}, nil
	}

	if k == 1 {
		clusters[0].Stops = slices.Clone(stops)

		return &PartitionResult{Clusters: clusters, Converged: true}, nil
	}

	m := min(k, len(stops))
	centroids := p.seed(stops, m)

	var (
		assignment []int
		iterations int
		converged  bool
		err        error
	)
	for iterations < p.maxIterations {
		iterations++

		next := p.assign(stops, centroids)
		if slices.Equal(next, assignment) {
			converged = true
			break
		}
		assignment = next

		centroids, err = p.recenter(stops, assignment, centroids)
		if err != nil {
			return nil, err
		}
	}

	for i, stop := range stops {
		c := assignment[i]
		clusters[c].Stops = append(clusters[c].Stops, stop)
	}

	return &PartitionResult{
		Clusters:   clusters,
		Iterations: iterations,
		Converged:  converged,
	}, nil
}

// seed picks m initial centroids by farthest-point traversal starting from
// the first stop. Ties resolve to the lowest input index.
func (p *Partitioner) seed(stops entity.StopSet, m int) []orb.Point {
	chosen := make([]bool, len(stops))
	nearest := make([]float64, len(stops))
	centroids := make([]orb.Point, 0, m)

	pick := func(idx int) {
		chosen[idx] = true
		seed := stops[idx].Point()
		for j, stop := range stops {
			d := p.metric.Distance(stop.Point(), seed)
			if len(centroids) == 0 || d < nearest[j] {
				nearest[j] = d
			}
		}
		centroids = append(centroids, seed)
	}

	pick(0)
	for len(centroids) < m {
		best := -1
		for j := range stops {
			if chosen[j] {
				continue
			}
			if best == -1 || nearest[j] > nearest[best] {
				best = j
			}
		}
		pick(best)
	}

	return centroids
}

// assign maps each stop to its nearest centroid. Ties resolve to the lowest
// vehicle index.
func (p *Partitioner) assign(stops entity.StopSet, centroids []orb.Point) []int {
	assignment := make([]int, len(stops))
	for i, stop := range stops {
		point := stop.Point()
		best, bestDist := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := p.metric.Distance(point, centroid); d < bestDist {
				best, bestDist = c, d
			}
		}
		assignment[i] = best
	}

	return assignment
}

// recenter moves each centroid to the mean of its stops. A centroid with no
// stops keeps its previous position.
func (p *Partitioner) recenter(stops entity.StopSet, assignment []int, previous []orb.Point) ([]orb.Point, error) {
	lats := make([][]float64, len(previous))
	lngs := make([][]float64, len(previous))
	for i, stop := range stops {
		c := assignment[i]
		lats[c] = append(lats[c], stop.Lat)
		lngs[c] = append(lngs[c], stop.Lng)
	}

	centroids := make([]orb.Point, len(previous))
	for c := range previous {
		if len(lats[c]) == 0 {
			centroids[c] = previous[c]
			continue
		}

		centroid := orb.Point{stat.Mean(lngs[c], nil), stat.Mean(lats[c], nil)}
		if !isFinitePoint(centroid) {
			return nil, domainerrors.NewComputationError(
				"partition",
				errors.Errorf("centroid %d is not finite: %v", c, centroid),
			)
		}
		centroids[c] = centroid
	}

	return centroids, nil
}

func isFinitePoint(p orb.Point) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
