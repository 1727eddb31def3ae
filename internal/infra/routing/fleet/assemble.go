package fleet

import (
	"fleetroute/internal/domain/entity"
	domainerrors "fleetroute/internal/domain/errors"
	"fleetroute/internal/errors"
)

// Assemble packages clusters and their tours into a RouteMap keyed by
// vehicle index. It refuses to return a map that is not one closed
// permutation per cluster.
func Assemble(clusters []entity.Cluster, tours []entity.Tour) (entity.RouteMap, error) {
	if len(clusters) != len(tours) {
		return nil, domainerrors.NewComputationError(
			"assemble",
			errors.Errorf("got %d tours for %d clusters", len(tours), len(clusters)),
		)
	}

	routes := make(entity.RouteMap, len(clusters))
	for i, cluster := range clusters {
		tour := tours[i]
		if cluster.Vehicle != i || tour.Vehicle != i {
			return nil, domainerrors.NewComputationError(
				"assemble",
				errors.Errorf("position %d holds cluster %d and tour %d", i, cluster.Vehicle, tour.Vehicle),
			)
		}

		if err := verifyTour(cluster, tour); err != nil {
			return nil, domainerrors.NewComputationError("assemble", errors.Wrapf(err, "vehicle %d", i))
		}

		routes[i] = tour
	}

	return routes, nil
}

func verifyTour(cluster entity.Cluster, tour entity.Tour) error {
	n := len(cluster.Stops)
	if n == 0 {
		if len(tour.Stops) != 0 {
			return errors.Errorf("empty cluster has a tour of %d stops", len(tour.Stops))
		}

		return nil
	}

	if len(tour.Stops) != n+1 {
		return errors.Errorf("tour has %d stops, want %d", len(tour.Stops), n+1)
	}

	if tour.Stops[0] != tour.Stops[n] {
		return errors.New("tour is not closed")
	}

	pending := make(map[int]int, n)
	for _, stop := range cluster.Stops {
		pending[stop.Index]++
	}
	for _, stop := range tour.Stops[:n] {
		if pending[stop.Index] == 0 {
			return errors.Errorf("stop %d is not part of the cluster or is visited twice", stop.Index)
		}
		pending[stop.Index]--
	}

	return nil
}
