package fleet

import (
	"testing"

	"fleetroute/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourBuilder_Build(t *testing.T) {
	tests := []struct {
		name    string
		stops   []entity.Stop
		want    []int
		wantLen int
	}{
		{
			name:    "empty cluster",
			stops:   []entity.Stop{},
			want:    []int{},
			wantLen: 0,
		},
		{
			name:    "single stop is doubled",
			stops:   []entity.Stop{{Index: 4, Lat: 34.0522, Lng: -118.2437}},
			want:    []int{4, 4},
			wantLen: 2,
		},
		{
			name: "nearest neighbour along a line",
			stops: []entity.Stop{
				{Index: 0, Lat: 0, Lng: 0},
				{Index: 1, Lat: 0, Lng: 3},
				{Index: 2, Lat: 0, Lng: 1},
				{Index: 3, Lat: 0, Lng: 2},
			},
			want:    []int{0, 2, 3, 1, 0},
			wantLen: 5,
		},
		{
			name: "equal distances resolve to the lowest index",
			stops: []entity.Stop{
				{Index: 0, Lat: 0, Lng: 0},
				{Index: 1, Lat: 1, Lng: 0},
				{Index: 2, Lat: 0, Lng: 1},
			},
			want:    []int{0, 1, 2, 0},
			wantLen: 4,
		},
		{
			name: "starts at the lowest input index",
			stops: []entity.Stop{
				{Index: 7, Lat: 0, Lng: 0},
				{Index: 3, Lat: 0, Lng: 5},
			},
			want:    []int{3, 7, 3},
			wantLen: 3,
		},
		{
			name: "duplicates are kept",
			stops: []entity.Stop{
				{Index: 0, Lat: 34.0522, Lng: -118.2437},
				{Index: 1, Lat: 34.0522, Lng: -118.2437},
			},
			want:    []int{0, 1, 0},
			wantLen: 3,
		},
	}

	builder := NewTourBuilder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := builder.Build(entity.Cluster{Vehicle: 2, Stops: tt.stops})

			assert.Equal(t, 2, tour.Vehicle)
			require.Len(t, tour.Stops, tt.wantLen)
			assert.Equal(t, tt.want, indices(tour.Stops))
		})
	}
}

func TestTourBuilder_TwoStopsSingleVehicle(t *testing.T) {
	stops, err := Normalize([]entity.RawLocation{
		entity.NewRawLocation(34.0522, -118.2437),
		entity.NewRawLocation(34.0622, -118.2537),
	})
	require.NoError(t, err)

	result, err := NewPartitioner(nil, 0).Partition(stops, 1)
	require.NoError(t, err)

	tour := NewTourBuilder(nil).Build(result.Clusters[0])

	assert.Equal(t, [][2]float64{
		{34.0522, -118.2437},
		{34.0622, -118.2537},
		{34.0522, -118.2437},
	}, tour.Coordinates())
	assert.Equal(t, 2, tour.StopCount())
}

func TestTourBuilder_DistanceKm(t *testing.T) {
	tour := NewTourBuilder(Haversine()).Build(entity.Cluster{Stops: []entity.Stop{
		{Index: 0, Lat: 0, Lng: 0},
		{Index: 1, Lat: 1, Lng: 0},
	}})

	assert.InDelta(t, 2*111.3, tour.DistanceKm, 0.6)

	single := NewTourBuilder(nil).Build(entity.Cluster{Stops: []entity.Stop{{Index: 0, Lat: 10, Lng: 10}}})
	assert.Zero(t, single.DistanceKm)
}

func TestTourBuilder_UsesMetric(t *testing.T) {
	// Near the pole a degree of longitude is much shorter than a degree of
	// latitude, so the two metrics disagree on the nearest stop.
	cluster := entity.Cluster{Stops: []entity.Stop{
		{Index: 0, Lat: 80, Lng: 0},
		{Index: 1, Lat: 81, Lng: 0},
		{Index: 2, Lat: 80, Lng: 2},
	}}

	planarTour := NewTourBuilder(Planar()).Build(cluster)
	assert.Equal(t, []int{0, 1, 2, 0}, indices(planarTour.Stops))

	haversineTour := NewTourBuilder(Haversine()).Build(cluster)
	assert.Equal(t, []int{0, 2, 1, 0}, indices(haversineTour.Stops))
}
