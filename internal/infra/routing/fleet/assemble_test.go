package fleet

import (
	"testing"

	"fleetroute/internal/domain/entity"
	domainerrors "fleetroute/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	a := entity.Stop{Index: 0, Lat: 1, Lng: 1}
	b := entity.Stop{Index: 1, Lat: 2, Lng: 2}

	clusters := []entity.Cluster{
		{Vehicle: 0, Stops: []entity.Stop{a, b}},
		{Vehicle: 1, Stops: []entity.Stop{}},
	}

	t.Run("valid", func(t *testing.T) {
		tours := []entity.Tour{
			{Vehicle: 0, Stops: []entity.Stop{a, b, a}},
			{Vehicle: 1, Stops: []entity.Stop{}},
		}

		routes, err := Assemble(clusters, tours)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1}, routes.Vehicles())
		assert.Equal(t, map[string][][2]float64{
			"0": {{1, 1}, {2, 2}, {1, 1}},
			"1": {},
		}, routes.Coordinates())
	})

	invalid := []struct {
		name  string
		tours []entity.Tour
	}{
		{
			name:  "missing tour",
			tours: []entity.Tour{{Vehicle: 0, Stops: []entity.Stop{a, b, a}}},
		},
		{
			name: "vehicle out of place",
			tours: []entity.Tour{
				{Vehicle: 1, Stops: []entity.Stop{a, b, a}},
				{Vehicle: 0, Stops: []entity.Stop{}},
			},
		},
		{
			name: "open tour",
			tours: []entity.Tour{
				{Vehicle: 0, Stops: []entity.Stop{a, b, b}},
				{Vehicle: 1, Stops: []entity.Stop{}},
			},
		},
		{
			name: "stop visited twice",
			tours: []entity.Tour{
				{Vehicle: 0, Stops: []entity.Stop{a, a, a}},
				{Vehicle: 1, Stops: []entity.Stop{}},
			},
		},
		{
			name: "empty cluster with stops",
			tours: []entity.Tour{
				{Vehicle: 0, Stops: []entity.Stop{a, b, a}},
				{Vehicle: 1, Stops: []entity.Stop{a, a}},
			},
		},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			routes, err := Assemble(clusters, tt.tours)
			require.Error(t, err)
			assert.Nil(t, routes)
			assert.True(t, domainerrors.IsComputation(err))
		})
	}
}

func TestPipeline_SingleStopManyVehicles(t *testing.T) {
	stops, err := Normalize([]entity.RawLocation{entity.NewRawLocation(34.0522, -118.2437)})
	require.NoError(t, err)

	result, err := NewPartitioner(nil, 0).Partition(stops, 5)
	require.NoError(t, err)

	builder := NewTourBuilder(nil)
	tours := make([]entity.Tour, len(result.Clusters))
	for i, cluster := range result.Clusters {
		tours[i] = builder.Build(cluster)
	}

	routes, err := Assemble(result.Clusters, tours)
	require.NoError(t, err)

	coords := routes.Coordinates()
	require.Len(t, coords, 5)
	assert.Equal(t, [][2]float64{{34.0522, -118.2437}, {34.0522, -118.2437}}, coords["0"])
	for _, key := range []string{"1", "2", "3", "4"} {
		assert.Empty(t, coords[key])
		assert.NotNil(t, coords[key])
	}
}
