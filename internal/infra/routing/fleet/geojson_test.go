package fleet

import (
	"encoding/json"
	"testing"

	"fleetroute/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureCollection(t *testing.T) {
	a := entity.Stop{Index: 0, Lat: 34.0522, Lng: -118.2437}
	b := entity.Stop{Index: 1, Lat: 34.0622, Lng: -118.2537}

	routes := entity.RouteMap{
		0: {Vehicle: 0, Stops: []entity.Stop{a, b, a}, DistanceKm: 2.8},
		1: {Vehicle: 1, Stops: []entity.Stop{}},
	}

	fc := FeatureCollection(routes)
	require.Len(t, fc.Features, 3)

	route := fc.Features[0]
	assert.Equal(t, orb.LineString{{-118.2437, 34.0522}, {-118.2537, 34.0622}, {-118.2437, 34.0522}}, route.Geometry)
	assert.Equal(t, "route", route.Properties["kind"])
	assert.Equal(t, 0, route.Properties["vehicle"])
	assert.Equal(t, 2, route.Properties["stops"])

	first := fc.Features[1]
	assert.Equal(t, orb.Point{-118.2437, 34.0522}, first.Geometry)
	assert.Equal(t, 0, first.Properties["sequence"])
	second := fc.Features[2]
	assert.Equal(t, 1, second.Properties["sequence"])
	assert.Equal(t, 1, second.Properties["input_index"])

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"FeatureCollection"`)
	assert.Contains(t, string(data), `"type":"LineString"`)
}
