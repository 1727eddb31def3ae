package fleet

import (
	"fleetroute/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders routes as GeoJSON: one LineString per vehicle
// with a non-empty tour, followed by one Point per visit in tour order.
func FeatureCollection(routes entity.RouteMap) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, vehicle := range routes.Vehicles() {
		tour := routes[vehicle]
		if len(tour.Stops) == 0 {
			continue
		}

		line := make(orb.LineString, len(tour.Stops))
		for i, stop := range tour.Stops {
			line[i] = stop.Point()
		}

		route := geojson.NewFeature(line)
		route.Properties["kind"] = "route"
		route.Properties["vehicle"] = vehicle
		route.Properties["stops"] = tour.StopCount()
		route.Properties["distance_km"] = tour.DistanceKm
		fc.Append(route)
	}

	for _, vehicle := range routes.Vehicles() {
		tour := routes[vehicle]
		for seq := 0; seq < tour.StopCount(); seq++ {
			stop := tour.Stops[seq]

			point := geojson.NewFeature(stop.Point())
			point.Properties["kind"] = "stop"
			point.Properties["vehicle"] = vehicle
			point.Properties["sequence"] = seq
			point.Properties["input_index"] = stop.Index
			fc.Append(point)
		}
	}

	return fc
}
