package entity

import (
	"sort"
	"strconv"
)

// Cluster is the subset of stops assigned to one vehicle. Stops keep the
// relative order they had in the input.
type Cluster struct {
	Vehicle int
	Stops   []Stop
}

// Tour is the closed visiting order for one vehicle. A non-empty tour
// ends at the stop it started from.
type Tour struct {
	Vehicle    int
	Stops      []Stop
	DistanceKm float64 // Great-circle length of the closed path.
}

// StopCount returns the number of distinct visits, excluding the closing stop.
func (t Tour) StopCount() int {
	if len(t.Stops) == 0 {
		return 0
	}

	return len(t.Stops) - 1
}

// Coordinates returns the tour as a list of [lat, long] pairs.
func (t Tour) Coordinates() [][2]float64 {
	coords := make([][2]float64, 0, len(t.Stops))
	for _, stop := range t.Stops {
		coords = append(coords, stop.LatLng())
	}

	return coords
}

// RouteMap maps every vehicle index in [0, k) to its tour.
type RouteMap map[int]Tour

// Vehicles returns the vehicle indices in ascending order.
func (m RouteMap) Vehicles() []int {
	vehicles := make([]int, 0, len(m))
	for vehicle := range m {
		vehicles = append(vehicles, vehicle)
	}
	sort.Ints(vehicles)

	return vehicles
}

// Coordinates returns the routes keyed by the decimal vehicle index, the
// shape used on the wire.
func (m RouteMap) Coordinates() map[string][][2]float64 {
	out := make(map[string][][2]float64, len(m))
	for vehicle, tour := range m {
		out[strconv.Itoa(vehicle)] = tour.Coordinates()
	}

	return out
}

// RouteSummary describes the size and length of one vehicle's route.
type RouteSummary struct {
	Vehicle    int     `json:"vehicle"`
	Stops      int     `json:"stops"`
	DistanceKm float64 `json:"distance_km"`
}

// Summaries returns one summary per vehicle in ascending vehicle order.
func (m RouteMap) Summaries() []RouteSummary {
	summaries := make([]RouteSummary, 0, len(m))
	for _, vehicle := range m.Vehicles() {
		tour := m[vehicle]
		summaries = append(summaries, RouteSummary{
			Vehicle:    vehicle,
			Stops:      tour.StopCount(),
			DistanceKm: tour.DistanceKm,
		})
	}

	return summaries
}
