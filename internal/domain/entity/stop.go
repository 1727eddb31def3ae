// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/paulmach/orb"
)

// RawLocation is an unvalidated input record. A nil field means the
// coordinate was absent from the payload.
type RawLocation struct {
	Lat  *float64 `json:"lat"`
	Long *float64 `json:"long"`
}

// NewRawLocation builds a RawLocation with both coordinates present.
func NewRawLocation(lat, long float64) RawLocation {
	return RawLocation{Lat: &lat, Long: &long}
}

// Stop is a validated coordinate pair that must be visited.
type Stop struct {
	Index int     // Position of the stop in the original input order.
	Lat   float64 // Latitude in degrees, within [-90, 90].
	Lng   float64 // Longitude in degrees, within [-180, 180].
}

// Point returns the stop as an orb point. orb orders coordinates as (lng, lat).
func (s Stop) Point() orb.Point {
	return orb.Point{s.Lng, s.Lat}
}

// LatLng returns the stop as a [lat, long] pair.
func (s Stop) LatLng() [2]float64 {
	return [2]float64{s.Lat, s.Lng}
}

// StopSet is the ordered collection of stops for one planning request.
type StopSet []Stop

// Raw converts the set back into raw input records so that it can be
// normalized again without change.
func (s StopSet) Raw() []RawLocation {
	raw := make([]RawLocation, len(s))
	for i, stop := range s {
		raw[i] = NewRawLocation(stop.Lat, stop.Lng)
	}

	return raw
}
