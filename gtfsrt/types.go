package gtfsrt

import "github.com/paulmach/orb"

// Observation is one reported vehicle position
type Observation struct {
	VehicleID string
	TripID    string
	Point     orb.Point // lon, lat
	Bearing   float64   // degrees, NaN when not reported
	Timestamp int64     // epoch seconds, feed header time when not reported
}
