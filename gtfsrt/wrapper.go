package gtfsrt

import (
	"fmt"
	"math"
	"sort"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/paulmach/orb"
)

// VehiclePositionFeed holds the observations of one VehiclePositions message
type VehiclePositionFeed struct {
	headerTimestamp int64
	byVehicle       map[string][]Observation // vehicle id -> observations, oldest first
	skipped         int
}

// ParseVehiclePositions decodes a VehiclePositions FeedMessage
func ParseVehiclePositions(data []byte) (*VehiclePositionFeed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode vehicle positions: %w", err)
	}
	return NewVehiclePositionFeed(&fm), nil
}

// NewVehiclePositionFeed indexes an already decoded FeedMessage
func NewVehiclePositionFeed(fm *gtfsrtpb.FeedMessage) *VehiclePositionFeed {
	f := &VehiclePositionFeed{byVehicle: map[string][]Observation{}}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		f.headerTimestamp = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		v := e.Vehicle
		if v == nil {
			continue
		}
		if v.Position == nil || v.Position.Latitude == nil || v.Position.Longitude == nil {
			f.skipped++
			continue
		}

		var tripID string
		if v.Trip != nil && v.Trip.TripId != nil {
			tripID = *v.Trip.TripId
		}
		// vehicle id identifies the trace; trip id is the fallback
		vehicleID := tripID
		if v.Vehicle != nil && v.Vehicle.Id != nil && *v.Vehicle.Id != "" {
			vehicleID = *v.Vehicle.Id
		}
		if vehicleID == "" {
			f.skipped++
			continue
		}

		o := Observation{
			VehicleID: vehicleID,
			TripID:    tripID,
			Point:     orb.Point{float64(*v.Position.Longitude), float64(*v.Position.Latitude)},
			Bearing:   math.NaN(),
			Timestamp: f.headerTimestamp,
		}
		if v.Position.Bearing != nil {
			o.Bearing = float64(*v.Position.Bearing)
		}
		if v.Timestamp != nil {
			o.Timestamp = int64(*v.Timestamp)
		}
		f.byVehicle[vehicleID] = append(f.byVehicle[vehicleID], o)
	}

	for _, obs := range f.byVehicle {
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].Timestamp < obs[j].Timestamp })
	}
	return f
}

// GetTimestampForFeedMessage returns the header timestamp, 0 when absent
func (f *VehiclePositionFeed) GetTimestampForFeedMessage() int64 { return f.headerTimestamp }

// GetAllVehicles returns the vehicle ids in the feed, sorted
func (f *VehiclePositionFeed) GetAllVehicles() []string {
	ids := make([]string, 0, len(f.byVehicle))
	for id := range f.byVehicle {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetObservationsForVehicle returns the observations of a vehicle, oldest first
func (f *VehiclePositionFeed) GetObservationsForVehicle(vehicleID string) []Observation {
	return f.byVehicle[vehicleID]
}

// NumObservations returns the number of usable observations
func (f *VehiclePositionFeed) NumObservations() int {
	n := 0
	for _, obs := range f.byVehicle {
		n += len(obs)
	}
	return n
}

// NumSkipped returns the number of vehicle entities without a usable position or id
func (f *VehiclePositionFeed) NumSkipped() int { return f.skipped }
