// Package gtfsrt decodes GTFS-Realtime VehiclePositions feeds into
// per-vehicle observation traces.
//
// The main type is VehiclePositionFeed which is built from raw protobuf bytes
// and provides the observations grouped by vehicle, oldest first.
package gtfsrt
