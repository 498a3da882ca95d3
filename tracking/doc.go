// Package tracking follows vehicles across successive GTFS-RT VehiclePositions
// feeds and keeps a matched network path per vehicle.
//
// This package handles:
// - Accumulating each vehicle's observations into a bounded trace
// - Snapping the trace onto the network by nearest-edge projection
// - Deciding whether the re-matched path continues the previous one
//
// The snapping is a deterministic reference producer for match.MatchResults;
// it is not a probabilistic matcher.
package tracking
