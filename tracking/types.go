package tracking

import (
	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/graph"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/match"
)

// Network is what the tracker needs from the network graph
type Network interface {
	match.GraphReader
	Nearest(p orb.Point, radius float64) (graph.Candidate, bool)
}

// PathStatus describes how a vehicle's path changed in an update
type PathStatus int

const (
	// PathNew is the first matched path of a vehicle
	PathNew PathStatus = iota
	// PathContinued means the new path contains, extends or overlaps the previous one
	PathContinued
	// PathDiverged means the new path shares no traversed run with the previous one
	PathDiverged
	// PathUnmatched means no observation of the trace could be snapped
	PathUnmatched
)

func (s PathStatus) String() string {
	switch s {
	case PathNew:
		return "new"
	case PathContinued:
		return "continued"
	case PathDiverged:
		return "diverged"
	case PathUnmatched:
		return "unmatched"
	default:
		return "unknown"
	}
}

// Options tune the tracker
type Options struct {
	SearchRadiusMeters float64 // max snapping distance, <= 0 for unlimited
	MaxTraceLength     int     // observations kept per vehicle, <= 0 for unlimited
	Workers            int     // vehicles matched concurrently, <= 0 for one
}

// PathUpdate reports the path of one vehicle after an Ingest.
//
// Path is owned by the tracker and stays valid until the next Ingest.
// Previous is handed over to the caller: it holds the path that was replaced
// when Status is PathDiverged and is nil otherwise.
type PathUpdate struct {
	VehicleID string
	TripID    string
	Status    PathStatus
	Path      *match.MatchResults
	Previous  *match.MatchResults
}

type vehicleTrack struct {
	trace   []gtfsrt.Observation
	lastTS  int64
	path    match.MatchResults
	hasPath bool
}
