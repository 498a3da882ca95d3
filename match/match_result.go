package match

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/graph"
)

const invalidStateHalf = math.MaxUint32

// StateID identifies a candidate state: the observation (Time) and the
// candidate index for that observation (ID)
type StateID struct {
	Time uint32
	ID   uint32
}

// InvalidStateID is carried by results that do not come from a matcher state
var InvalidStateID = StateID{Time: invalidStateHalf, ID: invalidStateHalf}

// NewStateID creates a state id
func NewStateID(time, id uint32) StateID { return StateID{Time: time, ID: id} }

// IsValid reports whether both halves of the id are set
func (s StateID) IsValid() bool {
	return s.Time != invalidStateHalf && s.ID != invalidStateHalf
}

// MatchResult is one observation's correspondence to a point on an edge
type MatchResult struct {
	Point         orb.Point     // matched point (lon, lat)
	DistanceFrom  float64       // meters from the observation to Point
	Edge          graph.GraphID // edge Point lies on
	DistanceAlong float64       // normalized position along Edge, [0,1]
	EpochTime     float64       // seconds, copied from the observation; 0 when unknown
	State         StateID
}

// HasState reports whether the result carries a valid state id
func (r MatchResult) HasState() bool { return r.State.IsValid() }
