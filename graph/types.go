package graph

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// GraphID identifies a directed edge of the network
type GraphID uint64

// InvalidGraphID marks a point that is not on any edge
const InvalidGraphID GraphID = math.MaxUint64

// IsValid reports whether the id can refer to an edge
func (id GraphID) IsValid() bool { return id != InvalidGraphID }

// NodeID identifies a node of the network
type NodeID uint32

// ErrShortGeometry is returned for edge geometry with fewer than two distinct points
var ErrShortGeometry = errors.New("edge geometry needs at least two distinct points")

// Candidate is the projection of a point onto the closest edge
type Candidate struct {
	Edge     GraphID
	Point    orb.Point // projected point on the edge
	Distance float64   // meters from the query point to Point
	Along    float64   // normalized position of Point along the edge, [0,1]
}

type edge struct {
	from, to NodeID
	geom     orb.LineString
	cumM     []float64 // cumulative meters at each vertex of geom
}

func (e *edge) length() float64 { return e.cumM[len(e.cumM)-1] }
