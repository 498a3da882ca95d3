package match

import (
	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/graph"
)

// GraphReader is the part of the network graph an EdgeSegment needs.
// Implementations must not change graph state when queried.
type GraphReader interface {
	// EdgeShape returns the geometry of edge between the normalized
	// positions from and to.
	EdgeShape(edge graph.GraphID, from, to float64) orb.LineString
	// Connected reports whether edge to starts where edge from ends.
	Connected(from, to graph.GraphID) bool
}

// EdgeSegment is a run of match results on a single edge.
//
// First and Last delimit the results of the owning MatchResults that fall on
// this segment, as the half-open range [First, Last). They are only meaningful
// while the owning MatchResults is alive.
type EdgeSegment struct {
	Edge          graph.GraphID
	Source        float64 // start of the traversed part of Edge, [0,1]
	Target        float64 // end of the traversed part of Edge, [Source,1]
	Discontinuity bool    // not connected to the preceding segment
	First, Last   int
}

// NewEdgeSegment creates a segment. Callers must pass source <= target and a
// result range inside the owning results.
func NewEdgeSegment(edge graph.GraphID, source, target float64, first, last int) EdgeSegment {
	return EdgeSegment{Edge: edge, Source: source, Target: target, First: first, Last: last}
}

// Shape returns the geometry of the traversed part of the edge.
func (s EdgeSegment) Shape(g GraphReader) orb.LineString {
	return g.EdgeShape(s.Edge, s.Source, s.Target)
}

// Adjoined reports whether other starts where s ends
func (s EdgeSegment) Adjoined(g GraphReader, other EdgeSegment) bool {
	if s.Edge != other.Edge {
		return s.Target == 1 && other.Source == 0 && g.Connected(s.Edge, other.Edge)
	}
	return s.Target == other.Source
}
