package match

import (
	"slices"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/graph"
)

// noCopy lets go vet's copylocks check flag copies of MatchResults
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// MatchResults is a matched path: the results, the segments grouping them
// and the edge sequence those segments traverse.
type MatchResults struct {
	noCopy noCopy

	results  []MatchResult
	segments []EdgeSegment
	edges    []graph.GraphID
	score    float64

	// traversed range, offsets into edges
	e1, e2 int
}

// New takes ownership of results and segments. Segments must cover results
// in order. score is the producer's ranking of the path and is not
// interpreted here.
func New(results []MatchResult, segments []EdgeSegment, score float64) *MatchResults {
	r := &MatchResults{results: results, segments: segments, score: score}
	r.edges = make([]graph.GraphID, 0, len(segments))
	for _, s := range segments {
		if len(r.edges) == 0 || r.edges[len(r.edges)-1] != s.Edge {
			r.edges = append(r.edges, s.Edge)
		}
	}
	r.trim()
	return r
}

// trim derives [e1, e2) from the current segments and edges
func (r *MatchResults) trim() {
	r.e1, r.e2 = 0, len(r.edges)
	if len(r.segments) == 0 {
		return
	}
	if r.segments[0].Source >= 1 {
		r.e1 = 1
	}
	if r.segments[len(r.segments)-1].Target <= 0 {
		r.e2--
	}
	// a single edge entered at its end and left at its start
	if r.e2 < r.e1 {
		r.e2 = r.e1
	}
}

// Results returns the match results. The slice must not be modified.
func (r *MatchResults) Results() []MatchResult { return r.results }

// Segments returns the edge segments. The slice must not be modified.
func (r *MatchResults) Segments() []EdgeSegment { return r.segments }

// Edges returns the edge ids of the path, without consecutive repeats.
// The slice must not be modified.
func (r *MatchResults) Edges() []graph.GraphID { return r.edges }

// Score returns the producer's score for the path
func (r *MatchResults) Score() float64 { return r.score }

// TraversedRange returns the offsets [e1, e2) of the traversed edges in Edges
func (r *MatchResults) TraversedRange() (int, int) { return r.e1, r.e2 }

// TraversedEdges returns the edges the path fully travels along
func (r *MatchResults) TraversedEdges() []graph.GraphID { return r.edges[r.e1:r.e2] }

// SegmentResults returns the results that fall on segment i
func (r *MatchResults) SegmentResults(i int) []MatchResult {
	s := r.segments[i]
	return r.results[s.First:s.Last]
}

// Move transfers the path to a new MatchResults and leaves r empty
func (r *MatchResults) Move() *MatchResults {
	dst := &MatchResults{}
	dst.Assign(r)
	return dst
}

// Assign moves src into r, replacing what r held. src is left empty.
func (r *MatchResults) Assign(src *MatchResults) {
	if r == src {
		return
	}
	r.results, src.results = src.results, nil
	r.segments, src.segments = src.segments, nil
	r.edges, src.edges = src.edges, nil
	r.score = src.score
	r.trim()
	src.trim()
}

// Equal reports whether the traversed edges of r and o describe the same
// path, one nested in the other, or two paths overlapping where one ends and
// the other starts. Edges are assumed not to repeat within a path. Empty
// traversed ranges never match.
func (r *MatchResults) Equal(o *MatchResults) bool {
	if r == nil || o == nil {
		return false
	}
	a, b := r.TraversedEdges(), o.TraversedEdges()
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	// o starts inside r
	if f := slices.Index(a, b[0]); f >= 0 {
		return prefixEqual(a[f:], b)
	}
	// r starts inside o
	if f := slices.Index(b, a[0]); f >= 0 {
		return prefixEqual(b[f:], a)
	}
	return false
}

// prefixEqual compares x and y over the length of the shorter one
func prefixEqual(x, y []graph.GraphID) bool {
	n := min(len(x), len(y))
	return slices.Equal(x[:n], y[:n])
}
