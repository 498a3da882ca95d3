package graph

import (
	"sort"

	"github.com/paulmach/orb"
)

// FromShapes builds a network with one edge per consecutive pair of distinct
// shape points. Shapes sharing a point share the node, so routes that overlap
// on the street map onto the same edges. Shape ids are processed in sorted
// order so edge ids are stable for a given input.
func FromShapes(shapes map[string]orb.LineString) *Network {
	n := New()
	ids := make([]string, 0, len(shapes))
	for id := range shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		pts := shapes[id]
		for i := 1; i < len(pts); i++ {
			if pts[i-1] == pts[i] {
				continue
			}
			// two distinct points never fail
			_, _ = n.AddEdge(orb.LineString{pts[i-1], pts[i]})
		}
	}
	return n
}
