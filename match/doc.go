// Package match holds the output of map matching: the correspondence of each
// observation to a point on the network (MatchResult), the runs of those points
// along single edges (EdgeSegment), and the path they add up to (MatchResults).
//
// # Traversed range
//
// A MatchResults derives its edge sequence from its segments, collapsing
// consecutive repeats. The first edge is left out of the traversed range when
// the path enters it exactly at its end (first segment Source == 1), the last
// when the path leaves it exactly at its start (last segment Target == 0).
//
// # Path equality
//
// Equal reports whether the traversed edges of two paths are identical, one is
// nested in the other, or they overlap at a boundary. It is how the tracker
// decides that a path re-matched after new observations still continues the
// path matched before:
//
//	prev := match.New(results, segments, score)
//	next := match.New(moreResults, moreSegments, newScore)
//	if prev.Equal(next) {
//	    // same path, extended
//	}
//
// # Ownership
//
// A MatchResults must not be copied. Use Move or Assign to hand it to another
// owner; both recompute the traversed range on the receiving value.
package match
