package match

// BuildSegments groups consecutive results on the same edge into segments.
//
// A segment spans from the position of its first result to the position of
// its last one. When two consecutive runs lie on connected edges the earlier
// segment is extended to the end of its edge and the later one starts at the
// beginning of its edge, so the two are adjoined. Results without an edge
// (unmatched observations) close the current run; the next segment is then
// marked as a discontinuity.
func BuildSegments(results []MatchResult, g GraphReader) []EdgeSegment {
	var segments []EdgeSegment
	gap := false

	for i := 0; i < len(results); {
		if !results[i].Edge.IsValid() {
			gap = true
			i++
			continue
		}

		j := i + 1
		for j < len(results) && results[j].Edge == results[i].Edge {
			j++
		}
		seg := NewEdgeSegment(results[i].Edge, results[i].DistanceAlong, results[j-1].DistanceAlong, i, j)
		if seg.Target < seg.Source {
			seg.Target = seg.Source
		}

		if len(segments) == 0 {
			seg.Discontinuity = gap
		} else {
			prev := &segments[len(segments)-1]
			if !gap && prev.Edge != seg.Edge && g.Connected(prev.Edge, seg.Edge) {
				prev.Target = 1
				seg.Source = 0
			}
			seg.Discontinuity = gap || !prev.Adjoined(g, seg)
		}

		segments = append(segments, seg)
		gap = false
		i = j
	}
	return segments
}
