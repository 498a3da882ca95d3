package formatter

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/graph"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/match"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/tracking"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/utils"
)

// ResponseBuilder renders path updates, resolving segment geometry against a
// network graph
type ResponseBuilder struct {
	graph match.GraphReader
}

// NewResponseBuilder creates a builder resolving segment geometry against g
func NewResponseBuilder(g match.GraphReader) *ResponseBuilder {
	return &ResponseBuilder{graph: g}
}

// BuildJSON serializes path updates to JSON. Updates without a path are
// reported with their status only.
func (rb *ResponseBuilder) BuildJSON(updates []tracking.PathUpdate) ([]byte, error) {
	res := PathsResponse{
		ResponseTimestamp: utils.Iso8601Now(),
		Paths:             make([]PathDocument, 0, len(updates)),
	}
	for _, u := range updates {
		res.Paths = append(res.Paths, rb.BuildPathDocument(u))
	}
	return json.Marshal(res)
}

// BuildPathDocument converts one path update to its JSON document
func (rb *ResponseBuilder) BuildPathDocument(u tracking.PathUpdate) PathDocument {
	doc := PathDocument{
		VehicleID:      u.VehicleID,
		TripID:         u.TripID,
		Status:         u.Status.String(),
		Edges:          []uint64{},
		TraversedEdges: []uint64{},
		Segments:       []SegmentDocument{},
		Points:         []PointDocument{},
	}
	if u.Previous != nil {
		doc.PreviousEdges = edgeIDs(u.Previous.Edges())
	}
	p := u.Path
	if p == nil {
		return doc
	}

	doc.Score = p.Score()
	doc.Edges = edgeIDs(p.Edges())
	doc.TraversedEdges = edgeIDs(p.TraversedEdges())
	for _, s := range p.Segments() {
		doc.Segments = append(doc.Segments, SegmentDocument{
			Edge:          uint64(s.Edge),
			Source:        s.Source,
			Target:        s.Target,
			Discontinuity: s.Discontinuity,
			Polyline:      encodeShape(s.Shape(rb.graph)),
		})
	}
	for _, r := range p.Results() {
		pt := PointDocument{
			Lon:           r.Point.Lon(),
			Lat:           r.Point.Lat(),
			DistanceFrom:  r.DistanceFrom,
			DistanceAlong: r.DistanceAlong,
			Time:          utils.Iso8601FromEpoch(r.EpochTime),
			HasState:      r.HasState(),
		}
		if r.Edge.IsValid() {
			e := uint64(r.Edge)
			pt.Edge = &e
		}
		doc.Points = append(doc.Points, pt)
	}
	return doc
}

func edgeIDs(ids []graph.GraphID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

// encodeShape encodes a lon/lat line string as a Google polyline (lat first)
func encodeShape(ls orb.LineString) string {
	coords := make([][]float64, len(ls))
	for i, p := range ls {
		coords[i] = []float64{p.Lat(), p.Lon()}
	}
	return string(polyline.EncodeCoords(coords))
}
