package formatter

// PathsResponse is the top-level JSON document
type PathsResponse struct {
	ResponseTimestamp string         `json:"responseTimestamp"`
	Paths             []PathDocument `json:"paths"`
}

// PathDocument is the JSON form of one vehicle path update
type PathDocument struct {
	VehicleID      string            `json:"vehicleId"`
	TripID         string            `json:"tripId,omitempty"`
	Status         string            `json:"status"`
	Score          float64           `json:"score"`
	Edges          []uint64          `json:"edges"`
	TraversedEdges []uint64          `json:"traversedEdges"`
	Segments       []SegmentDocument `json:"segments"`
	Points         []PointDocument   `json:"points"`
	PreviousEdges  []uint64          `json:"previousEdges,omitempty"`
}

// SegmentDocument is one edge segment with its encoded geometry
type SegmentDocument struct {
	Edge          uint64  `json:"edge"`
	Source        float64 `json:"source"`
	Target        float64 `json:"target"`
	Discontinuity bool    `json:"discontinuity"`
	Polyline      string  `json:"polyline"`
}

// PointDocument is one match result
type PointDocument struct {
	Lon           float64 `json:"lon"`
	Lat           float64 `json:"lat"`
	Edge          *uint64 `json:"edge,omitempty"`
	DistanceFrom  float64 `json:"distanceFrom"`
	DistanceAlong float64 `json:"distanceAlong"`
	Time          string  `json:"time,omitempty"`
	HasState      bool    `json:"hasState"`
}
