package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Network is a directed graph of edges with polyline geometry
type Network struct {
	nodes   []orb.Point
	nodeIdx map[orb.Point]NodeID
	edges   []edge
	pairs   map[[2]NodeID]GraphID // from,to -> edge
}

// New creates an empty network
func New() *Network {
	return &Network{
		nodeIdx: map[orb.Point]NodeID{},
		pairs:   map[[2]NodeID]GraphID{},
	}
}

// NumEdges returns the number of edges in the network
func (n *Network) NumEdges() int { return len(n.edges) }

// NumNodes returns the number of nodes in the network
func (n *Network) NumNodes() int { return len(n.nodes) }

func (n *Network) node(p orb.Point) NodeID {
	if id, ok := n.nodeIdx[p]; ok {
		return id
	}
	id := NodeID(len(n.nodes))
	n.nodes = append(n.nodes, p)
	n.nodeIdx[p] = id
	return id
}

// AddEdge adds a directed edge running from the first to the last point of
// geom. Consecutive duplicate points are dropped. An edge between the same
// pair of nodes is only stored once; adding it again returns the existing id.
func (n *Network) AddEdge(geom orb.LineString) (GraphID, error) {
	clean := make(orb.LineString, 0, len(geom))
	for _, p := range geom {
		if len(clean) > 0 && clean[len(clean)-1] == p {
			continue
		}
		clean = append(clean, p)
	}
	if len(clean) < 2 {
		return InvalidGraphID, ErrShortGeometry
	}

	from := n.node(clean[0])
	to := n.node(clean[len(clean)-1])
	if id, ok := n.pairs[[2]NodeID{from, to}]; ok {
		return id, nil
	}

	cum := make([]float64, len(clean))
	for i := 1; i < len(clean); i++ {
		cum[i] = cum[i-1] + geo.DistanceHaversine(clean[i-1], clean[i])
	}
	id := GraphID(len(n.edges))
	n.edges = append(n.edges, edge{from: from, to: to, geom: clean, cumM: cum})
	n.pairs[[2]NodeID{from, to}] = id
	return id, nil
}

func (n *Network) edge(id GraphID) *edge {
	if !id.IsValid() || id >= GraphID(len(n.edges)) {
		return nil
	}
	return &n.edges[id]
}

// Length returns the length of an edge in meters, 0 for unknown edges
func (n *Network) Length(id GraphID) float64 {
	e := n.edge(id)
	if e == nil {
		return 0
	}
	return e.length()
}

// Endpoints returns the start and end node of an edge
func (n *Network) Endpoints(id GraphID) (NodeID, NodeID, bool) {
	e := n.edge(id)
	if e == nil {
		return 0, 0, false
	}
	return e.from, e.to, true
}

// Connected reports whether edge to starts at the node where edge from ends
func (n *Network) Connected(from, to GraphID) bool {
	a, b := n.edge(from), n.edge(to)
	if a == nil || b == nil {
		return false
	}
	return a.to == b.from
}

// EdgeShape returns the geometry of an edge between the normalized positions
// from and to. Positions are clamped to [0,1]. The result is a new slice on
// every call; nil is returned for unknown edges.
func (n *Network) EdgeShape(id GraphID, from, to float64) orb.LineString {
	e := n.edge(id)
	if e == nil {
		return nil
	}
	from, to = clamp01(from), clamp01(to)
	if to < from {
		from, to = to, from
	}

	total := e.length()
	startM, endM := from*total, to*total
	start := e.pointAt(startM)
	if to == from {
		return orb.LineString{start}
	}

	shape := orb.LineString{start}
	for i := 1; i < len(e.geom)-1; i++ {
		if e.cumM[i] > startM && e.cumM[i] < endM {
			shape = append(shape, e.geom[i])
		}
	}
	return append(shape, e.pointAt(endM))
}

// pointAt interpolates the point at a distance in meters from the edge start
func (e *edge) pointAt(m float64) orb.Point {
	if m <= 0 {
		return e.geom[0]
	}
	last := len(e.geom) - 1
	if m >= e.cumM[last] {
		return e.geom[last]
	}
	seg := 0
	for i := 1; i <= last; i++ {
		if e.cumM[i] >= m {
			seg = i - 1
			break
		}
	}
	prev, next := e.cumM[seg], e.cumM[seg+1]
	t := 0.0
	if next > prev {
		t = (m - prev) / (next - prev)
	}
	a, b := e.geom[seg], e.geom[seg+1]
	return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
