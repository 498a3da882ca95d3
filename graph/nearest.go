package graph

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Nearest projects p onto every edge and returns the closest projection within
// radius meters. A radius <= 0 disables the limit.
func (n *Network) Nearest(p orb.Point, radius float64) (Candidate, bool) {
	best := Candidate{Edge: InvalidGraphID, Distance: math.MaxFloat64}
	// lon degrees shrink with latitude; scale before projecting
	kx := math.Cos(p[1] * math.Pi / 180)

	for id := range n.edges {
		e := &n.edges[id]
		for i := 0; i < len(e.geom)-1; i++ {
			a, b := e.geom[i], e.geom[i+1]

			vx := (b[0] - a[0]) * kx
			vy := b[1] - a[1]
			wx := (p[0] - a[0]) * kx
			wy := p[1] - a[1]

			denom := vx*vx + vy*vy
			t := 0.0
			if denom > 0 {
				t = (wx*vx + wy*vy) / denom
				if t < 0 {
					t = 0
				} else if t > 1 {
					t = 1
				}
			}

			proj := orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
			dist := geo.DistanceHaversine(p, proj)
			if dist >= best.Distance {
				continue
			}

			along := 0.0
			if total := e.length(); total > 0 {
				along = clamp01((e.cumM[i] + t*(e.cumM[i+1]-e.cumM[i])) / total)
			}
			best = Candidate{Edge: GraphID(id), Point: proj, Distance: dist, Along: along}
		}
	}

	if !best.Edge.IsValid() || (radius > 0 && best.Distance > radius) {
		return Candidate{Edge: InvalidGraphID}, false
	}
	return best, true
}
