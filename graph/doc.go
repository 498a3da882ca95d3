// Package graph provides an in-memory directed network built from GTFS shape
// geometry.
//
// Nodes are deduplicated by coordinate and every edge is a directed polyline
// between two nodes. The network answers the geometry and topology queries the
// match package needs (EdgeShape, Connected) and the nearest-edge lookup used by
// the tracker to snap observations.
//
// A Network is safe for concurrent reads once it has been built. Building it
// (AddEdge, FromShapes) is not synchronized.
package graph
