// Package formatter serializes tracked vehicle paths.
//
// This package is organized into:
// - types.go: JSON document types
// - json.go: JSON serialization, one document per path with encoded polylines
// - geojson.go: GeoJSON serialization, one LineString feature per edge segment
//
// Segment geometry is resolved against the network graph passed to
// NewResponseBuilder.
package formatter
