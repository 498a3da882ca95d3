// Package server exposes the latest matched path of every tracked vehicle over
// HTTP.
//
// The poller publishes each batch of path updates with Publish. Updates are
// rendered at publish time, so handlers never touch tracker-owned paths and
// can run concurrently with the next Ingest.
//
// Endpoints:
//   - /api/health: liveness and the latest feed timestamp
//   - /api/paths.json: paths as JSON documents
//   - /api/paths.geojson: paths as a GeoJSON FeatureCollection
//
// Both path endpoints accept the vehicleRef and status query parameters.
package server
