// Package config loads config.yml into AppConfig.
//
// Sections cover the GTFS static source of the network, the VehiclePositions
// feed, matcher tuning, output format and the HTTP server. Named feeds pair a
// network with a realtime source and are picked with SelectFeed. Zero values
// get defaults after struct-tag validation.
package config
