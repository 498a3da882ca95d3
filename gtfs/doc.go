/*
Package gtfs loads route geometry from a GTFS static feed.

Only shapes.txt is read. Each shape becomes an ordered orb.LineString
(lon, lat) that graph.FromShapes turns into a network:

	shapes, err := gtfs.LoadShapes("https://example.org/gtfs.zip")
	if err != nil {
	    log.Fatal(err)
	}
	network := graph.FromShapes(shapes)

LoadShapes accepts an HTTP(S) URL or a local zip path. Library users that
already hold the archive can call LoadShapesFromReader.

# Performance

Parse the feed once at startup and keep the network in memory. Shapes are
static data; rebuilding the network per request is wasteful.
*/
package gtfs
