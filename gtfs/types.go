package gtfs

import "errors"

// ErrNoShapes is returned when the archive has no usable shapes.txt rows
var ErrNoShapes = errors.New("gtfs: no shapes found")

// shapePoint is one row of shapes.txt
type shapePoint struct {
	lon, lat float64
	seq      int
}
