package formatter

import (
	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/tracking"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/utils"
)

// BuildGeoJSON serializes path updates as a FeatureCollection: a LineString
// feature per edge segment and a Point feature per matched result.
func (rb *ResponseBuilder) BuildGeoJSON(updates []tracking.PathUpdate) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, u := range updates {
		fc.Features = append(fc.Features, rb.BuildFeatures(u)...)
	}
	return fc.MarshalJSON()
}

// BuildFeatures returns the GeoJSON features of one path update. Updates
// without a path have none.
func (rb *ResponseBuilder) BuildFeatures(u tracking.PathUpdate) []*geojson.Feature {
	if u.Path == nil {
		return nil
	}
	var out []*geojson.Feature
	for i, s := range u.Path.Segments() {
		shape := s.Shape(rb.graph)
		if len(shape) < 2 {
			continue
		}
		f := geojson.NewFeature(shape)
		f.Properties["kind"] = "segment"
		f.Properties["vehicleId"] = u.VehicleID
		f.Properties["status"] = u.Status.String()
		f.Properties["index"] = i
		f.Properties["edge"] = uint64(s.Edge)
		f.Properties["source"] = s.Source
		f.Properties["target"] = s.Target
		f.Properties["discontinuity"] = s.Discontinuity
		out = append(out, f)
	}
	for _, r := range u.Path.Results() {
		if !r.Edge.IsValid() {
			continue
		}
		f := geojson.NewFeature(r.Point)
		f.Properties["kind"] = "point"
		f.Properties["vehicleId"] = u.VehicleID
		f.Properties["edge"] = uint64(r.Edge)
		f.Properties["distanceFrom"] = r.DistanceFrom
		f.Properties["distanceAlong"] = r.DistanceAlong
		if ts := utils.Iso8601FromEpoch(r.EpochTime); ts != "" {
			f.Properties["time"] = ts
		}
		out = append(out, f)
	}
	return out
}
