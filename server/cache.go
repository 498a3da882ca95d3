package server

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/formatter"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/tracking"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/utils"
)

// Publish renders a batch of updates and replaces the stored entries of the
// vehicles they name. Vehicles absent from the batch keep their last entry.
// Must be called before the tracker's next Ingest.
func (s *Server) Publish(feedTS int64, updates []tracking.PathUpdate) {
	entries := make([]vehicleEntry, len(updates))
	for i, u := range updates {
		entries[i] = vehicleEntry{
			doc:      s.rb.BuildPathDocument(u),
			features: s.rb.BuildFeatures(u),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if feedTS > s.latestFeedTS {
		s.latestFeedTS = feedTS
	}
	for i, u := range updates {
		s.vehicles[u.VehicleID] = entries[i]
	}
	clear(s.responseCache)
	publishedVehicles.Set(float64(len(s.vehicles)))
}

// Forget drops the stored entry of a vehicle
func (s *Server) Forget(vehicleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vehicles, vehicleID)
	clear(s.responseCache)
	publishedVehicles.Set(float64(len(s.vehicles)))
}

func memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

// selectVehicles returns the ids matching the filters, sorted. Filters are
// case-insensitive and empty filters match everything. Caller holds s.mu.
func (s *Server) selectVehicles(vehicleRef, status string) []string {
	out := make([]string, 0, len(s.vehicles))
	for id, e := range s.vehicles {
		if vehicleRef != "" && strings.ToLower(id) != vehicleRef {
			continue
		}
		if status != "" && e.doc.Status != status {
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// response returns the rendered body for a format and filter set, building
// and memoizing it on a miss
func (s *Server) response(format, vehicleRef, status string) ([]byte, error) {
	vehicleRef = strings.ToLower(strings.TrimSpace(vehicleRef))
	status = strings.ToLower(strings.TrimSpace(status))
	key := memoKey(format, vehicleRef, status)

	s.mu.RLock()
	if buf, ok := s.responseCache[key]; ok {
		s.mu.RUnlock()
		responseCacheHits.WithLabelValues(format).Inc()
		return buf, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if buf, ok := s.responseCache[key]; ok {
		responseCacheHits.WithLabelValues(format).Inc()
		return buf, nil
	}
	responseCacheMisses.WithLabelValues(format).Inc()
	ids := s.selectVehicles(vehicleRef, status)

	var buf []byte
	var err error
	if format == "geojson" {
		fc := geojson.NewFeatureCollection()
		for _, id := range ids {
			fc.Features = append(fc.Features, s.vehicles[id].features...)
		}
		buf, err = fc.MarshalJSON()
	} else {
		res := formatter.PathsResponse{
			ResponseTimestamp: utils.Iso8601FromUnixSeconds(s.latestFeedTS),
			Paths:             make([]formatter.PathDocument, 0, len(ids)),
		}
		for _, id := range ids {
			res.Paths = append(res.Paths, s.vehicles[id].doc)
		}
		buf, err = json.Marshal(res)
	}
	if err != nil {
		return nil, err
	}
	s.responseCache[key] = buf
	return buf, nil
}
