package server

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status                  string `json:"status"`
	LatestGTFSRealtimeEpoch int64  `json:"latest_gtfsrt_epoch"`
	Vehicles                int    `json:"vehicles"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	s.mu.RLock()
	resp := healthResponse{
		Status:                  "ok",
		LatestGTFSRealtimeEpoch: s.latestFeedTS,
		Vehicles:                len(s.vehicles),
	}
	s.mu.RUnlock()
	_ = json.NewEncoder(w).Encode(resp)
}
