package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/tracking"
)

var validStatuses = map[string]bool{
	tracking.PathNew.String():       true,
	tracking.PathContinued.String(): true,
	tracking.PathDiverged.String():  true,
	tracking.PathUnmatched.String(): true,
}

type errorPayload struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorPayload{Error: msg})
}

func (s *Server) handlePathsJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	s.servePaths(w, r, "json")
}

func (s *Server) handlePathsGeoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	s.servePaths(w, r, "geojson")
}

func (s *Server) servePaths(w http.ResponseWriter, r *http.Request, format string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[strings.ToLower(k)] = v[0]
		}
	}
	status := strings.ToLower(strings.TrimSpace(params["status"]))
	if status != "" && !validStatuses[status] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", params["status"]))
		return
	}
	buf, err := s.response(format, params["vehicleref"], status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_, _ = w.Write(buf)
}
