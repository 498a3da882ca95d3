package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/formatter"
)

// Server serves the published vehicle paths
type Server struct {
	rb         *formatter.ResponseBuilder
	httpServer *http.Server

	mu            sync.RWMutex
	latestFeedTS  int64
	vehicles      map[string]vehicleEntry
	responseCache map[string][]byte
}

type vehicleEntry struct {
	doc      formatter.PathDocument
	features []*geojson.Feature
}

// New creates a server listening on port once ListenAndServe is called
func New(rb *formatter.ResponseBuilder, port int) *Server {
	s := &Server{
		rb:            rb,
		vehicles:      map[string]vehicleEntry{},
		responseCache: map[string][]byte{},
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routes of the API. Responses are gzipped for clients
// that accept it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/paths.json", s.handlePathsJSON)
	mux.HandleFunc("/api/paths.geojson", s.handlePathsGeoJSON)
	mux.Handle("/metrics", promhttp.Handler())
	return gzhttp.GzipHandler(mux)
}

// ListenAndServe blocks until the server is shut down. It returns nil after a
// graceful Shutdown.
func (s *Server) ListenAndServe() error {
	log.Printf("server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for active requests
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Printf("server shut down successfully")
	return nil
}
