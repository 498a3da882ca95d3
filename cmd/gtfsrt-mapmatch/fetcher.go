package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/gtfsrt"
)

// fetcher reads VehiclePositions feeds from URLs or local files.
// This is CLI-specific logic and is not part of the core library.
type fetcher struct {
	client *gtfsrt.Client
}

func newFetcher(timeout time.Duration) *fetcher {
	return &fetcher{client: gtfsrt.NewClient(timeout)}
}

// fetch returns the decoded feed at urlOrPath
func (f *fetcher) fetch(ctx context.Context, urlOrPath string) (*gtfsrt.VehiclePositionFeed, error) {
	if strings.HasPrefix(urlOrPath, "http://") || strings.HasPrefix(urlOrPath, "https://") {
		return f.client.FetchVehiclePositions(ctx, urlOrPath)
	}
	data, err := os.ReadFile(urlOrPath)
	if err != nil {
		return nil, err
	}
	return gtfsrt.ParseVehiclePositions(data)
}
