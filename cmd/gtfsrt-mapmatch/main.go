package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/config"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/formatter"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/graph"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/gtfs"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/internal"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/server"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/tracking"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|watch|serve")
	format := flag.String("format", "", "json|geojson (overrides config)")
	feedName := flag.String("feed", "", "feed name from config.feeds[]")
	static := flag.String("gtfs", "", "GTFS static zip URL or path (overrides config)")
	vehiclePositions := flag.String("vehiclePositions", "", "GTFS-RT VehiclePositions URL or path (overrides config)")
	radius := flag.Float64("radius", -1, "search radius in meters (overrides config)")
	iterations := flag.Int("iterations", 0, "number of polls in watch mode, 0 for unlimited")
	flag.Parse()

	internal.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		panic(err)
	}

	netCfg, rtCfg := config.SelectFeed(*feedName)
	if *static != "" {
		netCfg.StaticURL = *static
	}
	if *vehiclePositions != "" {
		rtCfg.VehiclePositionsURL = *vehiclePositions
	}
	if netCfg.StaticURL == "" || rtCfg.VehiclePositionsURL == "" {
		panic("GTFS static and VehiclePositions sources are required")
	}
	matcherCfg := config.Config.Matcher
	if *radius >= 0 {
		matcherCfg.SearchRadiusMeters = *radius
	}
	outFormat := config.Config.Output.Format
	if *format != "" {
		outFormat = *format
	}

	shapes, err := gtfs.LoadShapes(netCfg.StaticURL)
	if err != nil {
		panic(err)
	}
	network := graph.FromShapes(shapes)
	log.Printf("network built: %d shapes, %d points, %d edges, %d nodes",
		len(shapes), shapes.NumPoints(), network.NumEdges(), network.NumNodes())

	tracker := tracking.NewTracker(network, tracking.Options{
		SearchRadiusMeters: matcherCfg.SearchRadiusMeters,
		MaxTraceLength:     matcherCfg.MaxTraceLength,
		Workers:            matcherCfg.Workers,
	})
	f := newFetcher(time.Duration(rtCfg.TimeoutMS) * time.Millisecond)
	rb := formatter.NewResponseBuilder(network)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ingest := func() ([]tracking.PathUpdate, int64, error) {
		feed, err := f.fetch(ctx, rtCfg.VehiclePositionsURL)
		if err != nil {
			return nil, 0, err
		}
		log.Printf("feed %d: %d observations, %d entities skipped",
			feed.GetTimestampForFeedMessage(), feed.NumObservations(), feed.NumSkipped())
		updates, err := tracker.Ingest(ctx, feed)
		return updates, feed.GetTimestampForFeedMessage(), err
	}
	emit := func() error {
		updates, _, err := ingest()
		if err != nil {
			return err
		}
		var buf []byte
		switch outFormat {
		case "geojson":
			buf, err = rb.BuildGeoJSON(updates)
		default:
			buf, err = rb.BuildJSON(updates)
		}
		if err != nil {
			return err
		}
		fmt.Println(string(buf))
		return nil
	}
	interval := time.Duration(rtCfg.ReadIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 10 * time.Second
	}

	switch *mode {
	case "oneshot":
		if err := emit(); err != nil {
			panic(err)
		}
	case "watch":
		limiter := rate.NewLimiter(rate.Every(interval), 1)
		for n := 0; *iterations == 0 || n < *iterations; n++ {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			if err := emit(); err != nil {
				log.Printf("poll failed: %v", err)
			}
		}
	case "serve":
		srv := server.New(rb, config.Config.Server.Port)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				log.Fatalf("%v", err)
			}
		}()
		limiter := rate.NewLimiter(rate.Every(interval), 1)
		for limiter.Wait(ctx) == nil {
			updates, feedTS, err := ingest()
			if err != nil {
				log.Printf("poll failed: %v", err)
				continue
			}
			srv.Publish(feedTS, updates)
		}
		log.Printf("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("%v", err)
		}
	default:
		panic("unknown mode")
	}
}
