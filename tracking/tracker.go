package tracking

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/graph"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/match"
)

// Tracker keeps the matched path of every vehicle seen in the feeds
type Tracker struct {
	network Network
	opts    Options

	mu         sync.Mutex
	lastFeedTS int64
	vehicles   map[string]*vehicleTrack
}

// NewTracker creates a tracker matching onto network
func NewTracker(network Network, opts Options) *Tracker {
	return &Tracker{
		network:  network,
		opts:     opts,
		vehicles: map[string]*vehicleTrack{},
	}
}

// Ingest adds the observations of a feed and re-matches every vehicle that
// reported a newer position. Feeds not newer than the last ingested one are
// ignored. Updates are ordered by vehicle id.
func (t *Tracker) Ingest(ctx context.Context, feed *gtfsrt.VehiclePositionFeed) ([]PathUpdate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ts := feed.GetTimestampForFeedMessage()
	ctx, span := otel.Tracer("tracking").Start(ctx, "tracking.Tracker.Ingest")
	defer span.End()
	span.SetAttributes(attribute.Int64("feed_timestamp", ts))

	if ts != 0 && ts <= t.lastFeedTS {
		log.Printf("ignoring stale feed: timestamp %d not newer than %d", ts, t.lastFeedTS)
		staleFeedsTotal.Inc()
		span.SetStatus(codes.Ok, "stale feed")
		return nil, nil
	}
	start := time.Now()
	if ts != 0 {
		t.lastFeedTS = ts
	}

	ids := feed.GetAllVehicles()
	tracks := make([]*vehicleTrack, len(ids))
	for i, id := range ids {
		tr := t.vehicles[id]
		if tr == nil {
			tr = &vehicleTrack{}
			t.vehicles[id] = tr
		}
		tracks[i] = tr
	}

	// each goroutine owns exactly one track
	updates := make([]PathUpdate, len(ids))
	changed := make([]bool, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(t.opts.Workers, 1))
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			updates[i], changed[i] = t.update(id, tracks[i], feed.GetObservationsForVehicle(id))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ingest canceled")
		return nil, err
	}
	ingestDuration.Observe(time.Since(start).Seconds())

	out := make([]PathUpdate, 0, len(ids))
	for i, u := range updates {
		if !changed[i] {
			continue
		}
		if u.Status == PathDiverged {
			log.Printf("vehicle %s diverged: %d edges replaced by %d", u.VehicleID, len(u.Previous.Edges()), len(u.Path.Edges()))
		}
		pathUpdatesTotal.WithLabelValues(u.Status.String()).Inc()
		out = append(out, u)
	}
	span.SetAttributes(
		attribute.Int("vehicles", len(ids)),
		attribute.Int("updates", len(out)),
	)
	return out, nil
}

// update appends the new observations of one vehicle and re-matches its
// trace. It reports false when nothing newer was observed.
func (t *Tracker) update(id string, tr *vehicleTrack, obs []gtfsrt.Observation) (PathUpdate, bool) {
	appended := 0
	tripID := ""
	for _, o := range obs {
		if len(tr.trace) > 0 && o.Timestamp <= tr.lastTS {
			continue
		}
		tr.trace = append(tr.trace, o)
		tr.lastTS = o.Timestamp
		tripID = o.TripID
		appended++
	}
	if appended == 0 {
		return PathUpdate{}, false
	}
	if n := t.opts.MaxTraceLength; n > 0 && len(tr.trace) > n {
		tr.trace = append(tr.trace[:0], tr.trace[len(tr.trace)-n:]...)
	}

	u := PathUpdate{VehicleID: id, TripID: tripID}
	traceLength.Observe(float64(len(tr.trace)))
	next := t.matchTrace(tr.trace)
	if len(next.TraversedEdges()) == 0 {
		u.Status = PathUnmatched
		if tr.hasPath {
			u.Path = &tr.path
		}
		return u, true
	}

	switch {
	case !tr.hasPath:
		u.Status = PathNew
	case tr.path.Equal(next):
		u.Status = PathContinued
	default:
		u.Status = PathDiverged
		u.Previous = tr.path.Move()
	}
	tr.path.Assign(next)
	tr.hasPath = true
	u.Path = &tr.path
	return u, true
}

// matchTrace snaps every observation to its nearest edge. The score is the
// negated mean snapping distance of the matched observations.
func (t *Tracker) matchTrace(trace []gtfsrt.Observation) *match.MatchResults {
	results := make([]match.MatchResult, len(trace))
	sum, matched := 0.0, 0
	for i, o := range trace {
		c, ok := t.network.Nearest(o.Point, t.opts.SearchRadiusMeters)
		if !ok {
			results[i] = match.MatchResult{
				Point:     o.Point,
				Edge:      graph.InvalidGraphID,
				EpochTime: float64(o.Timestamp),
				State:     match.InvalidStateID,
			}
			continue
		}
		results[i] = match.MatchResult{
			Point:         c.Point,
			DistanceFrom:  c.Distance,
			Edge:          c.Edge,
			DistanceAlong: c.Along,
			EpochTime:     float64(o.Timestamp),
			State:         match.NewStateID(uint32(i), 0),
		}
		sum += c.Distance
		matched++
	}

	score := 0.0
	if matched > 0 {
		score = -sum / float64(matched)
	}
	return match.New(results, match.BuildSegments(results, t.network), score)
}

// Path returns the current path of a vehicle. The path stays owned by the
// tracker and is valid until the next Ingest.
func (t *Tracker) Path(vehicleID string) (*match.MatchResults, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tr := t.vehicles[vehicleID]
	if tr == nil || !tr.hasPath {
		return nil, false
	}
	return &tr.path, true
}

// Forget drops everything known about a vehicle
func (t *Tracker) Forget(vehicleID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.vehicles, vehicleID)
}
