package tracking

import (
	"context"
	"errors"
	"slices"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/graph"
	"github.com/theoremus-urban-solutions/gtfsrt-mapmatch/gtfsrt"
)

// testNetwork is a chain of four edges along the equator and one detached edge
func testNetwork(t *testing.T) *graph.Network {
	t.Helper()
	shapes := map[string]orb.LineString{
		"a_line":     {{0, 0}, {0.001, 0}, {0.002, 0}, {0.003, 0}, {0.004, 0}},
		"b_detached": {{0.010, 0.010}, {0.011, 0.010}},
	}
	n := graph.FromShapes(shapes)
	if n.NumEdges() != 5 {
		t.Fatalf("expected 5 edges, got %d", n.NumEdges())
	}
	return n
}

type position struct {
	vehicle  string
	lon, lat float32
	ts       uint64
}

func feedOf(headerTS uint64, positions ...position) *gtfsrt.VehiclePositionFeed {
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(headerTS),
		},
	}
	for _, p := range positions {
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id: proto.String(p.vehicle),
			Vehicle: &gtfsrtpb.VehiclePosition{
				Trip:      &gtfsrtpb.TripDescriptor{TripId: proto.String("trip-" + p.vehicle)},
				Vehicle:   &gtfsrtpb.VehicleDescriptor{Id: proto.String(p.vehicle)},
				Position:  &gtfsrtpb.Position{Latitude: proto.Float32(p.lat), Longitude: proto.Float32(p.lon)},
				Timestamp: proto.Uint64(p.ts),
			},
		})
	}
	return gtfsrt.NewVehiclePositionFeed(fm)
}

func TestTracker_Ingest(t *testing.T) {
	n := testNetwork(t)
	detached := graph.GraphID(4)
	tr := NewTracker(n, Options{SearchRadiusMeters: 50, MaxTraceLength: 2, Workers: 2})
	ctx := context.Background()

	// first positions on edges 0 and 1
	updates, err := tr.Ingest(ctx, feedOf(100,
		position{vehicle: "bus-1", lon: 0.0002, lat: 0.00001, ts: 95},
		position{vehicle: "bus-1", lon: 0.0012, lat: 0.00001, ts: 100},
	))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(updates) != 1 || updates[0].Status != PathNew {
		t.Fatalf("expected one new path, got %+v", updates)
	}
	if got := updates[0].Path.Edges(); !slices.Equal(got, []graph.GraphID{0, 1}) {
		t.Errorf("expected edges [0 1], got %v", got)
	}
	if updates[0].TripID != "trip-bus-1" {
		t.Errorf("expected trip-bus-1, got %q", updates[0].TripID)
	}
	segs := updates[0].Path.Segments()
	if len(segs) != 2 || segs[0].Target != 1 || segs[1].Source != 0 || segs[1].Discontinuity {
		t.Errorf("consecutive runs on connected edges should be adjoined, got %+v", segs)
	}

	// moving on to edge 2 drops the oldest observation and overlaps the old path
	updates, err = tr.Ingest(ctx, feedOf(110, position{vehicle: "bus-1", lon: 0.0025, lat: 0.00001, ts: 110}))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(updates) != 1 || updates[0].Status != PathContinued {
		t.Fatalf("expected continued path, got %+v", updates)
	}
	if got := updates[0].Path.Edges(); !slices.Equal(got, []graph.GraphID{1, 2}) {
		t.Errorf("expected edges [1 2], got %v", got)
	}
	if updates[0].Previous != nil {
		t.Error("continued path should not hand over a previous path")
	}

	// stale feed is ignored
	stale := testutil.ToFloat64(staleFeedsTotal)
	updates, err = tr.Ingest(ctx, feedOf(105, position{vehicle: "bus-1", lon: 0.0035, lat: 0, ts: 105}))
	if err != nil || updates != nil {
		t.Fatalf("stale feed should be ignored, got %+v, %v", updates, err)
	}
	if got := testutil.ToFloat64(staleFeedsTotal) - stale; got != 1 {
		t.Errorf("expected one stale feed counted, got %v", got)
	}

	diverged := testutil.ToFloat64(pathUpdatesTotal.WithLabelValues("diverged"))

	// two jumps onto the detached edge push the old run out of the trace;
	// the position at 110 is not newer than the last one and is dropped
	updates, err = tr.Ingest(ctx, feedOf(130,
		position{vehicle: "bus-1", lon: 0.0102, lat: 0.01, ts: 120},
		position{vehicle: "bus-1", lon: 0.0105, lat: 0.01, ts: 130},
		position{vehicle: "bus-1", lon: 0.0103, lat: 0.01, ts: 110},
	))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("expected one update, got %+v", updates)
	}
	u := updates[0]
	if u.Status != PathDiverged {
		t.Fatalf("expected diverged path, got %s", u.Status)
	}
	if got := testutil.ToFloat64(pathUpdatesTotal.WithLabelValues("diverged")) - diverged; got != 1 {
		t.Errorf("expected one diverged update counted, got %v", got)
	}
	if u.Previous == nil || !slices.Equal(u.Previous.Edges(), []graph.GraphID{1, 2}) {
		t.Errorf("expected previous path [1 2], got %+v", u.Previous)
	}
	if got := u.Path.Edges(); !slices.Equal(got, []graph.GraphID{detached}) {
		t.Errorf("expected edges [%d], got %v", detached, got)
	}
	if segs := u.Path.Segments(); len(segs) != 1 || segs[0].Source > segs[0].Target {
		t.Errorf("expected one segment on the detached edge, got %+v", segs)
	}

	path, ok := tr.Path("bus-1")
	if !ok || path != u.Path {
		t.Error("Path should return the tracked path")
	}
	tr.Forget("bus-1")
	if _, ok := tr.Path("bus-1"); ok {
		t.Error("forgotten vehicle should have no path")
	}
}

func TestTracker_Unmatched(t *testing.T) {
	tr := NewTracker(testNetwork(t), Options{SearchRadiusMeters: 20})

	updates, err := tr.Ingest(context.Background(), feedOf(200,
		position{vehicle: "far", lon: 1, lat: 1, ts: 200},
		position{vehicle: "near", lon: 0.0005, lat: 0.00001, ts: 200},
	))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected two updates, got %+v", updates)
	}
	if updates[0].VehicleID != "far" || updates[0].Status != PathUnmatched || updates[0].Path != nil {
		t.Errorf("expected unmatched update for far, got %+v", updates[0])
	}
	near := updates[1]
	if near.VehicleID != "near" || near.Status != PathNew {
		t.Fatalf("expected new path for near, got %+v", near)
	}
	res := near.Path.Results()
	if len(res) != 1 || !res[0].HasState() || res[0].EpochTime != 200 {
		t.Errorf("unexpected results %+v", res)
	}
	if near.Path.Score() > 0 || near.Path.Score() < -5 {
		t.Errorf("expected score close to zero, got %f", near.Path.Score())
	}
	if _, ok := tr.Path("far"); ok {
		t.Error("unmatched vehicle should have no path")
	}
}

func TestTracker_Canceled(t *testing.T) {
	tr := NewTracker(testNetwork(t), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Ingest(ctx, feedOf(1, position{vehicle: "bus", lon: 0.0005, lat: 0, ts: 1}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPathStatus_String(t *testing.T) {
	tests := map[PathStatus]string{
		PathNew:        "new",
		PathContinued:  "continued",
		PathDiverged:   "diverged",
		PathUnmatched:  "unmatched",
		PathStatus(42): "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
