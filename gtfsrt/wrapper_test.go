package gtfsrt

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func vehicleEntity(id, vehicleID, tripID string, lat, lon float32, ts uint64) *gtfsrtpb.FeedEntity {
	vp := &gtfsrtpb.VehiclePosition{
		Position: &gtfsrtpb.Position{
			Latitude:  proto.Float32(lat),
			Longitude: proto.Float32(lon),
		},
	}
	if vehicleID != "" {
		vp.Vehicle = &gtfsrtpb.VehicleDescriptor{Id: proto.String(vehicleID)}
	}
	if tripID != "" {
		vp.Trip = &gtfsrtpb.TripDescriptor{TripId: proto.String(tripID)}
	}
	if ts > 0 {
		vp.Timestamp = proto.Uint64(ts)
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), Vehicle: vp}
}

func buildFeed(t *testing.T, headerTS uint64, entities ...*gtfsrtpb.FeedEntity) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(headerTS),
		},
		Entity: entities,
	}
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("Failed to marshal feed: %v", err)
	}
	return data
}

func TestParseVehiclePositions(t *testing.T) {
	withBearing := vehicleEntity("3", "bus-1", "trip-1", 42.70, 23.32, 1000)
	withBearing.Vehicle.Position.Bearing = proto.Float32(90)

	data := buildFeed(t, 1200,
		vehicleEntity("1", "bus-1", "trip-1", 42.71, 23.33, 1100),
		vehicleEntity("2", "", "trip-2", 42.80, 23.40, 0),
		withBearing,
		&gtfsrtpb.FeedEntity{Id: proto.String("4"), Vehicle: &gtfsrtpb.VehiclePosition{Trip: &gtfsrtpb.TripDescriptor{TripId: proto.String("trip-3")}}},
		vehicleEntity("5", "", "", 42.0, 23.0, 1000),
	)

	feed, err := ParseVehiclePositions(data)
	if err != nil {
		t.Fatalf("ParseVehiclePositions failed: %v", err)
	}

	if feed.GetTimestampForFeedMessage() != 1200 {
		t.Errorf("expected header timestamp 1200, got %d", feed.GetTimestampForFeedMessage())
	}
	vehicles := feed.GetAllVehicles()
	if len(vehicles) != 2 || vehicles[0] != "bus-1" || vehicles[1] != "trip-2" {
		t.Errorf("expected [bus-1 trip-2], got %v", vehicles)
	}
	if feed.NumObservations() != 3 {
		t.Errorf("expected 3 observations, got %d", feed.NumObservations())
	}
	if feed.NumSkipped() != 2 {
		t.Errorf("expected 2 skipped entities, got %d", feed.NumSkipped())
	}

	bus := feed.GetObservationsForVehicle("bus-1")
	if len(bus) != 2 {
		t.Fatalf("expected 2 observations for bus-1, got %d", len(bus))
	}
	if bus[0].Timestamp != 1000 || bus[1].Timestamp != 1100 {
		t.Errorf("observations should be oldest first, got %d then %d", bus[0].Timestamp, bus[1].Timestamp)
	}
	if bus[0].Bearing != 90 {
		t.Errorf("expected bearing 90, got %f", bus[0].Bearing)
	}
	if !math.IsNaN(bus[1].Bearing) {
		t.Errorf("missing bearing should be NaN, got %f", bus[1].Bearing)
	}
	if bus[0].Point[0] != float64(float32(23.32)) || bus[0].Point[1] != float64(float32(42.70)) {
		t.Errorf("unexpected point %v", bus[0].Point)
	}

	trip2 := feed.GetObservationsForVehicle("trip-2")
	if len(trip2) != 1 || trip2[0].Timestamp != 1200 {
		t.Errorf("observation without timestamp should use header time, got %+v", trip2)
	}
}

func TestParseVehiclePositions_Invalid(t *testing.T) {
	if _, err := ParseVehiclePositions([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Error("expected error for invalid protobuf")
	}
}

func TestClient_FetchVehiclePositions(t *testing.T) {
	data := buildFeed(t, 500, vehicleEntity("1", "tram-7", "", 42.69, 23.31, 490))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vp" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/x-protobuf")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	feed, err := c.FetchVehiclePositions(context.Background(), srv.URL+"/vp")
	if err != nil {
		t.Fatalf("FetchVehiclePositions failed: %v", err)
	}
	if got := feed.GetObservationsForVehicle("tram-7"); len(got) != 1 {
		t.Errorf("expected 1 observation for tram-7, got %d", len(got))
	}

	if _, err := c.FetchVehiclePositions(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for HTTP 404")
	}

	empty, err := c.Fetch(context.Background(), "")
	if err != nil || empty != nil {
		t.Errorf("empty url should be skipped, got %v, %v", empty, err)
	}
}
