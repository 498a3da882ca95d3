package gtfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/paulmach/orb"
)

// buildZip returns an in-memory zip holding the given files
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

const testShapes = "\ufeffshape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
	"S1,42.70,23.32,2\n" +
	"S1,42.69,23.31,1\n" +
	"S1,42.71,23.33,3\n" +
	"S2,42.80,23.40,1\n" +
	"S2,bad,23.41,2\n" +
	"S2,42.81,23.41,3\n"

func TestLoadShapesFromReader(t *testing.T) {
	data := buildZip(t, map[string]string{
		"agency.txt": "agency_id,agency_name\nSOFIA,Sofia\n",
		"shapes.txt": testShapes,
	})

	shapes, err := LoadShapesFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("LoadShapesFromReader failed: %v", err)
	}

	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}
	want := orb.LineString{{23.31, 42.69}, {23.32, 42.70}, {23.33, 42.71}}
	got := shapes["S1"]
	if len(got) != len(want) {
		t.Fatalf("expected %d points for S1, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("S1 point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if len(shapes["S2"]) != 2 {
		t.Errorf("malformed row should be skipped, got %v", shapes["S2"])
	}
	if shapes.NumPoints() != 5 {
		t.Errorf("expected 5 points, got %d", shapes.NumPoints())
	}
}

func TestLoadShapesFromReader_NestedDirectory(t *testing.T) {
	data := buildZip(t, map[string]string{"feed/shapes.txt": testShapes})

	shapes, err := LoadShapesFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("LoadShapesFromReader failed: %v", err)
	}
	if len(shapes) != 2 {
		t.Errorf("expected 2 shapes, got %d", len(shapes))
	}
}

func TestLoadShapesFromReader_NoShapes(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "missing shapes.txt", files: map[string]string{"stops.txt": "stop_id\n1\n"}},
		{name: "header only", files: map[string]string{"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n"}},
		{name: "missing columns", files: map[string]string{"shapes.txt": "shape_id,lat,lon\nS1,1,2\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildZip(t, tt.files)
			_, err := LoadShapesFromReader(bytes.NewReader(data), int64(len(data)))
			if !errors.Is(err, ErrNoShapes) {
				t.Errorf("expected ErrNoShapes, got %v", err)
			}
		})
	}
}

func TestLoadShapes_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtfs.zip")
	if err := os.WriteFile(path, buildZip(t, map[string]string{"shapes.txt": testShapes}), 0644); err != nil {
		t.Fatalf("Failed to write zip: %v", err)
	}

	shapes, err := LoadShapes(path)
	if err != nil {
		t.Fatalf("LoadShapes failed: %v", err)
	}
	if len(shapes) != 2 {
		t.Errorf("expected 2 shapes, got %d", len(shapes))
	}

	if _, err := LoadShapes(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestLoadShapesFromReader_NotAZip(t *testing.T) {
	data := []byte("definitely not a zip")
	if _, err := LoadShapesFromReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected error for invalid archive")
	}
}
