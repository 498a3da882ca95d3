package gtfs

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
)

// LoadShapes reads the shapes of a GTFS zip from an HTTP(S) URL or a local path
func LoadShapes(urlOrPath string) (Shapes, error) {
	if strings.HasPrefix(urlOrPath, "http://") || strings.HasPrefix(urlOrPath, "https://") {
		return loadFromStaticZip(urlOrPath)
	}
	return loadFromLocalZip(urlOrPath)
}

// LoadShapesFromReader reads the shapes of a GTFS zip held by r
func LoadShapesFromReader(r io.ReaderAt, size int64) (Shapes, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	return consumeZip(zr.File)
}

func loadFromStaticZip(url string) (Shapes, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp("", "gtfs-*.zip")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	return loadFromLocalZip(tmp.Name())
}

func loadFromLocalZip(path string) (Shapes, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip %s: %w", path, err)
	}
	defer zr.Close()
	return consumeZip(zr.File)
}

func consumeZip(files []*zip.File) (Shapes, error) {
	for _, f := range files {
		// feeds are sometimes zipped with a top-level directory
		name := strings.ToLower(f.Name[strings.LastIndex(f.Name, "/")+1:])
		if name != "shapes.txt" {
			continue
		}
		shapes, err := consumeShapes(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		if len(shapes) == 0 {
			return nil, ErrNoShapes
		}
		return shapes, nil
	}
	return nil, ErrNoShapes
}
