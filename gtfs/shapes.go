package gtfs

import (
	"encoding/csv"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/paulmach/orb"
)

// Shapes maps shape_id to its points ordered by shape_pt_sequence
type Shapes map[string]orb.LineString

// NumPoints returns the number of points across all shapes
func (s Shapes) NumPoints() int {
	n := 0
	for _, ls := range s {
		n += len(ls)
	}
	return n
}

func consumeShapes(f *zip.File) (Shapes, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return Shapes{}, nil
	}

	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	sID := idx("shape_id")
	sLat := idx("shape_pt_lat")
	sLon := idx("shape_pt_lon")
	sSeq := idx("shape_pt_sequence")
	if sID < 0 || sLat < 0 || sLon < 0 || sSeq < 0 {
		return Shapes{}, nil
	}
	maxCol := max(sID, sLat, sLon, sSeq)

	tmp := map[string][]shapePoint{}
	for _, row := range rec[1:] {
		if len(row) <= maxCol {
			continue
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(row[sLat]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(row[sLon]), 64)
		seq, err3 := strconv.Atoi(strings.TrimSpace(row[sSeq]))
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		tmp[row[sID]] = append(tmp[row[sID]], shapePoint{lon: lon, lat: lat, seq: seq})
	}

	shapes := make(Shapes, len(tmp))
	for id, pts := range tmp {
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].seq < pts[j].seq })
		ls := make(orb.LineString, len(pts))
		for i, p := range pts {
			ls[i] = orb.Point{p.lon, p.lat}
		}
		shapes[id] = ls
	}
	return shapes, nil
}
