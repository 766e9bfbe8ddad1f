// Package route loads the convoy route polyline from the supported input
// formats. It is the adapter between files on disk and the plain geometry
// the engine consumes.
package route

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/convoi-data/corridor.report/internal/geo"
)

// Load reads a route from path, picking the parser from the file extension:
// .geojson/.json for a GeoJSON LineString, anything else for x,y CSV.
func Load(path string) (geo.Polyline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open route: %w", err)
	}
	defer f.Close()

	var line geo.Polyline
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		line, err = ReadGeoJSON(f)
	default:
		line, err = ReadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse route %s: %w", path, err)
	}
	return line, nil
}

// geojsonGeometry is the subset of GeoJSON geometry the loader understands.
type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type geojsonFeature struct {
	Geometry geojsonGeometry `json:"geometry"`
}

type geojsonDoc struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
	Geometry *geojsonGeometry `json:"geometry"`
	// Set when the document itself is a bare geometry.
	Coordinates json.RawMessage `json:"coordinates"`
}

// ReadGeoJSON extracts the first LineString from a GeoJSON document: a bare
// geometry, a Feature, or the first line feature of a FeatureCollection.
// A MultiLineString contributes its first part.
func ReadGeoJSON(r io.Reader) (geo.Polyline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc geojsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}

	var geoms []geojsonGeometry
	switch doc.Type {
	case "FeatureCollection":
		for _, f := range doc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		if doc.Geometry != nil {
			geoms = append(geoms, *doc.Geometry)
		}
	default:
		geoms = append(geoms, geojsonGeometry{Type: doc.Type, Coordinates: doc.Coordinates})
	}

	for _, g := range geoms {
		line, ok, err := lineFromGeometry(g)
		if err != nil {
			return nil, err
		}
		if ok {
			return line, nil
		}
	}
	return nil, fmt.Errorf("no LineString geometry found")
}

func lineFromGeometry(g geojsonGeometry) (geo.Polyline, bool, error) {
	switch g.Type {
	case "LineString":
		var coords [][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, false, fmt.Errorf("invalid LineString coordinates: %w", err)
		}
		return toPolyline(coords)
	case "MultiLineString":
		var parts [][][]float64
		if err := json.Unmarshal(g.Coordinates, &parts); err != nil {
			return nil, false, fmt.Errorf("invalid MultiLineString coordinates: %w", err)
		}
		if len(parts) == 0 {
			return nil, false, nil
		}
		return toPolyline(parts[0])
	default:
		return nil, false, nil
	}
}

func toPolyline(coords [][]float64) (geo.Polyline, bool, error) {
	line := make(geo.Polyline, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, false, fmt.Errorf("coordinate %d has %d components, want at least 2", i, len(c))
		}
		line = append(line, geo.Point{X: c[0], Y: c[1]})
	}
	return line, true, nil
}

// ReadCSV reads an x,y route, one point per row. A non-numeric first row is
// treated as a header and skipped.
func ReadCSV(r io.Reader) (geo.Polyline, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var line geo.Polyline
	for rowIdx := 0; ; rowIdx++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("row %d has %d columns, want 2", rowIdx+1, len(rec))
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errX != nil || errY != nil {
			if rowIdx == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: invalid coordinates %q,%q", rowIdx+1, rec[0], rec[1])
		}
		line = append(line, geo.Point{X: x, Y: y})
	}
	return line, nil
}
