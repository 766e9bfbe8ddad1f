package route

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/convoi-data/corridor.report/internal/geo"
)

func TestReadGeoJSONVariants(t *testing.T) {
	want := geo.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 50}}

	testCases := []struct {
		name string
		doc  string
	}{
		{"bare_linestring", `{"type":"LineString","coordinates":[[0,0],[100,0],[200,50]]}`},
		{"feature", `{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[100,0],[200,50]]}}`},
		{"feature_collection", `{"type":"FeatureCollection","features":[
			{"geometry":{"type":"Point","coordinates":[1,1]}},
			{"geometry":{"type":"LineString","coordinates":[[0,0],[100,0],[200,50]]}}]}`},
		{"multilinestring_first_part", `{"type":"MultiLineString","coordinates":[[[0,0],[100,0],[200,50]],[[9,9],[8,8]]]}`},
		{"three_d_coordinates", `{"type":"LineString","coordinates":[[0,0,12],[100,0,13],[200,50,14]]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line, err := ReadGeoJSON(strings.NewReader(tc.doc))
			if err != nil {
				t.Fatalf("ReadGeoJSON: %v", err)
			}
			if len(line) != len(want) {
				t.Fatalf("got %d points, want %d", len(line), len(want))
			}
			for i := range want {
				if line[i] != want[i] {
					t.Errorf("point %d = %v, want %v", i, line[i], want[i])
				}
			}
		})
	}
}

func TestReadGeoJSONErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"not_json", `not json at all`},
		{"no_line", `{"type":"Point","coordinates":[1,2]}`},
		{"bad_coordinates", `{"type":"LineString","coordinates":[[1]]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadGeoJSON(strings.NewReader(tc.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	line, err := ReadCSV(strings.NewReader("x,y\n0,0\n100, 0\n200,50\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(line) != 3 {
		t.Fatalf("got %d points, want 3", len(line))
	}
	if line[2] != (geo.Point{X: 200, Y: 50}) {
		t.Errorf("last point = %v", line[2])
	}
}

func TestReadCSVBadRow(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("0,0\nbad,row\n")); err == nil {
		t.Error("expected error for a non-numeric body row")
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	gj := filepath.Join(dir, "route.geojson")
	if err := os.WriteFile(gj, []byte(`{"type":"LineString","coordinates":[[0,0],[10,0]]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	line, err := Load(gj)
	if err != nil || len(line) != 2 {
		t.Errorf("Load(geojson) = (%v, %v)", line, err)
	}

	cs := filepath.Join(dir, "route.csv")
	if err := os.WriteFile(cs, []byte("0,0\n10,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	line, err = Load(cs)
	if err != nil || len(line) != 2 {
		t.Errorf("Load(csv) = (%v, %v)", line, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
