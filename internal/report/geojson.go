package report

import (
	"encoding/json"
	"io"
	"math"

	"github.com/convoi-data/corridor.report/internal/corridor"
	"github.com/convoi-data/corridor.report/internal/geo"
)

// Feature is a minimal GeoJSON feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry is a minimal GeoJSON geometry.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// FeatureCollection is a minimal GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// EnvelopeFeature wraps the corridor envelope ring as a GeoJSON polygon with
// the run attributes the GIS layer carries.
func EnvelopeFeature(ring geo.Ring, bladeType string, info RunInfo) Feature {
	coords := make([][]float64, 0, len(ring)+1)
	for _, p := range ring {
		coords = append(coords, []float64{p.X, p.Y})
	}
	if len(ring) > 0 {
		coords = append(coords, []float64{ring[0].X, ring[0].Y}) // close the ring
	}
	return Feature{
		Type:     "Feature",
		Geometry: Geometry{Type: "Polygon", Coordinates: [][][]float64{coords}},
		Properties: map[string]interface{}{
			"blade_type":  bladeType,
			"width_max_m": info.Result.Summary.MaxCorridorWidth,
			"length_m":    info.Result.Summary.TotalLength,
			"area_m2":     ring.Area(),
		},
	}
}

// StationFeatures converts the station table to GeoJSON point features.
func StationFeatures(stations []corridor.StationResult) []Feature {
	features := make([]Feature, 0, len(stations))
	for _, st := range stations {
		status := "OK"
		if !st.ClearanceOK {
			status = "OBSTACLE"
		}
		props := map[string]interface{}{
			"station":    st.Index,
			"distance_m": st.Distance,
			"clearance":  status,
			"width_m":    st.HalfWidth * 2,
		}
		if !math.IsNaN(st.MaxHeight) {
			props["max_height"] = st.MaxHeight
		}
		features = append(features, pointFeature(st.Position, props))
	}
	return features
}

// ObstacleFeatures converts the obstacle list to GeoJSON point features.
func ObstacleFeatures(obstacles []corridor.Obstacle) []Feature {
	features := make([]Feature, 0, len(obstacles))
	for _, ob := range obstacles {
		features = append(features, pointFeature(ob.Position, map[string]interface{}{
			"station":    ob.StationIndex,
			"distance_m": ob.Distance,
			"height_m":   ob.MaxHeight,
			"exceed_m":   ob.Exceedance,
		}))
	}
	return features
}

// WriteGeoJSON writes a feature collection.
func WriteGeoJSON(w io.Writer, features []Feature) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FeatureCollection{Type: "FeatureCollection", Features: features})
}

func pointFeature(p geo.Point, props map[string]interface{}) Feature {
	return Feature{
		Type:       "Feature",
		Geometry:   Geometry{Type: "Point", Coordinates: []float64{p.X, p.Y}},
		Properties: props,
	}
}
