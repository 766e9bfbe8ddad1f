package corridor

import (
	"fmt"
	"math"

	"github.com/convoi-data/corridor.report/internal/geo"
)

// Densify subdivides each segment of the route into equal parts no longer
// than spacing and returns the resulting stations with their cumulative
// distances. The route start is always station 0 at distance 0; spacing is
// uniform within a segment but may differ between segments.
func Densify(route geo.Polyline, spacing float64) ([]geo.Point, []float64, error) {
	if len(route) < 2 {
		return nil, nil, fmt.Errorf("route must have at least 2 points, got %d", len(route))
	}
	if spacing <= 0 {
		return nil, nil, fmt.Errorf("station spacing must be positive, got %g", spacing)
	}

	stations := []geo.Point{route[0]}
	distances := []float64{0}
	cumul := 0.0

	for i := 0; i < len(route)-1; i++ {
		p1, p2 := route[i], route[i+1]
		segment := p1.Dist(p2)
		if segment == 0 {
			continue
		}
		parts := int(math.Ceil(segment / spacing))
		step := segment / float64(parts)
		for j := 1; j <= parts; j++ {
			t := float64(j) / float64(parts)
			cumul += step
			stations = append(stations, geo.Point{
				X: p1.X + t*(p2.X-p1.X),
				Y: p1.Y + t*(p2.Y-p1.Y),
			})
			distances = append(distances, cumul)
		}
	}

	// Every segment was zero-length: only the start station survives, which
	// leaves no travel direction to sample across.
	if len(stations) < 2 {
		return nil, nil, fmt.Errorf("route has zero length")
	}

	return stations, distances, nil
}
