package geo

import (
	"fmt"

	polygon "github.com/ctessum/geom"
)

// Unioner merges a set of rings into a single outer ring. Implementations may
// fail (or be entirely unavailable on some targets); callers are expected to
// carry a fallback.
type Unioner interface {
	Union(rings []Ring) (Ring, error)
}

// PolyclipUnioner merges rings with the polygon clipping operations from
// github.com/ctessum/geom. Union results that decompose into several disjoint
// polygons keep only the largest-area part.
type PolyclipUnioner struct{}

// Union implements Unioner. Clipping-library panics are converted to errors so
// a bad input degrades instead of crashing the run.
func (PolyclipUnioner) Union(rings []Ring) (ring Ring, err error) {
	if len(rings) == 0 {
		return nil, fmt.Errorf("no rings to union")
	}

	defer func() {
		if r := recover(); r != nil {
			ring, err = nil, fmt.Errorf("polygon union panicked: %v", r)
		}
	}()

	// Union returns the Polygonal interface, so the accumulator is typed as
	// the interface rather than the concrete Polygon.
	var merged polygon.Polygonal = toPolygon(rings[0])
	for _, r := range rings[1:] {
		merged = merged.Union(toPolygon(r))
	}

	var best polygon.Polygon
	bestArea := 0.0
	for _, p := range merged.Polygons() {
		if a := p.Area(); a > bestArea {
			best, bestArea = p, a
		}
	}
	if len(best) == 0 || len(best[0]) < 3 {
		return nil, fmt.Errorf("union produced no usable polygon")
	}

	outer := make(Ring, len(best[0]))
	for i, pt := range best[0] {
		outer[i] = Point{X: pt.X, Y: pt.Y}
	}
	return outer, nil
}

func toPolygon(r Ring) polygon.Polygon {
	path := make([]polygon.Point, len(r))
	for i, pt := range r {
		path[i] = polygon.Point{X: pt.X, Y: pt.Y}
	}
	return polygon.Polygon{path}
}
