package corridor

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/convoi-data/corridor.report/internal/geo"
	"github.com/convoi-data/corridor.report/internal/raster"
)

const (
	// minPlausibleHeight and maxPlausibleHeight bound the credible height
	// range (same unit as the surface); values outside are treated as
	// measurement artefacts.
	minPlausibleHeight = -100.0
	maxPlausibleHeight = 200.0
)

// travelDirection returns the unit travel direction at station idx: the
// forward difference to the next station, or the backward difference at the
// final station.
func travelDirection(stations []geo.Point, idx int) geo.Point {
	var dir geo.Point
	if idx < len(stations)-1 {
		dir = stations[idx+1].Sub(stations[idx])
	} else {
		dir = stations[idx].Sub(stations[idx-1])
	}
	return dir.Unit()
}

// SampleProfile reads the height surface at count evenly spaced offsets along
// the transversal through center, spanning [-halfWidth, +halfWidth] across
// the travel direction. Out-of-grid coordinates, no-data cells and values
// outside the plausible range yield NaN; sampling itself never fails.
func SampleProfile(src raster.Source, center, direction geo.Point, halfWidth float64, count int) []float64 {
	normal := direction.Perp()
	offsets := make([]float64, count)
	floats.Span(offsets, -halfWidth, halfWidth)

	noData, hasNoData := src.NoData()

	heights := make([]float64, count)
	for i, off := range offsets {
		p := center.Add(normal.Scale(off))
		row, col, ok := src.WorldToCell(p)
		if !ok {
			heights[i] = math.NaN()
			continue
		}
		v := src.ValueAt(row, col)
		if hasNoData && v == noData {
			heights[i] = math.NaN()
			continue
		}
		if v < minPlausibleHeight || v > maxPlausibleHeight {
			heights[i] = math.NaN()
			continue
		}
		heights[i] = v
	}
	return heights
}
