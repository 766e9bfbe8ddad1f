package corridor

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// reduceProfile collapses one transversal profile to its maximum and mean
// over defined samples. Both are NaN when every sample is undefined.
func reduceProfile(heights []float64) (maxH, meanH float64) {
	defined := heights[:0:0]
	for _, h := range heights {
		if !math.IsNaN(h) {
			defined = append(defined, h)
		}
	}
	if len(defined) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Max(defined), stat.Mean(defined, nil)
}

// evaluate builds the StationResult for one station from its profile.
// A station with no defined sample is treated as clear: there is nothing to
// judge, which the summary surfaces via NoDataStations rather than hiding.
func evaluate(st Station, heights []float64, requiredHeight float64) StationResult {
	maxH, meanH := reduceProfile(heights)
	ok := true
	if !math.IsNaN(maxH) {
		ok = maxH < requiredHeight
	}
	return StationResult{
		Station:     st,
		MaxHeight:   maxH,
		MeanHeight:  meanH,
		ClearanceOK: ok,
	}
}

// obstacleFor derives the obstacle record for a failed station, or false when
// the station does not qualify (clear, or no defined height).
func obstacleFor(r StationResult, requiredHeight float64) (Obstacle, bool) {
	if r.ClearanceOK || !r.HasHeight() {
		return Obstacle{}, false
	}
	return Obstacle{
		StationIndex: r.Index,
		Distance:     r.Distance,
		Position:     r.Position,
		MaxHeight:    r.MaxHeight,
		Exceedance:   r.MaxHeight - requiredHeight,
		HalfWidth:    r.HalfWidth,
	}, true
}
