package db

import (
	"math"

	"github.com/google/uuid"

	"github.com/convoi-data/corridor.report/internal/corridor"
	"github.com/convoi-data/corridor.report/internal/vehicle"
)

// NewRunID returns a fresh identifier for a stored run.
func NewRunID() string {
	return uuid.NewString()
}

// RunFromResult flattens an analysis result into the stored form.
// envelopeGeoJSON may be empty when the envelope was not serialized.
func RunFromResult(id string, profile vehicle.Profile, requiredHeight, spacing float64, res *corridor.Result, envelopeGeoJSON string) *Run {
	run := &Run{
		ID:              id,
		Profile:         profile.Name,
		BladeLength:     profile.BladeLength,
		VehicleWidth:    profile.Width,
		RequiredHeight:  requiredHeight,
		Spacing:         spacing,
		TotalLength:     res.Summary.TotalLength,
		StationCount:    res.Summary.StationCount,
		MaxWidth:        res.Summary.MaxCorridorWidth,
		ObstacleCount:   res.Summary.ObstacleCount,
		WorstExceedance: res.Summary.WorstExceedance,
		NoDataStations:  res.Summary.NoDataStations,
		Cancelled:       res.Summary.Cancelled,
		EnvelopeGeoJSON: envelopeGeoJSON,
	}

	run.Stations = make([]StationRow, 0, len(res.Stations))
	for _, st := range res.Stations {
		row := StationRow{
			Station:     st.Index,
			Distance:    st.Distance,
			X:           st.Position.X,
			Y:           st.Position.Y,
			CurveRadius: encodeRadius(st.CurveRadius),
			HalfWidth:   st.HalfWidth,
			Sweep:       st.Sweep,
			ClearanceOK: st.ClearanceOK,
		}
		if st.HasHeight() {
			maxH, meanH := st.MaxHeight, st.MeanHeight
			row.MaxHeight = &maxH
			row.MeanHeight = &meanH
		}
		run.Stations = append(run.Stations, row)
	}

	run.Obstacles = make([]ObstacleRow, 0, len(res.Obstacles))
	for _, ob := range res.Obstacles {
		run.Obstacles = append(run.Obstacles, ObstacleRow{
			Station:    ob.StationIndex,
			Distance:   ob.Distance,
			X:          ob.Position.X,
			Y:          ob.Position.Y,
			MaxHeight:  ob.MaxHeight,
			Exceedance: ob.Exceedance,
		})
	}

	return run
}

// encodeRadius flattens the +Inf straight-line radius to -1, matching the
// CSV export convention.
func encodeRadius(radius float64) float64 {
	if math.IsInf(radius, 1) {
		return -1
	}
	return radius
}
