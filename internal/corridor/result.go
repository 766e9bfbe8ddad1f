// Package corridor implements the clearance-analysis engine for long rigid
// convoys: it densifies a route into stations, widens the corridor through
// curves from the local turning radius, samples a height surface across each
// transversal profile, and reduces the samples to per-station clearance
// verdicts, an obstacle list and a swept envelope polygon.
package corridor

import (
	"math"

	"github.com/convoi-data/corridor.report/internal/geo"
)

// Station is one analysis point along the densified route.
type Station struct {
	// Index is the position of the station in route order.
	Index int `json:"station"`
	// Position is the station location in world coordinates.
	Position geo.Point `json:"position"`
	// Distance is the cumulative distance from the route start in metres.
	Distance float64 `json:"distance_m"`
	// CurveRadius is the local turning radius in metres, +Inf on straights.
	CurveRadius float64 `json:"-"`
	// HalfWidth is the dynamic corridor half-width in metres.
	HalfWidth float64 `json:"dynamic_half_width_m"`
	// Sweep is the extra lateral width demanded by the curve, in metres.
	Sweep float64 `json:"lateral_sweep_m"`
}

// StationResult extends a Station with the outcome of its height profile.
// MaxHeight and MeanHeight are NaN when no sample along the profile carried
// usable data.
type StationResult struct {
	Station
	MaxHeight   float64 `json:"max_height_m"`
	MeanHeight  float64 `json:"mean_height_m"`
	ClearanceOK bool    `json:"clearance_ok"`
}

// HasHeight reports whether the station saw at least one defined sample.
func (r StationResult) HasHeight() bool { return !math.IsNaN(r.MaxHeight) }

// Obstacle marks a station whose profile rises above the required clearance.
type Obstacle struct {
	StationIndex int       `json:"station"`
	Distance     float64   `json:"distance_m"`
	Position     geo.Point `json:"position"`
	MaxHeight    float64   `json:"max_height_m"`
	// Exceedance is MaxHeight minus the required clearance; always > 0.
	Exceedance float64 `json:"exceedance_m"`
	HalfWidth  float64 `json:"dynamic_half_width_m"`
}

// Summary carries the run-level scalars for reporting.
type Summary struct {
	TotalLength      float64 `json:"total_length_m"`
	StationCount     int     `json:"station_count"`
	MaxCorridorWidth float64 `json:"max_corridor_width_m"`
	ObstacleCount    int     `json:"obstacle_count"`
	// WorstExceedance is 0 when there are no obstacles.
	WorstExceedance float64 `json:"worst_exceedance_m"`
	// NoDataStations counts stations judged clear only because their whole
	// profile lacked height data.
	NoDataStations int `json:"no_data_stations"`
	// Cancelled is set when the run stopped early on a context cancellation;
	// all other fields then describe the stations analysed so far.
	Cancelled bool `json:"cancelled"`
	// EnvelopeFallback is set when the disk union failed and the envelope is
	// the buffered-route substitute.
	EnvelopeFallback bool `json:"envelope_fallback"`
}

// Passable reports the overall verdict.
func (s Summary) Passable() bool { return s.ObstacleCount == 0 }

// Result is the full output of one analysis run.
type Result struct {
	Stations []StationResult
	Obstacles []Obstacle
	// Envelope is the outer ring of the swept corridor; empty rings are
	// reported as a warning, never as an error.
	Envelope geo.Ring
	Summary  Summary
}

func summarize(stations []StationResult, obstacles []Obstacle, cancelled, fallback bool) Summary {
	s := Summary{
		StationCount:     len(stations),
		ObstacleCount:    len(obstacles),
		Cancelled:        cancelled,
		EnvelopeFallback: fallback,
	}
	for _, st := range stations {
		if st.Distance > s.TotalLength {
			s.TotalLength = st.Distance
		}
		if w := 2 * st.HalfWidth; w > s.MaxCorridorWidth {
			s.MaxCorridorWidth = w
		}
		if !st.HasHeight() {
			s.NoDataStations++
		}
	}
	for _, ob := range obstacles {
		if ob.Exceedance > s.WorstExceedance {
			s.WorstExceedance = ob.Exceedance
		}
	}
	return s
}
