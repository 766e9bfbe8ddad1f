package corridor

import (
	"context"
	"fmt"

	"github.com/convoi-data/corridor.report/internal/geo"
	"github.com/convoi-data/corridor.report/internal/monitoring"
	"github.com/convoi-data/corridor.report/internal/raster"
	"github.com/convoi-data/corridor.report/internal/vehicle"
)

// Config carries the parameters of one analysis run.
type Config struct {
	// Vehicle is the convoy geometry.
	Vehicle vehicle.Spec
	// RequiredHeight is the vertical clearance the convoy needs, in metres.
	RequiredHeight float64
	// Spacing is the station spacing along the route, in metres.
	Spacing float64
	// SamplesPerProfile is the number of height samples per transversal.
	SamplesPerProfile int
	// Unioner builds the envelope; nil selects geo.PolyclipUnioner.
	Unioner geo.Unioner
	// Progress, when set, is called once per analysed station with the
	// station index and the station total. Advisory only.
	Progress func(done, total int)
}

// Validate reports the first fatal configuration problem.
func (c Config) Validate() error {
	if err := c.Vehicle.Validate(); err != nil {
		return err
	}
	if c.RequiredHeight < 0 {
		return fmt.Errorf("required height must be non-negative, got %g", c.RequiredHeight)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("station spacing must be positive, got %g", c.Spacing)
	}
	if c.SamplesPerProfile < 3 {
		return fmt.Errorf("samples per profile must be at least 3, got %d", c.SamplesPerProfile)
	}
	return nil
}

// Analyzer runs the corridor clearance pipeline.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer validates the configuration and returns an Analyzer.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}
	return &Analyzer{cfg: cfg}, nil
}

// Run analyses the route against the height surface. Stations are processed
// strictly in route order; cancellation via ctx stops the per-station loop
// but the stations analysed so far still flow into the envelope and summary,
// with Summary.Cancelled set. Fatal input problems return an error and no
// result.
func (a *Analyzer) Run(ctx context.Context, route geo.Polyline, heights raster.Source) (*Result, error) {
	stations, distances, err := Densify(route, a.cfg.Spacing)
	if err != nil {
		return nil, err
	}

	results := make([]StationResult, 0, len(stations))
	var obstacles []Obstacle
	cancelled := false

	for idx, pos := range stations {
		if ctx.Err() != nil {
			monitoring.Logf("analysis cancelled after %d of %d stations", idx, len(stations))
			cancelled = true
			break
		}

		radius := CurveRadius(stations, idx)
		halfWidth, sweep := HalfWidth(radius, a.cfg.Vehicle)
		st := Station{
			Index:       idx,
			Position:    pos,
			Distance:    distances[idx],
			CurveRadius: radius,
			HalfWidth:   halfWidth,
			Sweep:       sweep,
		}

		profile := SampleProfile(heights, pos, travelDirection(stations, idx),
			halfWidth, a.cfg.SamplesPerProfile)
		r := evaluate(st, profile, a.cfg.RequiredHeight)
		results = append(results, r)

		if ob, bad := obstacleFor(r, a.cfg.RequiredHeight); bad {
			obstacles = append(obstacles, ob)
		}
		if a.cfg.Progress != nil {
			a.cfg.Progress(idx+1, len(stations))
		}
	}

	envelope, fallback := BuildEnvelope(results, a.cfg.Unioner)

	return &Result{
		Stations:  results,
		Obstacles: obstacles,
		Envelope:  envelope,
		Summary:   summarize(results, obstacles, cancelled, fallback),
	}, nil
}
