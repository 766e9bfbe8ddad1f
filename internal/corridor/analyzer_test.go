package corridor

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/convoi-data/corridor.report/internal/geo"
	"github.com/convoi-data/corridor.report/internal/raster"
	"github.com/convoi-data/corridor.report/internal/testutil"
	"github.com/convoi-data/corridor.report/internal/vehicle"
)

// corridorGrid covers x in [-5,105], y in [-5,5] with 1m cells, filled with
// the given height.
func corridorGrid(t *testing.T, height float64) *raster.MemGrid {
	t.Helper()
	noData := -9999.0
	g, err := raster.NewMemGrid(10, 110, -5, 5, 1, -1, &noData)
	if err != nil {
		t.Fatalf("NewMemGrid: %v", err)
	}
	g.Fill(height)
	return g
}

func testConfig() Config {
	return Config{
		Vehicle:           vehicle.Spec{StaticWidth: 5, SweepLength: 20},
		RequiredHeight:    5,
		Spacing:           10,
		SamplesPerProfile: 5,
	}
}

var straightRoute = geo.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}}

func TestRunStraightFlatRoute(t *testing.T) {
	a, err := NewAnalyzer(testConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	res, err := a.Run(context.Background(), straightRoute, corridorGrid(t, 0))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Stations) != 11 {
		t.Fatalf("got %d stations, want 11", len(res.Stations))
	}
	for _, st := range res.Stations {
		if st.HalfWidth != 2.5 {
			t.Errorf("station %d half-width = %v, want 2.5", st.Index, st.HalfWidth)
		}
		if !st.ClearanceOK {
			t.Errorf("station %d not clear on a flat surface", st.Index)
		}
		if st.MaxHeight != 0 {
			t.Errorf("station %d max height = %v, want 0", st.Index, st.MaxHeight)
		}
	}
	if len(res.Obstacles) != 0 {
		t.Errorf("got %d obstacles, want 0", len(res.Obstacles))
	}
	if !res.Summary.Passable() {
		t.Error("flat run must be passable")
	}
	if res.Summary.TotalLength != 100 {
		t.Errorf("total length = %v, want 100", res.Summary.TotalLength)
	}
	if res.Summary.MaxCorridorWidth != 5 {
		t.Errorf("max corridor width = %v, want 5", res.Summary.MaxCorridorWidth)
	}
	if res.Summary.Cancelled {
		t.Error("run reported cancelled")
	}
}

func TestRunDenseStationsEnvelopeRibbon(t *testing.T) {
	cfg := testConfig()
	cfg.Spacing = 1 // overlapping station disks form one connected ribbon
	a, err := NewAnalyzer(cfg)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	res, err := a.Run(context.Background(), straightRoute, corridorGrid(t, 0))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Summary.EnvelopeFallback {
		t.Error("expected the union envelope, not the fallback")
	}
	want := 100*5 + math.Pi*2.5*2.5
	if got := res.Envelope.Area(); math.Abs(got-want) > 0.05*want {
		t.Errorf("envelope area = %v, want about %v", got, want)
	}
}

func TestRunSingleObstacle(t *testing.T) {
	g := corridorGrid(t, 0)
	// One raised cell under station 5 only.
	if !g.SetWorld(geo.Point{X: 50, Y: -0.5}, 10) {
		t.Fatal("failed to raise the obstacle cell")
	}

	a, err := NewAnalyzer(testConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	res, err := a.Run(context.Background(), straightRoute, g)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Obstacles) != 1 {
		t.Fatalf("got %d obstacles, want exactly 1", len(res.Obstacles))
	}
	ob := res.Obstacles[0]
	if ob.StationIndex != 5 {
		t.Errorf("obstacle at station %d, want 5", ob.StationIndex)
	}
	if ob.Exceedance != 5 {
		t.Errorf("exceedance = %v, want 5", ob.Exceedance)
	}
	if res.Summary.Passable() {
		t.Error("run with an obstacle must not be passable")
	}
	if res.Summary.WorstExceedance != 5 {
		t.Errorf("worst exceedance = %v, want 5", res.Summary.WorstExceedance)
	}
}

func TestRunIdempotent(t *testing.T) {
	a, err := NewAnalyzer(testConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	first, err := a.Run(context.Background(), straightRoute, corridorGrid(t, 1))
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := a.Run(context.Background(), straightRoute, corridorGrid(t, 1))
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if diff := cmp.Diff(first.Stations, second.Stations); diff != "" {
		t.Errorf("station tables differ between identical runs:\n%s", diff)
	}
	if diff := cmp.Diff(first.Envelope, second.Envelope); diff != "" {
		t.Errorf("envelopes differ between identical runs:\n%s", diff)
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := testConfig()
	cfg.Progress = func(done, total int) {
		if done == 3 {
			cancel()
		}
	}
	a, err := NewAnalyzer(cfg)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	res, err := a.Run(ctx, straightRoute, corridorGrid(t, 0))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Summary.Cancelled {
		t.Fatal("summary not marked cancelled")
	}
	if len(res.Stations) != 3 {
		t.Errorf("got %d stations after cancellation, want 3", len(res.Stations))
	}
	// Partial results still get an envelope and a summary.
	if res.Summary.StationCount != 3 {
		t.Errorf("summary station count = %d, want 3", res.Summary.StationCount)
	}
	if len(res.Envelope) == 0 {
		t.Error("partial run produced no envelope")
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := NewAnalyzer(testConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	res, err := a.Run(ctx, straightRoute, corridorGrid(t, 0))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Summary.Cancelled || len(res.Stations) != 0 {
		t.Errorf("got %d stations, cancelled=%v; want 0, true", len(res.Stations), res.Summary.Cancelled)
	}
}

func TestRunProgressMonotonic(t *testing.T) {
	var calls []int
	cfg := testConfig()
	cfg.Progress = func(done, total int) {
		if total != 11 {
			t.Errorf("progress total = %d, want 11", total)
		}
		calls = append(calls, done)
	}
	a, err := NewAnalyzer(cfg)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	if _, err := a.Run(context.Background(), straightRoute, corridorGrid(t, 0)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 11 {
		t.Fatalf("progress called %d times, want 11", len(calls))
	}
	for i, done := range calls {
		if done != i+1 {
			t.Errorf("progress call %d reported %d, want %d", i, done, i+1)
		}
	}
}

func TestRunFatalInputs(t *testing.T) {
	a, err := NewAnalyzer(testConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	if _, err := a.Run(context.Background(), geo.Polyline{{X: 0, Y: 0}}, corridorGrid(t, 0)); err == nil {
		t.Error("expected error for a single-point route")
	}
	if _, err := a.Run(context.Background(), geo.Polyline{{X: 0, Y: 0}, {X: 0, Y: 0}}, corridorGrid(t, 0)); err == nil {
		t.Error("expected error for a route of coincident points")
	}
}

func TestNewAnalyzerValidation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_width", func(c *Config) { c.Vehicle.StaticWidth = 0 }},
		{"zero_sweep_length", func(c *Config) { c.Vehicle.SweepLength = 0 }},
		{"negative_required_height", func(c *Config) { c.RequiredHeight = -1 }},
		{"zero_spacing", func(c *Config) { c.Spacing = 0 }},
		{"too_few_samples", func(c *Config) { c.SamplesPerProfile = 2 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			if _, err := NewAnalyzer(cfg); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestRunFromASCFile(t *testing.T) {
	path := testutil.WriteASCFixture(t, 20, 120, -5, -10, 1.5)
	grid, err := raster.OpenASC(path)
	testutil.AssertNoError(t, err)

	a, err := NewAnalyzer(testConfig())
	testutil.AssertNoError(t, err)

	res, err := a.Run(context.Background(), testutil.StraightRoute(100), grid)
	testutil.AssertNoError(t, err)

	if !res.Summary.Passable() {
		t.Fatalf("flat 1.5m canopy should clear a 5m requirement: %+v", res.Summary)
	}
	if res.Summary.NoDataStations != 0 {
		t.Errorf("expected full coverage, got %d no-data stations", res.Summary.NoDataStations)
	}
	for _, st := range res.Stations {
		testutil.AssertInDelta(t, st.MaxHeight, 1.5, 1e-9)
	}
}
